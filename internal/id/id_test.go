package id

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunIDIsSortableAndUnique(t *testing.T) {
	t.Parallel()

	ids := make([]string, 500)
	for i := range ids {
		ids[i] = NewRunID()
	}
	assert.True(t, sort.StringsAreSorted(ids))

	seen := make(map[string]bool, len(ids))
	for _, s := range ids {
		assert.Len(t, s, 26)
		assert.True(t, Valid(s))
		assert.False(t, seen[s])
		seen[s] = true
	}
}

func TestTimeRoundTrip(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	got, err := Time(newAt(at))
	require.NoError(t, err)
	assert.True(t, at.Equal(got))

	assert.False(t, Valid("not-a-ulid"))
	_, err = Time("not-a-ulid")
	assert.Error(t, err)
}
