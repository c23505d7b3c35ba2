package main

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sales"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sales", "monthly.csv"), []byte("period,value\n1,10\n2,20\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "costs.json"), []byte(`{"points":[{"period":1,"value":5}]}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o644))

	series, err := collect([]string{dir}, "acme")
	require.NoError(t, err)

	var keys []string
	for _, ts := range series {
		keys = append(keys, ts.Key)
	}
	sort.Strings(keys)
	assert.Equal(t, []string{"acme/costs", "acme/sales/monthly"}, keys)
}

func TestCollectRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("period,value\n1,abc\n"), 0o644))

	_, err := collect([]string{path}, "")
	assert.Error(t, err)
}
