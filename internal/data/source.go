package data

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"budget-control/internal/model"
)

// ErrSeriesNotFound is returned by a SeriesSource that has no series for a key.
var ErrSeriesNotFound = errors.New("series not found")

// SeriesSource supplies historical series to the calculators.
type SeriesSource interface {
	FetchSeries(ctx context.Context, key string) (model.TimeSeries, error)
}

// FileSource reads series from <Dir>/<key>.json, falling back to <key>.csv.
// Keys may contain slashes, which map to subdirectories.
type FileSource struct {
	Dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

func (s *FileSource) FetchSeries(ctx context.Context, key string) (model.TimeSeries, error) {
	if err := ctx.Err(); err != nil {
		return model.TimeSeries{}, err
	}
	base, err := s.path(key)
	if err != nil {
		return model.TimeSeries{}, err
	}

	if _, err := os.Stat(base + ".json"); err == nil {
		ts, err := LoadSeriesJSON(base + ".json")
		if err != nil {
			return model.TimeSeries{}, err
		}
		if ts.Key == "" {
			ts.Key = key
		}
		return ts, nil
	}
	if _, err := os.Stat(base + ".csv"); err == nil {
		return LoadSeriesCSV(base+".csv", key)
	}
	return model.TimeSeries{}, fmt.Errorf("%w: %s", ErrSeriesNotFound, key)
}

func (s *FileSource) path(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", model.Invalid("key", "must not be empty")
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", model.Invalid("key", "%q escapes the series directory", key)
	}
	return filepath.Join(s.Dir, clean), nil
}
