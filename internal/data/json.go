package data

import (
	"encoding/json"
	"fmt"
	"os"

	"budget-control/internal/model"
)

// LoadSeriesJSON reads a series file in the SeriesDocument shape and validates it.
func LoadSeriesJSON(path string) (model.TimeSeries, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.TimeSeries{}, err
	}
	var doc model.SeriesDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.TimeSeries{}, fmt.Errorf("parse %s: %w", path, err)
	}
	ts := doc.Series()
	if err := ts.Validate(1); err != nil {
		return model.TimeSeries{}, fmt.Errorf("%s: %w", path, err)
	}
	return ts, nil
}
