package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"budget-control/internal/model"
)

var seriesHeader = []string{"period", "value"}

// LoadSeriesCSV reads a two-column "period,value" file.
func LoadSeriesCSV(path, key string) (model.TimeSeries, error) {
	file, err := os.Open(path)
	if err != nil {
		return model.TimeSeries{}, fmt.Errorf("failed to open series file %s: %w", path, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return model.TimeSeries{}, fmt.Errorf("failed to read series CSV: %w", err)
	}
	if len(records) < 2 {
		return model.TimeSeries{}, model.Invalid("points", "series CSV must have header and at least one data row")
	}
	if !validateHeader(records[0], seriesHeader) {
		return model.TimeSeries{}, fmt.Errorf("series CSV header mismatch. Expected: %v, Got: %v", seriesHeader, records[0])
	}

	ts := model.TimeSeries{Key: key, Points: make([]model.Point, 0, len(records)-1)}
	for i, record := range records[1:] {
		if len(record) != len(seriesHeader) {
			return model.TimeSeries{}, fmt.Errorf("series CSV row %d: expected %d columns, got %d", i+2, len(seriesHeader), len(record))
		}
		period, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		if err != nil {
			return model.TimeSeries{}, fmt.Errorf("series CSV row %d: invalid period: %w", i+2, err)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return model.TimeSeries{}, fmt.Errorf("series CSV row %d: invalid value: %w", i+2, err)
		}
		ts.Points = append(ts.Points, model.Point{Period: period, Value: value})
	}
	if err := ts.Validate(1); err != nil {
		return model.TimeSeries{}, fmt.Errorf("%s: %w", path, err)
	}
	return ts, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.TrimSpace(strings.ToLower(actual[i])) != col {
			return false
		}
	}
	return true
}
