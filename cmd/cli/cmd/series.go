package cmd

import (
	"path/filepath"
	"strings"

	"budget-control/internal/data"
	"budget-control/internal/model"
)

func loadSeriesFile(path string) (model.TimeSeries, error) {
	ext := filepath.Ext(path)
	if strings.EqualFold(ext, ".csv") {
		return data.LoadSeriesCSV(path, strings.TrimSuffix(filepath.Base(path), ext))
	}
	return data.LoadSeriesJSON(path)
}
