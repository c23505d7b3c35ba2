package model

import (
	"math"
)

// Point is one observation of a time series.
type Point struct {
	Period float64 `json:"period" yaml:"period"`
	Value  float64 `json:"value" yaml:"value"`
}

// TimeSeries is an ordered sequence of observations.
// Periods must be strictly increasing; see Validate.
type TimeSeries struct {
	Key    string  `json:"key,omitempty" yaml:"key,omitempty"`
	Unit   string  `json:"unit,omitempty" yaml:"unit,omitempty"`
	Points []Point `json:"points" yaml:"points"`
}

// NewTimeSeries numbers values as periods 1..n.
func NewTimeSeries(values ...float64) TimeSeries {
	pts := make([]Point, len(values))
	for i, v := range values {
		pts[i] = Point{Period: float64(i + 1), Value: v}
	}
	return TimeSeries{Points: pts}
}

// SeriesFromPairs builds a series from parallel period/value slices.
func SeriesFromPairs(periods, values []float64) (TimeSeries, error) {
	if len(periods) != len(values) {
		return TimeSeries{}, Invalid("points", "got %d periods and %d values", len(periods), len(values))
	}
	pts := make([]Point, len(periods))
	for i := range periods {
		pts[i] = Point{Period: periods[i], Value: values[i]}
	}
	return TimeSeries{Points: pts}, nil
}

func (s TimeSeries) Len() int { return len(s.Points) }

func (s TimeSeries) Periods() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Period
	}
	return out
}

func (s TimeSeries) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}

// Last returns the final point. The series must not be empty.
func (s TimeSeries) Last() Point {
	return s.Points[len(s.Points)-1]
}

// Validate checks the series has at least minPoints finite observations
// with strictly increasing periods.
func (s TimeSeries) Validate(minPoints int) error {
	if len(s.Points) == 0 {
		return Invalid("points", "series is empty")
	}
	if len(s.Points) < minPoints {
		return Invalid("points", "need at least %d points, got %d", minPoints, len(s.Points))
	}
	for i, p := range s.Points {
		if !IsFinite(p.Period) || !IsFinite(p.Value) {
			return Invalid("points", "point %d is not finite (period=%v value=%v)", i, p.Period, p.Value)
		}
		if i > 0 && p.Period <= s.Points[i-1].Period {
			return Invalid("points", "periods must be strictly increasing (point %d: %v after %v)",
				i, p.Period, s.Points[i-1].Period)
		}
	}
	return nil
}

// SeriesDocument is the on-disk JSON shape of a series file.
//
// Example:
//
//	{
//	  "key": "sales/monthly",
//	  "unit": "EUR",
//	  "points": [ {"period": 1, "value": 120}, ... ]
//	}
type SeriesDocument struct {
	Key    string  `json:"key"`
	Unit   string  `json:"unit,omitempty"`
	Points []Point `json:"points"`
}

func (d SeriesDocument) Series() TimeSeries {
	return TimeSeries{Key: d.Key, Unit: d.Unit, Points: d.Points}
}

// IsFinite reports whether x is neither NaN nor ±Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Nullable returns nil for non-finite x so it encodes as JSON null.
func Nullable(x float64) *float64 {
	if !IsFinite(x) {
		return nil
	}
	return &x
}

// FromNullable is the inverse of Nullable: nil decodes to NaN.
func FromNullable(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}
