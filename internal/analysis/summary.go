package analysis

import (
	"encoding/json"
	"math"
	"sort"

	"budget-control/internal/model"
)

// SeriesSummary describes the spread of a series before it is fed to the
// trend estimator or used as a revenue schedule.
type SeriesSummary struct {
	Key  string `json:"key,omitempty"`
	Unit string `json:"unit,omitempty"`

	Count       int     `json:"count"`
	FirstPeriod float64 `json:"first_period"`
	LastPeriod  float64 `json:"last_period"`

	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	P05    float64 `json:"p05"`
	P95    float64 `json:"p95"`

	SpreadP95P05 float64 `json:"spread_p95_p05"`

	// Growth is last/first - 1; NaN when the first value is zero.
	Growth float64 `json:"growth"`
}

func SummarizeSeries(s model.TimeSeries) (SeriesSummary, error) {
	if err := s.Validate(1); err != nil {
		return SeriesSummary{}, err
	}
	out := SeriesSummary{
		Key:         s.Key,
		Unit:        s.Unit,
		Count:       s.Len(),
		FirstPeriod: s.Points[0].Period,
		LastPeriod:  s.Last().Period,
	}

	vals := s.Values()
	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	for _, v := range vals {
		sum += v
		minv = math.Min(minv, v)
		maxv = math.Max(maxv, v)
	}
	out.Min, out.Max = minv, maxv
	out.Mean = sum / float64(len(vals))

	ss := 0.0
	for _, v := range vals {
		d := v - out.Mean
		ss += d * d
	}
	out.StdDev = math.Sqrt(ss / float64(len(vals)))

	sort.Float64s(vals)
	out.P05 = percentileSorted(vals, 0.05)
	out.P95 = percentileSorted(vals, 0.95)
	out.SpreadP95P05 = out.P95 - out.P05

	first := s.Points[0].Value
	if first == 0 {
		out.Growth = math.NaN()
	} else {
		out.Growth = s.Last().Value/first - 1
	}
	return out, nil
}

// percentileSorted interpolates linearly between order statistics.
func percentileSorted(sorted []float64, q float64) float64 {
	switch {
	case len(sorted) == 0:
		return 0
	case q <= 0:
		return sorted[0]
	case q >= 1:
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// MarshalJSON encodes an undefined growth as null.
func (s SeriesSummary) MarshalJSON() ([]byte, error) {
	type plain SeriesSummary
	return json.Marshal(struct {
		plain
		Growth *float64 `json:"growth"`
	}{plain(s), model.Nullable(s.Growth)})
}

func (s *SeriesSummary) UnmarshalJSON(b []byte) error {
	type plain SeriesSummary
	aux := struct {
		*plain
		Growth *float64 `json:"growth"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	s.Growth = model.FromNullable(aux.Growth)
	return nil
}
