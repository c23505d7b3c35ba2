package forecast

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"budget-control/internal/model"
)

// SeasonClass is a human-friendly reading of a seasonal coefficient.
// Keep these values stable; they are used in reports and API output.
type SeasonClass string

const (
	SeasonLow    SeasonClass = "LOW"
	SeasonNormal SeasonClass = "NORMAL"
	SeasonHigh   SeasonClass = "HIGH"
)

// Band around 1.0 inside which a season is considered normal.
const seasonBand = 0.05

func ClassifySeason(coef float64) SeasonClass {
	switch {
	case coef < 1-seasonBand:
		return SeasonLow
	case coef > 1+seasonBand:
		return SeasonHigh
	default:
		return SeasonNormal
	}
}

// ComputeSeasonalCoefficients returns mean(season)/mean(all observations) for
// every season. The coefficients average to exactly 1 over the cycle only when
// every season carries the same number of observations; that is a precondition
// of the caller, not something checked here.
func ComputeSeasonalCoefficients(valuesBySeason map[string][]float64) (model.SeasonalProfile, error) {
	if len(valuesBySeason) == 0 {
		return model.SeasonalProfile{}, model.Invalid("seasons", "no seasons supplied")
	}

	var total float64
	var count int
	means := make(map[string]float64, len(valuesBySeason))
	for label, vals := range valuesBySeason {
		if len(vals) == 0 {
			return model.SeasonalProfile{}, model.Invalid("seasons", "season %q has no observations", label)
		}
		sum := 0.0
		for _, v := range vals {
			if !model.IsFinite(v) {
				return model.SeasonalProfile{}, model.Invalid("seasons", "season %q has a non-finite value", label)
			}
			sum += v
		}
		means[label] = sum / float64(len(vals))
		total += sum
		count += len(vals)
	}

	global := total / float64(count)
	if global <= 0 {
		return model.SeasonalProfile{}, model.Invalid("seasons", "global mean must be > 0, got %g", global)
	}

	profile := model.SeasonalProfile{
		Labels:       SeasonOrder(keys(valuesBySeason)),
		Coefficients: make(map[string]float64, len(means)),
	}
	for label, m := range means {
		profile.Coefficients[label] = m / global
	}
	return profile, nil
}

// ComputeSeasonalCoefficientsFromSeries groups a flat series into cycle seasons
// by position (observation i goes to season i mod cycle, labelled "S1".."Sn")
// and computes their coefficients.
func ComputeSeasonalCoefficientsFromSeries(series model.TimeSeries, cycle int) (model.SeasonalProfile, error) {
	if cycle < 2 {
		return model.SeasonalProfile{}, model.Invalid("cycle", "must be >= 2, got %d", cycle)
	}
	if err := series.Validate(cycle); err != nil {
		return model.SeasonalProfile{}, err
	}
	by := make(map[string][]float64, cycle)
	for i, p := range series.Points {
		label := SeasonLabel(i % cycle)
		by[label] = append(by[label], p.Value)
	}
	return ComputeSeasonalCoefficients(by)
}

// SeasonLabel is the label used for the zero-based position in a cycle.
func SeasonLabel(pos int) string {
	return "S" + strconv.Itoa(pos+1)
}

// ApplySeasonality adjusts a trend forecast by a seasonal coefficient.
func ApplySeasonality(baseForecast, coefficient float64) float64 {
	return baseForecast * coefficient
}

// SeasonOrder sorts labels in cycle order: labels sharing a prefix and ending
// in a number ("Q1".."Q4", "S1".."S12", "1".."12") sort numerically; anything
// else sorts lexically.
func SeasonOrder(labels []string) []string {
	out := append([]string(nil), labels...)
	sort.SliceStable(out, func(i, j int) bool {
		pi, ni, oki := splitLabel(out[i])
		pj, nj, okj := splitLabel(out[j])
		if oki && okj && pi == pj {
			return ni < nj
		}
		return out[i] < out[j]
	})
	return out
}

func splitLabel(s string) (string, int, bool) {
	s = strings.TrimSpace(s)
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == len(s) {
		return s, 0, false
	}
	n, err := strconv.Atoi(s[i:])
	if err != nil {
		return s, 0, false
	}
	return s[:i], n, true
}

func keys(m map[string][]float64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// Describe renders a coefficient as e.g. "1.241 (HIGH)".
func Describe(coef float64) string {
	return fmt.Sprintf("%.3f (%s)", coef, ClassifySeason(coef))
}
