package inventory

import (
	"sort"

	"budget-control/internal/model"
)

type Class string

const (
	ClassA Class = "A"
	ClassB Class = "B"
	ClassC Class = "C"
)

// Item is a stocked article and its annual consumption value.
type Item struct {
	Name        string  `json:"name" yaml:"name"`
	AnnualValue float64 `json:"annual_value" yaml:"annual_value"`
}

// Thresholds are cumulative value shares in percent. An item whose cumulative
// share is <= A is class A, <= B class B, otherwise C.
type Thresholds struct {
	A float64 `json:"a" yaml:"a"`
	B float64 `json:"b" yaml:"b"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{A: 80, B: 95}
}

type Classified struct {
	Item
	SharePct      float64 `json:"share_pct"`
	CumulativePct float64 `json:"cumulative_pct"`
	Class         Class   `json:"class"`
}

// ClassifyABC ranks items by annual value (descending, ties by name) and
// assigns a class from the cumulative share of total value.
func ClassifyABC(items []Item, th Thresholds) ([]Classified, error) {
	if len(items) == 0 {
		return nil, model.Invalid("items", "no items to classify")
	}
	if th.A <= 0 || th.B < th.A || th.B > 100 {
		return nil, model.Invalid("thresholds", "want 0 < A <= B <= 100, got A=%g B=%g", th.A, th.B)
	}

	sorted := append([]Item(nil), items...)
	var total float64
	for _, it := range sorted {
		if it.AnnualValue < 0 || !model.IsFinite(it.AnnualValue) {
			return nil, model.Invalid("items", "item %q has invalid annual value %v", it.Name, it.AnnualValue)
		}
		total += it.AnnualValue
	}
	if total == 0 {
		return nil, model.Invalid("items", "total annual value is zero")
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].AnnualValue != sorted[j].AnnualValue {
			return sorted[i].AnnualValue > sorted[j].AnnualValue
		}
		return sorted[i].Name < sorted[j].Name
	})

	out := make([]Classified, len(sorted))
	var cum float64
	for i, it := range sorted {
		cum += it.AnnualValue
		c := Classified{
			Item:          it,
			SharePct:      it.AnnualValue * 100 / total,
			CumulativePct: cum * 100 / total,
		}
		switch {
		case c.CumulativePct <= th.A:
			c.Class = ClassA
		case c.CumulativePct <= th.B:
			c.Class = ClassB
		default:
			c.Class = ClassC
		}
		out[i] = c
	}
	return out, nil
}

// ClassSummary aggregates one ABC class.
type ClassSummary struct {
	Class    Class   `json:"class"`
	Count    int     `json:"count"`
	Value    float64 `json:"value"`
	ItemsPct float64 `json:"items_pct"`
	ValuePct float64 `json:"value_pct"`
}

// SummarizeABC returns one row per class, A to C, including empty classes.
func SummarizeABC(classified []Classified) []ClassSummary {
	rows := []ClassSummary{{Class: ClassA}, {Class: ClassB}, {Class: ClassC}}
	idx := map[Class]int{ClassA: 0, ClassB: 1, ClassC: 2}
	var total float64
	for _, c := range classified {
		r := &rows[idx[c.Class]]
		r.Count++
		r.Value += c.AnnualValue
		total += c.AnnualValue
	}
	n := float64(len(classified))
	for i := range rows {
		if n > 0 {
			rows[i].ItemsPct = float64(rows[i].Count) / n * 100
		}
		if total > 0 {
			rows[i].ValuePct = rows[i].Value / total * 100
		}
	}
	return rows
}
