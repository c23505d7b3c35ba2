package analysis

import (
	"fmt"
	"sort"

	"budget-control/internal/investment"
	"budget-control/internal/model"
)

type RankedProject struct {
	Rank int `json:"rank"`
	// IRRRank is the position the project would get if ranked by IRR.
	// When it differs from Rank the percentage return is misleading about scale.
	IRRRank int `json:"irr_rank"`
	investment.Appraisal
}

// RankByNPV appraises every project and sorts descending by NPV, ties by name.
func RankByNPV(projects []model.InvestmentProject, opts investment.Options) ([]RankedProject, error) {
	if len(projects) == 0 {
		return nil, model.Invalid("projects", "no projects to rank")
	}
	out := make([]RankedProject, 0, len(projects))
	for i, p := range projects {
		a, err := investment.Appraise(p, opts)
		if err != nil {
			return nil, fmt.Errorf("project %d (%s): %w", i+1, p.Name, err)
		}
		out = append(out, RankedProject{Appraisal: a})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if irrOf(out[i]) != irrOf(out[j]) {
			return irrOf(out[i]) > irrOf(out[j])
		}
		return out[i].Project.Name < out[j].Project.Name
	})
	for i := range out {
		out[i].IRRRank = i + 1
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].NPV != out[j].NPV {
			return out[i].NPV > out[j].NPV
		}
		return out[i].Project.Name < out[j].Project.Name
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

// irrOf treats a missing IRR as the worst possible return.
func irrOf(r RankedProject) float64 {
	if r.IRR == nil {
		return -1
	}
	return *r.IRR
}
