package production

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"budget-control/internal/model"
)

// simplexTol is the reduced-cost tolerance handed to the simplex solver.
const simplexTol = 1e-10

// Product is one item of the mix. Usage maps a resource name to what one unit
// consumes of it (hours, kilograms, ...).
type Product struct {
	Name      string             `json:"name" yaml:"name"`
	Margin    float64            `json:"margin" yaml:"margin"`
	Usage     map[string]float64 `json:"usage" yaml:"usage"`
	MaxDemand *float64           `json:"max_demand,omitempty" yaml:"max_demand,omitempty"`
}

// Resource is a capacity shared by the products.
type Resource struct {
	Name     string  `json:"name" yaml:"name"`
	Capacity float64 `json:"capacity" yaml:"capacity"`
}

// MixInput is a product-mix problem: maximize the total margin subject to
// resource capacities and per-product demand caps.
type MixInput struct {
	Products  []Product  `json:"products" yaml:"products"`
	Resources []Resource `json:"resources" yaml:"resources"`
}

type ProductPlan struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Margin   float64 `json:"margin"`
	// AtDemand is true when the quantity reached the product's demand cap.
	AtDemand bool `json:"at_demand"`
}

type ResourceUse struct {
	Name     string  `json:"name"`
	Capacity float64 `json:"capacity"`
	Used     float64 `json:"used"`
	Slack    float64 `json:"slack"`
	Binding  bool    `json:"binding"`
}

type MixResult struct {
	Products    []ProductPlan `json:"products"`
	Resources   []ResourceUse `json:"resources"`
	TotalMargin float64       `json:"total_margin"`
}

// DefaultMix is the two-product workshop: machining and assembly hours plus an
// aluminium stock, with product B capped lower than product A.
func DefaultMix() MixInput {
	demandA, demandB := 10000.0, 8000.0
	return MixInput{
		Products: []Product{
			{Name: "A", Margin: 55, Usage: map[string]float64{"machining": 1, "assembly": 1.2, "aluminium": 0.6}, MaxDemand: &demandA},
			{Name: "B", Margin: 90, Usage: map[string]float64{"machining": 1.5, "assembly": 1, "aluminium": 0.8}, MaxDemand: &demandB},
		},
		Resources: []Resource{
			{Name: "machining", Capacity: 13000},
			{Name: "assembly", Capacity: 10000},
			{Name: "aluminium", Capacity: 12000},
		},
	}
}

func (in MixInput) Validate() error {
	if len(in.Products) == 0 {
		return model.Invalid("products", "at least one product is required")
	}
	resources := make(map[string]bool, len(in.Resources))
	for i, r := range in.Resources {
		if r.Name == "" {
			return model.Invalid("resources", "resource %d has no name", i+1)
		}
		if resources[r.Name] {
			return model.Invalid("resources", "duplicate resource %q", r.Name)
		}
		if !model.IsFinite(r.Capacity) || r.Capacity < 0 {
			return model.Invalid("resources", "%s capacity must be finite and >= 0, got %g", r.Name, r.Capacity)
		}
		resources[r.Name] = true
	}

	names := make(map[string]bool, len(in.Products))
	for i, p := range in.Products {
		if p.Name == "" {
			return model.Invalid("products", "product %d has no name", i+1)
		}
		if names[p.Name] {
			return model.Invalid("products", "duplicate product %q", p.Name)
		}
		names[p.Name] = true
		if !model.IsFinite(p.Margin) {
			return model.Invalid("products", "%s margin must be finite", p.Name)
		}
		limited := false
		for res, u := range p.Usage {
			if !resources[res] {
				return model.Invalid("products", "%s uses unknown resource %q", p.Name, res)
			}
			if !model.IsFinite(u) || u < 0 {
				return model.Invalid("products", "%s usage of %s must be finite and >= 0, got %g", p.Name, res, u)
			}
			if u > 0 {
				limited = true
			}
		}
		if d := p.MaxDemand; d != nil {
			if !model.IsFinite(*d) || *d < 0 {
				return model.Invalid("products", "%s max_demand must be finite and >= 0, got %g", p.Name, *d)
			}
			limited = true
		}
		if !limited {
			return model.Invalid("products", "%s consumes no resource and has no demand cap", p.Name)
		}
	}
	return nil
}

// OptimizeMix solves the product mix with the simplex method. Each resource
// and each demand cap becomes a row of Ax + s = b; the slack columns give a
// feasible starting basis since every right-hand side is non-negative.
func OptimizeMix(in MixInput) (MixResult, error) {
	if err := in.Validate(); err != nil {
		return MixResult{}, err
	}

	n := len(in.Products)
	var capped []int
	for j, p := range in.Products {
		if p.MaxDemand != nil {
			capped = append(capped, j)
		}
	}
	rows := len(in.Resources) + len(capped)
	cols := n + rows

	a := mat.NewDense(rows, cols, nil)
	b := make([]float64, rows)
	for i, r := range in.Resources {
		for j, p := range in.Products {
			a.Set(i, j, p.Usage[r.Name])
		}
		b[i] = r.Capacity
	}
	for k, j := range capped {
		i := len(in.Resources) + k
		a.Set(i, j, 1)
		b[i] = *in.Products[j].MaxDemand
	}

	c := make([]float64, cols)
	basic := make([]int, rows)
	for i := range basic {
		a.Set(i, n+i, 1)
		basic[i] = n + i
	}
	for j, p := range in.Products {
		c[j] = -p.Margin
	}

	_, x, err := lp.Simplex(c, a, b, simplexTol, basic)
	if err != nil {
		if errors.Is(err, lp.ErrUnbounded) {
			return MixResult{}, model.Invalid("products", "margin is unbounded")
		}
		return MixResult{}, fmt.Errorf("product mix: %w", err)
	}

	res := MixResult{
		Products:  make([]ProductPlan, n),
		Resources: make([]ResourceUse, len(in.Resources)),
	}
	for j, p := range in.Products {
		q := snap(x[j], 0)
		if p.MaxDemand != nil {
			q = snap(q, *p.MaxDemand)
		}
		res.Products[j] = ProductPlan{
			Name:     p.Name,
			Quantity: q,
			Margin:   q * p.Margin,
			AtDemand: p.MaxDemand != nil && q >= *p.MaxDemand,
		}
		res.TotalMargin += q * p.Margin
	}
	for i, r := range in.Resources {
		used := 0.0
		for j, p := range in.Products {
			used += p.Usage[r.Name] * res.Products[j].Quantity
		}
		used = snap(used, r.Capacity)
		res.Resources[i] = ResourceUse{
			Name:     r.Name,
			Capacity: r.Capacity,
			Used:     used,
			Slack:    r.Capacity - used,
			Binding:  used >= r.Capacity,
		}
	}
	return res, nil
}

// snap pulls x onto target when the solver left it within rounding noise.
func snap(x, target float64) float64 {
	if math.Abs(x-target) <= 1e-7*math.Max(1, math.Abs(target)) {
		return target
	}
	return x
}
