package investment

import (
	"errors"
	"fmt"
	"math"

	"budget-control/internal/model"
)

const (
	DefaultTolerance = 1e-4
	maxIterations    = 200
)

// Bracket is the rate interval searched for the IRR.
type Bracket struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

func DefaultBracket() Bracket { return Bracket{Low: 0, High: 1} }

// Options tune Appraise. Zero values select the defaults.
type Options struct {
	Bracket   *Bracket
	Tolerance float64
}

func (o Options) bracket() Bracket {
	if o.Bracket == nil {
		return DefaultBracket()
	}
	return *o.Bracket
}

func (o Options) tolerance() float64 {
	if o.Tolerance <= 0 {
		return DefaultTolerance
	}
	return o.Tolerance
}

// NPV discounts the project's flows at its own rate.
func NPV(p model.InvestmentProject) float64 {
	return NPVAt(p.InitialOutlay, p.CashFlows, p.DiscountRate)
}

// NPVAt returns sum(CF_t/(1+rate)^t, t=1..n) - outlay.
func NPVAt(outlay float64, flows []float64, rate float64) float64 {
	v := -outlay
	df := 1.0
	for _, cf := range flows {
		df /= 1 + rate
		v += cf * df
	}
	return v
}

// IRR finds the rate where NPV is zero by bisection over b. NPV must change
// sign between b.Low and b.High; otherwise a NoRootInBracketError is
// returned. The result is within tol of the root.
func IRR(outlay float64, flows []float64, b Bracket, tol float64) (float64, error) {
	if len(flows) == 0 {
		return 0, model.Invalid("cash_flows", "at least one cash flow is required")
	}
	if !(b.Low < b.High) || b.Low <= -1 {
		return 0, model.Invalid("bracket", "want -1 < low < high, got [%g, %g]", b.Low, b.High)
	}
	if tol <= 0 {
		tol = DefaultTolerance
	}

	lo, hi := b.Low, b.High
	fLo := NPVAt(outlay, flows, lo)
	fHi := NPVAt(outlay, flows, hi)
	switch {
	case fLo == 0:
		return lo, nil
	case fHi == 0:
		return hi, nil
	case math.Signbit(fLo) == math.Signbit(fHi):
		return 0, &model.NoRootInBracketError{Low: lo, High: hi, NPVLow: fLo, NPVHigh: fHi}
	}

	mid := (lo + hi) / 2
	for i := 0; i < maxIterations && (hi-lo)/2 > tol; i++ {
		fMid := NPVAt(outlay, flows, mid)
		if fMid == 0 {
			return mid, nil
		}
		if math.Signbit(fMid) == math.Signbit(fLo) {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
		mid = (lo + hi) / 2
	}
	return mid, nil
}

// Payback is the (interpolated) period at which cumulative flows recover the
// outlay. Reached is false when they never do within the horizon.
type Payback struct {
	Period  float64 `json:"period"`
	Reached bool    `json:"reached"`
}

func (p Payback) String() string {
	if !p.Reached {
		return "never"
	}
	return fmt.Sprintf("%.2f", p.Period)
}

// PaybackPeriod interpolates linearly inside the period where the cumulative
// flow first reaches the outlay: t-1 + (outlay - cum[t-1]) / CF_t.
func PaybackPeriod(outlay float64, flows []float64) Payback {
	if outlay <= 0 {
		return Payback{Period: 0, Reached: true}
	}
	cum := 0.0
	for i, cf := range flows {
		next := cum + cf
		if next >= outlay && cf > 0 {
			return Payback{Period: float64(i) + (outlay-cum)/cf, Reached: true}
		}
		cum = next
	}
	return Payback{}
}

// ProfitabilityIndex is (NPV + outlay) / outlay. A zero outlay has no index.
func ProfitabilityIndex(npv, outlay float64) (float64, error) {
	if outlay <= 0 {
		return 0, &model.InvalidParameterError{Name: "initial_outlay", Value: outlay}
	}
	return (npv + outlay) / outlay, nil
}

// Decision applies the usual acceptance thresholds to an appraisal.
type Decision struct {
	NPVAcceptable     bool `json:"npv_acceptable"`
	IRRAcceptable     bool `json:"irr_acceptable"`
	PaybackWithinLife bool `json:"payback_within_life"`
	PIAcceptable      bool `json:"pi_acceptable"`
	// Recommended requires both NPV > 0 and IRR > rate.
	Recommended bool `json:"recommended"`
}

// Appraisal gathers every criterion for one project.
type Appraisal struct {
	Project model.InvestmentProject `json:"project"`
	NPV     float64                 `json:"npv"`

	// IRR is nil when no root lies in the bracket; IRRError says why.
	IRR      *float64 `json:"irr"`
	IRRError string   `json:"irr_error,omitempty"`

	Payback            Payback  `json:"payback"`
	ProfitabilityIndex *float64 `json:"profitability_index"`
	Decision           Decision `json:"decision"`
}

// Appraise validates the project and computes NPV, IRR, payback and PI.
// A missing IRR root does not fail the appraisal; it is reported in
// IRRError so the other criteria remain visible. Any other IRR failure is
// returned.
func Appraise(p model.InvestmentProject, opts Options) (Appraisal, error) {
	if err := p.Validate(); err != nil {
		return Appraisal{}, err
	}

	a := Appraisal{
		Project: p,
		NPV:     NPV(p),
		Payback: PaybackPeriod(p.InitialOutlay, p.CashFlows),
	}

	irr, err := IRR(p.InitialOutlay, p.CashFlows, opts.bracket(), opts.tolerance())
	switch {
	case err == nil:
		a.IRR = &irr
	case errors.Is(err, model.ErrNoRootInBracket):
		a.IRRError = err.Error()
	default:
		return Appraisal{}, fmt.Errorf("irr: %w", err)
	}

	if pi, err := ProfitabilityIndex(a.NPV, p.InitialOutlay); err == nil {
		a.ProfitabilityIndex = &pi
	}

	a.Decision = decide(a)
	return a, nil
}

func decide(a Appraisal) Decision {
	d := Decision{
		NPVAcceptable:     a.NPV > 0,
		IRRAcceptable:     a.IRR != nil && *a.IRR > a.Project.DiscountRate,
		PaybackWithinLife: a.Payback.Reached && a.Payback.Period <= float64(a.Project.Life()),
		PIAcceptable:      a.ProfitabilityIndex != nil && *a.ProfitabilityIndex > 1,
	}
	d.Recommended = d.NPVAcceptable && d.IRRAcceptable
	return d
}
