package treasury

// LedgerEntry is one period of the projection.
//
// RunningBalance is the true balance and carries into the next period.
// ReportedBalance is what the account shows once the credit line covers an
// overdraft: zero while the line absorbs it, the uncovered part beyond it.
type LedgerEntry struct {
	Period int `json:"period"`

	Inflow      float64 `json:"inflow"`
	Outflow     float64 `json:"outflow"`
	Exceptional float64 `json:"exceptional"`
	NetFlow     float64 `json:"net_flow"`

	RunningBalance  float64 `json:"running_balance"`
	ReportedBalance float64 `json:"reported_balance"`
	CreditDrawn     float64 `json:"credit_drawn"`

	Breach bool `json:"breach"`
}

type WarningKind string

const WarningLiquidityBreach WarningKind = "LIQUIDITY_BREACH"

// Warning flags a period without aborting the projection.
type Warning struct {
	Kind       WarningKind `json:"kind"`
	Period     int         `json:"period"`
	Balance    float64     `json:"balance"`
	CreditLine float64     `json:"credit_line"`
	Shortfall  float64     `json:"shortfall"`
}

type Status string

const (
	StatusHealthy   Status = "HEALTHY"
	StatusTight     Status = "TIGHT"
	StatusOverdraft Status = "OVERDRAFT"
	StatusBreach    Status = "BREACH"
)

type Result struct {
	Ledger   []LedgerEntry `json:"ledger"`
	Warnings []Warning     `json:"warnings"`

	TotalInflow    float64 `json:"total_inflow"`
	TotalOutflow   float64 `json:"total_outflow"`
	MinBalance     float64 `json:"min_balance"`
	MaxBalance     float64 `json:"max_balance"`
	FinalBalance   float64 `json:"final_balance"`
	AverageNetFlow float64 `json:"average_net_flow"`
	PeakCredit     float64 `json:"peak_credit"`

	Status Status `json:"status"`
}
