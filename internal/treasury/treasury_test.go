package treasury

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget-control/internal/model"
)

func TestProjectBalancedLedgerKeepsConstantBalance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
	}{
		{"cash terms", Config{InitialBalance: 50000, Periods: 12, Revenue: 80000, BaseOutflow: 80000}},
		{"same delays both sides", Config{
			InitialBalance:    50000,
			Periods:           6,
			Revenue:           80000,
			BaseOutflow:       80000,
			CollectionBuckets: CollectionPreset(60),
			PaymentBuckets:    CollectionPreset(60),
		}},
		{"matching schedules", Config{
			InitialBalance:  -100,
			Periods:         3,
			CreditLine:      1000,
			RevenueSchedule: []float64{10, 20, 30},
			OutflowSchedule: []float64{10, 20, 30},
		}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := New().Project(tt.cfg)
			require.NoError(t, err)
			require.Len(t, res.Ledger, tt.cfg.Periods)
			for _, row := range res.Ledger {
				assert.InDelta(t, tt.cfg.InitialBalance, row.RunningBalance, 1e-9, "period %d", row.Period)
			}
			assert.Empty(t, res.Warnings)
		})
	}
}

func TestProjectCollectionDelaysHaveNoLookback(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Periods:           4,
		Revenue:           1000,
		CollectionBuckets: CollectionPreset(60),
	}
	res, err := New().Project(cfg)
	require.NoError(t, err)

	want := []float64{500, 800, 1000, 1000}
	for i, row := range res.Ledger {
		assert.InDelta(t, want[i], row.Inflow, 1e-9, "period %d", row.Period)
	}
	assert.InDelta(t, 3300, res.FinalBalance, 1e-9)
}

func TestProjectDelaysRoundToWholePeriods(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Periods:           3,
		PeriodDays:        7,
		RevenueSchedule:   []float64{100, 0, 0},
		CollectionBuckets: []Bucket{{DelayDays: 13, Fraction: 1}},
	}
	res, err := New().Project(cfg)
	require.NoError(t, err)
	// 13 days is two weeks after rounding.
	assert.Equal(t, []float64{0, 0, 100}, []float64{res.Ledger[0].Inflow, res.Ledger[1].Inflow, res.Ledger[2].Inflow})
}

func TestProjectExceptionalExpense(t *testing.T) {
	t.Parallel()

	cfg := Config{
		InitialBalance:   20000,
		Periods:          3,
		Revenue:          10000,
		BaseOutflow:      8000,
		Exceptional:      []Expense{{Period: 2, Amount: 15000, Label: "machine"}},
		TensionThreshold: 10000,
	}
	res, err := New().Project(cfg)
	require.NoError(t, err)

	assert.InDelta(t, 22000, res.Ledger[0].RunningBalance, 1e-9)
	assert.InDelta(t, 15000, res.Ledger[1].Exceptional, 1e-9)
	assert.InDelta(t, 23000, res.Ledger[1].Outflow, 1e-9)
	assert.InDelta(t, 9000, res.Ledger[1].RunningBalance, 1e-9)
	assert.InDelta(t, 11000, res.Ledger[2].RunningBalance, 1e-9)
	assert.InDelta(t, 9000, res.MinBalance, 1e-9)
	assert.InDelta(t, 22000, res.MaxBalance, 1e-9)
	assert.Equal(t, StatusTight, res.Status)
	assert.InDelta(t, (30000.0-39000.0)/3, res.AverageNetFlow, 1e-9)
}

func TestProjectOverdraftWithinCreditLine(t *testing.T) {
	t.Parallel()

	cfg := Config{
		InitialBalance: 1000,
		Periods:        3,
		Revenue:        500,
		BaseOutflow:    1500,
		CreditLine:     5000,
	}
	res, err := New().Project(cfg)
	require.NoError(t, err)

	// True balance keeps falling; the reported one is clamped to zero.
	assert.InDelta(t, 0, res.Ledger[0].RunningBalance, 1e-9)
	assert.InDelta(t, -1000, res.Ledger[1].RunningBalance, 1e-9)
	assert.InDelta(t, 0, res.Ledger[1].ReportedBalance, 1e-9)
	assert.InDelta(t, 1000, res.Ledger[1].CreditDrawn, 1e-9)
	assert.InDelta(t, -2000, res.Ledger[2].RunningBalance, 1e-9)
	assert.InDelta(t, 2000, res.PeakCredit, 1e-9)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, StatusOverdraft, res.Status)
}

func TestProjectBreachWarnsAndContinues(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Periods:     5,
		Revenue:     1000,
		BaseOutflow: 1000,
		Exceptional: []Expense{{Period: 2, Amount: 3000}},
		CreditLine:  2000,
		OutflowSchedule: []float64{
			1000, 1000, 1000, 0, 0,
		},
	}
	res, err := New().Project(cfg)
	require.NoError(t, err)
	require.Len(t, res.Ledger, 5)

	require.Len(t, res.Warnings, 2)
	assert.Equal(t, Warning{
		Kind:       WarningLiquidityBreach,
		Period:     2,
		Balance:    -3000,
		CreditLine: 2000,
		Shortfall:  1000,
	}, res.Warnings[0])
	assert.Equal(t, 3, res.Warnings[1].Period)

	assert.True(t, res.Ledger[1].Breach)
	assert.InDelta(t, -1000, res.Ledger[1].ReportedBalance, 1e-9)
	assert.InDelta(t, 2000, res.Ledger[1].CreditDrawn, 1e-9)

	// Period 4 recovers within the line, period 5 back to zero.
	assert.False(t, res.Ledger[3].Breach)
	assert.InDelta(t, -2000, res.Ledger[3].RunningBalance, 1e-9)
	assert.InDelta(t, -1000, res.Ledger[4].RunningBalance, 1e-9)
	assert.InDelta(t, -1000, res.FinalBalance, 1e-9)
	assert.Equal(t, StatusBreach, res.Status)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	base := Config{Periods: 3, Revenue: 10, BaseOutflow: 5}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		target error
	}{
		{"no periods", func(c *Config) { c.Periods = 0 }, model.ErrValidation},
		{"schedule length", func(c *Config) { c.RevenueSchedule = []float64{1, 2} }, model.ErrValidation},
		{"negative schedule", func(c *Config) { c.OutflowSchedule = []float64{1, -2, 3} }, model.ErrValidation},
		{"fractions do not sum", func(c *Config) { c.CollectionBuckets = []Bucket{{0, 0.5}, {30, 0.4}} }, model.ErrValidation},
		{"fraction above one", func(c *Config) { c.PaymentBuckets = []Bucket{{0, 1.5}, {30, -0.5}} }, model.ErrValidation},
		{"negative delay", func(c *Config) { c.CollectionBuckets = []Bucket{{-30, 1}} }, model.ErrValidation},
		{"exceptional out of range", func(c *Config) { c.Exceptional = []Expense{{Period: 4, Amount: 1}} }, model.ErrValidation},
		{"negative credit line", func(c *Config) { c.CreditLine = -1 }, model.ErrInvalidParameter},
		{"negative revenue", func(c *Config) { c.Revenue = -1 }, model.ErrInvalidParameter},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := base
			tt.mutate(&c)
			assert.ErrorIs(t, c.Validate(), tt.target)
			_, err := New().Project(c)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestCollectionPreset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []Bucket{{0, 1}}, CollectionPreset(0))
	assert.Equal(t, []Bucket{{0, 0.7}, {30, 0.3}}, CollectionPreset(30))
	assert.Equal(t, []Bucket{{0, 0.5}, {30, 0.3}, {60, 0.2}}, CollectionPreset(60))
	assert.Equal(t, CollectionPreset(60), CollectionPreset(90))
	for _, d := range []int{0, 30, 60} {
		assert.NoError(t, checkBuckets("b", CollectionPreset(d)))
	}
}

func TestWriteLedger(t *testing.T) {
	t.Parallel()

	ledger := []LedgerEntry{
		{Period: 1, Inflow: 1000.125, Outflow: 200, NetFlow: 800.125, RunningBalance: 800.125, ReportedBalance: 800.125},
		{Period: 2, Outflow: 2000, NetFlow: -2000, RunningBalance: -1199.875, CreditDrawn: 1000, ReportedBalance: -199.875, Breach: true},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteLedger(&buf, ledger))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, ledgerHeader, rows[0])
	assert.Equal(t, []string{"1", "1000.13", "200.00", "0.00", "800.13", "800.13", "800.13", "0.00", "false"}, rows[1])
	assert.Equal(t, "-1199.88", rows[2][5])
	assert.Equal(t, "true", rows[2][8])

	path := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, WriteLedgerCSV(path, ledger))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "period,inflow,outflow")
}

func TestWorkingCapital(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 350000, WorkingCapitalNeed(300000, 250000, 200000), 1e-9)
	assert.InDelta(t, 45.0/30*100000-60.0/30*70000, OperatingWorkingCapital(45, 60, 100000, 70000), 1e-9)

	dso, err := DSO(150000, 1200000, 360)
	require.NoError(t, err)
	assert.InDelta(t, 45, dso, 1e-9)

	dpo, err := DPO(80000, 960000, 360)
	require.NoError(t, err)
	assert.InDelta(t, 30, dpo, 1e-9)

	_, err = DSO(1, 0, 360)
	assert.ErrorIs(t, err, model.ErrInvalidParameter)
	_, err = DPO(1, 10, 0)
	assert.ErrorIs(t, err, model.ErrInvalidParameter)
}
