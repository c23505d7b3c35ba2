package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget-control/internal/inventory"
	"budget-control/internal/model"
	"budget-control/internal/production"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoadResolvesTreasuryFileAndMerges(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "treasury", "base.yaml"), `
treasury:
  name: base
  initial_balance: 50000
  periods: 12
  revenue: 80000
  base_outflow: 70000
  credit_line: 10000
`)
	cfgPath := filepath.Join(dir, "scenario.yaml")
	writeFile(t, cfgPath, `
name: q-plan
treasury_file: treasury/base.yaml
treasury:
  periods: 6
  credit_line: 25000
  collection_buckets:
    - {delay_days: 0, fraction: 0.5}
    - {delay_days: 30, fraction: 0.5}
`)

	c, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "base", c.Treasury.Name)
	assert.Equal(t, 6, c.Treasury.Periods)
	assert.InDelta(t, 50000, c.Treasury.InitialBalance, 1e-9)
	assert.InDelta(t, 25000, c.Treasury.CreditLine, 1e-9)
	assert.Len(t, c.Treasury.CollectionBuckets, 2)
	assert.True(t, c.HasTreasury())
}

func TestLoadSeriesFileAndDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sales.csv"), "period,value\n1,100\n2,130\n3,90\n4,110\n5,120\n")
	cfgPath := filepath.Join(dir, "scenario.yaml")
	writeFile(t, cfgPath, `
trend:
  series_file: sales.csv
abc:
  items:
    - {name: a, annual_value: 10}
`)

	c, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "sales", c.Series.Key)
	assert.Equal(t, 5, c.Series.Len())
	assert.Equal(t, 4, c.Seasonality.Cycle)
	assert.Equal(t, 4, c.Trend.Horizon)
	assert.Equal(t, inventory.DefaultThresholds(), c.ABC.Thresholds)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	lo, hi := 0.1, 0.5
	tests := []struct {
		name string
		cfg  Config
	}{
		{"empty", Config{}},
		{"short history", Config{Series: model.NewTimeSeries(1)}},
		{"bad cycle", Config{Series: model.NewTimeSeries(1, 2, 3), Seasonality: SeasonalityConfig{Cycle: 1}}},
		{"bad eoq", Config{EOQ: &model.OrderPolicyInput{AnnualDemand: 0, OrderCost: 1, HoldingCostPerUnit: 1}}},
		{"bad project", Config{Investment: InvestmentConfig{Projects: []model.InvestmentProject{{Name: "p", InitialOutlay: -1, CashFlows: []float64{1}}}}}},
		{"half bracket", Config{Investment: InvestmentConfig{
			Projects:   []model.InvestmentProject{{Name: "p", InitialOutlay: 1, CashFlows: []float64{2}}},
			BracketLow: &hi,
		}}},
		{"bad production mix", Config{Production: ProductionConfig{Mix: &production.MixInput{}}}},
		{"bad production capacity", Config{Production: ProductionConfig{Capacity: &production.CapacityInput{Efficiency: 150, PlannedUnits: 1}}}},
		{"bad production schedule", Config{Production: ProductionConfig{Schedule: &production.ScheduleInput{Days: -3}}}},
		{"bad abc thresholds", Config{ABC: ABCConfig{Items: []inventory.Item{{Name: "a", AnnualValue: 1}}, Thresholds: inventory.Thresholds{A: 90, B: 80}}}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Error(t, tt.cfg.Validate())
		})
	}

	c := Config{Investment: InvestmentConfig{
		Projects:    []model.InvestmentProject{{Name: "p", InitialOutlay: 1, CashFlows: []float64{2}}},
		BracketLow:  &lo,
		BracketHigh: &hi,
	}}
	require.NoError(t, c.Validate())
	opts := c.Investment.Options()
	require.NotNil(t, opts.Bracket)
	assert.Equal(t, 0.1, opts.Bracket.Low)
}

func TestDefaultRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	def := Default()
	for _, name := range []string{"plan.yaml", "plan.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, def.SaveToFile(path))
		if filepath.Ext(name) != ".yaml" {
			continue
		}
		c, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, def.Treasury, c.Treasury)
		assert.Equal(t, def.Trend.History, c.Series.Values())
		assert.Equal(t, def.Investment.Projects, c.Investment.Projects)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	dir := t.TempDir()
	p := filepath.Join(dir, "c.yaml")
	writeFile(t, p, "treasury_file: nope.yaml\n")
	_, err = LoadUnchecked(p)
	assert.Error(t, err)

	writeFile(t, p, "trend: [\n")
	_, err = LoadUnchecked(p)
	assert.Error(t, err)
}

func TestLoadServer(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("RESULT_CACHE_TTL", "30m")
	t.Setenv("SERIES_CACHE_TTL", "")

	s, err := LoadServer()
	require.NoError(t, err)
	assert.Equal(t, "9090", s.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, s.CORSOrigins)
	assert.Equal(t, 30*time.Minute, s.ResultCacheTTL)
	assert.Equal(t, 10*time.Minute, s.SeriesCacheTTL)
	assert.False(t, s.Production())

	t.Setenv("SERIES_CACHE_TTL", "soon")
	_, err = LoadServer()
	assert.Error(t, err)
}

func TestExampleScenariosLoad(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join("..", "..", "examples", "scenarios", "plan.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Series.Len())
	assert.Equal(t, "plan-with-equipment", cfg.Treasury.Name)
	assert.Equal(t, 30000.0, cfg.Treasury.CreditLine)
	require.Len(t, cfg.Treasury.Exceptional, 1)
	assert.Len(t, cfg.Investment.Projects, 2)

	cfg, err = Load(filepath.Join("..", "..", "examples", "scenarios", "wilson-backorder.yaml"))
	require.NoError(t, err)
	require.NotNil(t, cfg.EOQ)
	assert.True(t, cfg.EOQ.BackorderEnabled())

	cfg, err = Load(filepath.Join("..", "..", "examples", "scenarios", "workshop.yaml"))
	require.NoError(t, err)
	require.True(t, cfg.Production.IsSet())
	require.NotNil(t, cfg.Production.Mix)
	require.Len(t, cfg.Production.Mix.Products, 2)
	require.NotNil(t, cfg.Production.Mix.Products[1].MaxDemand)
	assert.Equal(t, 8000.0, *cfg.Production.Mix.Products[1].MaxDemand)
	assert.Equal(t, 1.5, cfg.Production.Mix.Products[1].Usage["machining"])
	require.NotNil(t, cfg.Production.Capacity)
	assert.Equal(t, 85.0, cfg.Production.Capacity.Efficiency)
	require.NotNil(t, cfg.Production.Schedule)
	assert.Equal(t, 500.0, cfg.Production.Schedule.SafetyStock)
}
