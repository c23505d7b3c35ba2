package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"budget-control/internal/data"
	"budget-control/internal/inventory"
	"budget-control/internal/investment"
	"budget-control/internal/model"
	"budget-control/internal/production"
	"budget-control/internal/treasury"

	"gopkg.in/yaml.v3"
)

// Config is a planning scenario on disk (YAML). Every section is optional,
// but at least one must be present.
type Config struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	Trend       TrendConfig             `yaml:"trend,omitempty" json:"trend,omitempty"`
	Seasonality SeasonalityConfig       `yaml:"seasonality,omitempty" json:"seasonality,omitempty"`
	EOQ         *model.OrderPolicyInput `yaml:"eoq,omitempty" json:"eoq,omitempty"`
	Investment  InvestmentConfig        `yaml:"investment,omitempty" json:"investment,omitempty"`

	// Optional: load the treasury projection from a separate YAML.
	// If both TreasuryFile and Treasury are provided, non-zero Treasury fields win.
	TreasuryFile string          `yaml:"treasury_file,omitempty" json:"treasury_file,omitempty"`
	Treasury     treasury.Config `yaml:"treasury,omitempty" json:"treasury,omitempty"`

	ABC ABCConfig `yaml:"abc,omitempty" json:"abc,omitempty"`

	Production ProductionConfig `yaml:"production,omitempty" json:"production,omitempty"`

	// Series is the trend history resolved from Trend.History or Trend.SeriesFile.
	Series model.TimeSeries `yaml:"-" json:"-"`
}

type TrendConfig struct {
	// SeriesFile is a JSON or CSV series, relative to the config file.
	SeriesFile string    `yaml:"series_file,omitempty" json:"series_file,omitempty"`
	History    []float64 `yaml:"history,omitempty" json:"history,omitempty"`
	Horizon    int       `yaml:"horizon,omitempty" json:"horizon,omitempty"`
}

type SeasonalityConfig struct {
	Cycle int `yaml:"cycle,omitempty" json:"cycle,omitempty"`
	// Seasons are explicit per-season observations, e.g. Q1: [100, 110].
	Seasons map[string][]float64 `yaml:"seasons,omitempty" json:"seasons,omitempty"`
}

type InvestmentConfig struct {
	Projects    []model.InvestmentProject `yaml:"projects,omitempty" json:"projects,omitempty"`
	BracketLow  *float64                  `yaml:"bracket_low,omitempty" json:"bracket_low,omitempty"`
	BracketHigh *float64                  `yaml:"bracket_high,omitempty" json:"bracket_high,omitempty"`
	Tolerance   float64                   `yaml:"tolerance,omitempty" json:"tolerance,omitempty"`
}

type ABCConfig struct {
	Thresholds inventory.Thresholds `yaml:"thresholds,omitempty" json:"thresholds,omitempty"`
	Items      []inventory.Item     `yaml:"items,omitempty" json:"items,omitempty"`
}

type ProductionConfig struct {
	Mix      *production.MixInput      `yaml:"mix,omitempty" json:"mix,omitempty"`
	Capacity *production.CapacityInput `yaml:"capacity,omitempty" json:"capacity,omitempty"`
	Schedule *production.ScheduleInput `yaml:"schedule,omitempty" json:"schedule,omitempty"`
}

func (p ProductionConfig) IsSet() bool {
	return p.Mix != nil || p.Capacity != nil || p.Schedule != nil
}

// Options builds the IRR options; a bracket is only set when both bounds are given.
func (ic InvestmentConfig) Options() investment.Options {
	opts := investment.Options{Tolerance: ic.Tolerance}
	if ic.BracketLow != nil && ic.BracketHigh != nil {
		opts.Bracket = &investment.Bracket{Low: *ic.BracketLow, High: *ic.BracketHigh}
	}
	return opts
}

func (c *Config) HasTreasury() bool { return c.Treasury.Periods > 0 }

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads the scenario and resolves file references, but does not
// validate it.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.TreasuryFile != "" {
		loaded, err := loadTreasuryFile(resolve(path, c.TreasuryFile))
		if err != nil {
			return nil, err
		}
		c.Treasury = MergeTreasury(loaded, c.Treasury)
	}
	switch {
	case c.Trend.SeriesFile != "":
		ts, err := loadSeriesFile(resolve(path, c.Trend.SeriesFile))
		if err != nil {
			return nil, err
		}
		c.Series = ts
	case len(c.Trend.History) > 0:
		c.Series = model.NewTimeSeries(c.Trend.History...)
	}
	return &c, nil
}

// resolve interprets ref relative to the config file directory, falling back
// to the path as given (relative to cwd) when that does not exist.
func resolve(configPath, ref string) string {
	if filepath.IsAbs(ref) {
		return ref
	}
	cand := filepath.Join(filepath.Dir(configPath), ref)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return ref
}

func loadSeriesFile(path string) (model.TimeSeries, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		key := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return data.LoadSeriesCSV(path, key)
	}
	return data.LoadSeriesJSON(path)
}

func (c *Config) applyDefaults() {
	if c.Series.Len() > 0 && c.Seasonality.Cycle == 0 && len(c.Seasonality.Seasons) == 0 {
		c.Seasonality.Cycle = 4
	}
	if c.Trend.Horizon == 0 && c.Seasonality.Cycle > 0 {
		c.Trend.Horizon = c.Seasonality.Cycle
	}
	if len(c.ABC.Items) > 0 && c.ABC.Thresholds == (inventory.Thresholds{}) {
		c.ABC.Thresholds = inventory.DefaultThresholds()
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	empty := c.Series.Len() == 0 && len(c.Seasonality.Seasons) == 0 && c.EOQ == nil &&
		len(c.Investment.Projects) == 0 && !c.HasTreasury() && len(c.ABC.Items) == 0 &&
		!c.Production.IsSet()
	if empty {
		return model.Invalid("config", "no scenario section is set")
	}
	if c.Series.Len() > 0 {
		if err := c.Series.Validate(2); err != nil {
			return fmt.Errorf("trend: %w", err)
		}
	}
	if c.Trend.Horizon < 0 {
		return fmt.Errorf("trend: %w", model.Invalid("horizon", "must be >= 0, got %d", c.Trend.Horizon))
	}
	if c.Seasonality.Cycle == 1 || c.Seasonality.Cycle < 0 {
		return fmt.Errorf("seasonality: %w", model.Invalid("cycle", "must be >= 2, got %d", c.Seasonality.Cycle))
	}
	if c.EOQ != nil {
		if err := c.EOQ.Validate(); err != nil {
			return fmt.Errorf("eoq: %w", err)
		}
	}
	for i, p := range c.Investment.Projects {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("investment project %d (%s): %w", i+1, p.Name, err)
		}
	}
	if (c.Investment.BracketLow == nil) != (c.Investment.BracketHigh == nil) {
		return fmt.Errorf("investment: %w", model.Invalid("bracket", "bracket_low and bracket_high must be set together"))
	}
	if c.HasTreasury() {
		t := c.Treasury
		if err := t.Validate(); err != nil {
			return fmt.Errorf("treasury: %w", err)
		}
	}
	if len(c.ABC.Items) > 0 {
		if _, err := inventory.ClassifyABC(c.ABC.Items, c.ABC.Thresholds); err != nil {
			return fmt.Errorf("abc: %w", err)
		}
	}
	if m := c.Production.Mix; m != nil {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("production mix: %w", err)
		}
	}
	if cp := c.Production.Capacity; cp != nil {
		if err := cp.Validate(); err != nil {
			return fmt.Errorf("production capacity: %w", err)
		}
	}
	if sc := c.Production.Schedule; sc != nil {
		if _, err := production.SimulateSchedule(*sc); err != nil {
			return fmt.Errorf("production schedule: %w", err)
		}
	}
	return nil
}

type treasuryFileWrapper struct {
	Treasury treasury.Config `yaml:"treasury"`
}

func loadTreasuryFile(path string) (treasury.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return treasury.Config{}, err
	}
	var w treasuryFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return treasury.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.Treasury, nil
}

// MergeTreasury overlays non-zero fields from override onto base.
// Used when loading a treasury file and then applying the scenario's own fields.
func MergeTreasury(base, override treasury.Config) treasury.Config {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.InitialBalance != 0 {
		out.InitialBalance = override.InitialBalance
	}
	if override.Periods != 0 {
		out.Periods = override.Periods
	}
	if override.PeriodDays != 0 {
		out.PeriodDays = override.PeriodDays
	}
	if override.Revenue != 0 {
		out.Revenue = override.Revenue
	}
	if len(override.RevenueSchedule) > 0 {
		out.RevenueSchedule = override.RevenueSchedule
	}
	if override.BaseOutflow != 0 {
		out.BaseOutflow = override.BaseOutflow
	}
	if len(override.OutflowSchedule) > 0 {
		out.OutflowSchedule = override.OutflowSchedule
	}
	if len(override.CollectionBuckets) > 0 {
		out.CollectionBuckets = override.CollectionBuckets
	}
	if len(override.PaymentBuckets) > 0 {
		out.PaymentBuckets = override.PaymentBuckets
	}
	if len(override.Exceptional) > 0 {
		out.Exceptional = override.Exceptional
	}
	if override.CreditLine != 0 {
		out.CreditLine = override.CreditLine
	}
	if override.TensionThreshold != 0 {
		out.TensionThreshold = override.TensionThreshold
	}
	return out
}

// SaveToFile writes YAML for .yaml/.yml paths and indented JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var (
		raw []byte
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		raw, err = yaml.Marshal(c)
	default:
		raw, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Default is a complete sample scenario used by `config init`.
func Default() *Config {
	return &Config{
		Name: "sample-plan",
		Trend: TrendConfig{
			History: []float64{120, 135, 115, 150, 160, 155, 170, 180},
			Horizon: 4,
		},
		Seasonality: SeasonalityConfig{Cycle: 4},
		EOQ: &model.OrderPolicyInput{
			AnnualDemand:       320000,
			OrderCost:          560,
			HoldingCostPerUnit: 10.8,
		},
		Investment: InvestmentConfig{
			Projects: []model.InvestmentProject{{
				Name:          "machine",
				InitialOutlay: 150000,
				CashFlows:     []float64{50000, 50000, 50000, 50000, 50000},
				DiscountRate:  0.15,
			}},
		},
		Treasury: treasury.Config{
			Name:              "next-year",
			InitialBalance:    50000,
			Periods:           12,
			Revenue:           80000,
			BaseOutflow:       70000,
			CollectionBuckets: treasury.CollectionPreset(60),
			Exceptional:       []treasury.Expense{{Period: 6, Amount: 40000, Label: "equipment"}},
			CreditLine:        30000,
			TensionThreshold:  10000,
		},
		ABC: ABCConfig{
			Thresholds: inventory.DefaultThresholds(),
			Items: []inventory.Item{
				{Name: "steel", AnnualValue: 500000},
				{Name: "motors", AnnualValue: 300000},
				{Name: "cables", AnnualValue: 100000},
				{Name: "screws", AnnualValue: 60000},
				{Name: "labels", AnnualValue: 40000},
			},
		},
	}
}
