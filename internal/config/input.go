package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rgehrsitz/vcpgo/internal/calculation"
	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/rgehrsitz/vcpgo/internal/optimize"
	"github.com/rgehrsitz/vcpgo/internal/reconstruct"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ProfileConfig is the YAML document consumed by the CLI and TUI. Only
// profile is required; each command reads the sections it needs.
type ProfileConfig struct {
	Profile  domain.WorkerProfile             `yaml:"profile"`
	Strategy *StrategyConfig                  `yaml:"strategy,omitempty"`
	Search   *SearchConfig                    `yaml:"search,omitempty"`
	Payments []reconstruct.PaymentRecord      `yaml:"payments,omitempty"`
	Reentry  *ReentryConfig                   `yaml:"reentry,omitempty"`
	Planned  *reconstruct.PlannedContinuation `yaml:"planned,omitempty"`
}

// StrategyConfig selects one strategy by type and wage level. The range is
// Start plus either Months or End.
type StrategyConfig struct {
	Type      domain.StrategyType `yaml:"type"`
	WageLevel decimal.Decimal     `yaml:"wage_level"`
	Start     domain.YearMonth    `yaml:"start"`
	Months    int                 `yaml:"months,omitempty"`
	End       domain.YearMonth    `yaml:"end,omitempty"`
}

// SearchConfig bounds the strategy search
type SearchConfig struct {
	MinWageLevel int               `yaml:"min_wage_level"`
	MaxWageLevel int               `yaml:"max_wage_level"`
	AsOf         domain.YearMonth  `yaml:"as_of,omitempty"`
	CustomStart  *domain.YearMonth `yaml:"custom_start,omitempty"`
	Limit        int               `yaml:"limit,omitempty"`
}

// ReentryConfig describes a resumption after a lapse
type ReentryConfig struct {
	Resume              domain.YearMonth `yaml:"resume"`
	RetroactiveMultiple *decimal.Decimal `yaml:"retroactive_multiple,omitempty"`
}

// Range resolves the configured months into an inclusive range
func (s *StrategyConfig) Range() domain.Range {
	if s.Months > 0 {
		return domain.NewRange(s.Start, s.Months)
	}
	return domain.Range{Start: s.Start, End: s.End}
}

// ToStrategy builds the schedule strategy for the configured type and level
func (s *StrategyConfig) ToStrategy(tables *domain.StatutoryTables) (domain.Strategy, error) {
	typ, err := domain.ParseStrategyType(string(s.Type))
	if err != nil {
		return domain.Strategy{}, err
	}
	rng := s.Range()
	if err := rng.Validate(); err != nil {
		return domain.Strategy{}, err
	}
	return calculation.StrategyForType(tables, typ, s.WageLevel, rng), nil
}

// SearchRequest assembles a strategy search for the profile. asOf is used
// when the file does not pin one.
func (c *ProfileConfig) SearchRequest(asOf time.Time) optimize.SearchRequest {
	req := optimize.SearchRequest{
		BirthDate:           c.Profile.BirthDate,
		RetirementAge:       c.Profile.RetirementAge,
		PriorWeeks:          c.Profile.PriorWeeks,
		Dependent:           c.Profile.Dependent,
		HistoricalDailyWage: c.Profile.HistoricalDailyWage,
		AsOf:                domain.YearMonthOf(asOf),
	}
	if c.Search != nil {
		req.MinWageLevel = c.Search.MinWageLevel
		req.MaxWageLevel = c.Search.MaxWageLevel
		req.CustomStart = c.Search.CustomStart
		if !c.Search.AsOf.IsZero() {
			req.AsOf = c.Search.AsOf
		}
	}
	return req
}

// ReconstructRequest assembles a reconstruction from the payments (or, when
// none are listed, the strategy) and the optional re-entry and plan.
func (c *ProfileConfig) ReconstructRequest(tables *domain.StatutoryTables) (reconstruct.Request, error) {
	req := reconstruct.Request{
		Profile:  c.Profile,
		Payments: c.Payments,
		Planned:  c.Planned,
	}
	if len(c.Payments) == 0 {
		if c.Strategy == nil {
			return reconstruct.Request{}, domain.NewValidationError("payments", "either payments or a strategy is required")
		}
		strategy, err := c.Strategy.ToStrategy(tables)
		if err != nil {
			return reconstruct.Request{}, err
		}
		req.Strategy = &strategy
	}
	if c.Reentry != nil {
		resume := c.Reentry.Resume
		req.Resume = &resume
		req.RetroactiveMultiple = c.Reentry.RetroactiveMultiple
	}
	return req, nil
}

// InputParser handles parsing of profile and statutory table files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadProfile loads a profile document from a YAML file and validates it
// against the given tables (the built-in law version when nil).
func (ip *InputParser) LoadProfile(filename string, tables *domain.StatutoryTables) (*ProfileConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseProfile(data, tables)
}

// ParseProfile parses and validates a profile document
func (ip *InputParser) ParseProfile(data []byte, tables *domain.StatutoryTables) (*ProfileConfig, error) {
	var cfg ProfileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if tables == nil {
		tables = domain.DefaultStatutoryTables()
	}
	if err := ip.ValidateProfile(&cfg, tables); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}
	return &cfg, nil
}

// ValidateProfile validates the worker profile and any optional sections
func (ip *InputParser) ValidateProfile(cfg *ProfileConfig, tables *domain.StatutoryTables) error {
	if err := cfg.Profile.Validate(tables); err != nil {
		return err
	}

	if s := cfg.Strategy; s != nil {
		if _, err := domain.ParseStrategyType(string(s.Type)); err != nil {
			return err
		}
		if !tables.ValidWageMultiple(s.WageLevel) {
			return domain.NewValidationError("strategy.wage_level", "wage level must be between %s and %s, got %s",
				tables.Scheme.MinWageMultiple, tables.Scheme.MaxWageMultiple, s.WageLevel)
		}
		if s.Months < 0 {
			return domain.NewValidationError("strategy.months", "months cannot be negative")
		}
		if s.Months > 0 && !s.End.IsZero() {
			return domain.NewValidationError("strategy.end", "give either months or end, not both")
		}
		if err := s.Range().Validate(); err != nil {
			return err
		}
	}

	if s := cfg.Search; s != nil {
		if s.MinWageLevel > 0 && s.MaxWageLevel > 0 && s.MinWageLevel > s.MaxWageLevel {
			return domain.NewValidationError("search.min_wage_level", "min wage level %d is above max wage level %d",
				s.MinWageLevel, s.MaxWageLevel)
		}
		if s.Limit < 0 {
			return domain.NewValidationError("search.limit", "limit cannot be negative")
		}
	}

	for i, p := range cfg.Payments {
		if err := p.Period.Validate(); err != nil {
			return domain.NewValidationError(fmt.Sprintf("payments[%d].period", i), "%v", err)
		}
		if !p.Amount.IsPositive() {
			return domain.NewValidationError(fmt.Sprintf("payments[%d].amount", i), "amount must be positive")
		}
	}

	if cfg.Reentry != nil {
		if err := cfg.Reentry.Resume.Validate(); err != nil {
			return domain.NewValidationError("reentry.resume", "%v", err)
		}
	}

	if p := cfg.Planned; p != nil {
		if p.Months <= 0 {
			return domain.NewValidationError("planned.months", "planned months must be positive")
		}
		if p.Type != "" {
			if _, err := domain.ParseStrategyType(string(p.Type)); err != nil {
				return err
			}
		}
	}

	return nil
}

// LoadTables loads a statutory law version from a YAML file. Sections left
// out of the file keep the built-in values.
func (ip *InputParser) LoadTables(filename string) (*domain.StatutoryTables, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	tables := domain.DefaultStatutoryTables()
	if err := yaml.Unmarshal(data, tables); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	tables.Normalize()

	if err := ip.ValidateTables(tables); err != nil {
		return nil, fmt.Errorf("tables validation failed: %w", err)
	}
	return tables, nil
}

// ValidateTables checks a law version for internal consistency
func (ip *InputParser) ValidateTables(t *domain.StatutoryTables) error {
	if t.WageIndex.BaseYear <= 0 {
		return fmt.Errorf("wage index base year is required")
	}
	if !t.WageIndex.BaseDailyValue.IsPositive() {
		return fmt.Errorf("wage index base value must be positive")
	}
	if t.WageIndex.AnnualGrowth.IsNegative() {
		return fmt.Errorf("wage index growth cannot be negative")
	}

	if len(t.ContributionRates) == 0 {
		return fmt.Errorf("contribution rate schedule is empty")
	}
	for i, r := range t.ContributionRates {
		if !r.Rate.IsPositive() || r.Rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return fmt.Errorf("contribution rate for %d must be between 0 and 1, got %s", r.Year, r.Rate)
		}
		if i > 0 && r.Year == t.ContributionRates[i-1].Year {
			return fmt.Errorf("contribution rate for %d is listed twice", r.Year)
		}
	}

	if len(t.PensionBrackets) == 0 {
		return fmt.Errorf("pension bracket table is empty")
	}
	for i, b := range t.PensionBrackets {
		if !b.Ceiling.IsPositive() {
			return fmt.Errorf("bracket %d ceiling must be positive", i)
		}
		if i > 0 && b.Ceiling.Equal(t.PensionBrackets[i-1].Ceiling) {
			return fmt.Errorf("bracket ceiling %s is listed twice", b.Ceiling)
		}
		if b.BasePercentage.IsNegative() || b.Increment.IsNegative() {
			return fmt.Errorf("bracket %d percentages cannot be negative", i)
		}
	}

	s := t.Scheme
	if s.MinRetirementAge <= 0 || s.MinRetirementAge > s.MaxRetirementAge {
		return fmt.Errorf("retirement age range %d-%d is invalid", s.MinRetirementAge, s.MaxRetirementAge)
	}
	for age := s.MinRetirementAge; age <= s.MaxRetirementAge; age++ {
		f, ok := t.AgeFactorFor(age)
		if !ok {
			return fmt.Errorf("age factor for %d is missing", age)
		}
		if !f.IsPositive() || f.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("age factor for %d must be in (0, 1], got %s", age, f)
		}
	}

	if !t.Benefit.LegalMultiplier.IsPositive() {
		return fmt.Errorf("legal multiplier must be positive")
	}
	if t.Benefit.DependentBonus.IsNegative() {
		return fmt.Errorf("dependent bonus cannot be negative")
	}
	if !t.Benefit.YearEndBonusMonths.IsPositive() {
		return fmt.Errorf("year-end bonus months must be positive")
	}
	if t.Benefit.ReturnHorizonYears <= 0 {
		return fmt.Errorf("return horizon must be positive")
	}

	if s.MinimumWeeks <= 0 || s.WeeksPerIncrement <= 0 {
		return fmt.Errorf("minimum weeks and weeks per increment must be positive")
	}
	if !s.WeeksPerMonth.IsPositive() || !s.DaysPerMonth.IsPositive() {
		return fmt.Errorf("weeks and days per month must be positive")
	}
	if s.WindowWeeks <= 0 || s.WholeWeeksPerMonth <= 0 || s.BlendEveryMonths <= 0 {
		return fmt.Errorf("window weeks, whole weeks per month and blend interval must be positive")
	}
	if s.MaxMonths <= 0 || s.MaxMonths*s.WholeWeeksPerMonth > s.WindowWeeks {
		return fmt.Errorf("max months %d does not fit a %d-week window", s.MaxMonths, s.WindowWeeks)
	}
	if s.MinWageMultiple.LessThan(decimal.NewFromInt(1)) || s.MinWageMultiple.GreaterThan(s.MaxWageMultiple) {
		return fmt.Errorf("wage multiple range %s-%s is invalid", s.MinWageMultiple, s.MaxWageMultiple)
	}
	if s.EntryAge <= 0 || s.EntryAge >= s.MinRetirementAge {
		return fmt.Errorf("entry age %d must be below the minimum retirement age %d", s.EntryAge, s.MinRetirementAge)
	}
	if s.ReentryGraceMonths < 0 {
		return fmt.Errorf("re-entry grace months cannot be negative")
	}

	return nil
}
