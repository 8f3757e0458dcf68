package optimize

import (
	"time"

	"github.com/rgehrsitz/vcpgo/internal/domain"
)

// SearchRequest defines the parameters of a strategy-space search
type SearchRequest struct {
	BirthDate           time.Time        `yaml:"birth_date" json:"birthDate"`
	RetirementAge       int              `yaml:"retirement_age" json:"retirementAge"`
	PriorWeeks          int              `yaml:"prior_weeks" json:"priorWeeks"`
	Dependent           bool             `yaml:"dependent" json:"dependent"`
	MinWageLevel        int              `yaml:"min_wage_level" json:"minWageLevel"`
	MaxWageLevel        int              `yaml:"max_wage_level" json:"maxWageLevel"`
	HistoricalDailyWage domain.DailyWage `yaml:"historical_daily_wage" json:"historicalDailyWage"`

	// AsOf is the month the search is run from; the earliest start cannot
	// precede it unless CustomStart says otherwise.
	AsOf        domain.YearMonth  `yaml:"as_of" json:"asOf"`
	CustomStart *domain.YearMonth `yaml:"custom_start,omitempty" json:"customStart,omitempty"`
}

// Profile returns the worker profile shared by every candidate
func (r SearchRequest) Profile() domain.WorkerProfile {
	return domain.WorkerProfile{
		BirthDate:           r.BirthDate,
		RetirementAge:       r.RetirementAge,
		PriorWeeks:          r.PriorWeeks,
		Dependent:           r.Dependent,
		HistoricalDailyWage: r.HistoricalDailyWage,
	}
}

// Candidate is one (months, type, level) cell of the search grid
type Candidate struct {
	Months       int                 `json:"months"`
	StrategyType domain.StrategyType `json:"strategyType"`
	WageLevel    int                 `json:"wageLevel"`
}

// SearchMetadata describes how the search space was bounded and how many
// candidates survived.
type SearchMetadata struct {
	Start            domain.YearMonth `yaml:"start" json:"start"`
	RetirementPeriod domain.YearMonth `yaml:"retirement_period" json:"retirementPeriod"`
	AgeAtStart       int              `yaml:"age_at_start" json:"ageAtStart"`
	AvailableMonths  int              `yaml:"available_months" json:"availableMonths"`
	MaxMonths        int              `yaml:"max_months" json:"maxMonths"`
	Capped           bool             `yaml:"capped" json:"capped"`
	MinWageLevel     int              `yaml:"min_wage_level" json:"minWageLevel"`
	MaxWageLevel     int              `yaml:"max_wage_level" json:"maxWageLevel"`
	Evaluated        int              `yaml:"evaluated" json:"evaluated"`
	Kept             int              `yaml:"kept" json:"kept"`
	Ineligible       int              `yaml:"ineligible" json:"ineligible"`
	Failed           int              `yaml:"failed" json:"failed"`
	TablesVersion    string           `yaml:"tables_version" json:"tablesVersion"`
	Duration         time.Duration    `yaml:"duration" json:"duration"`
}

// SearchResult contains the ranked results and metadata of a search
type SearchResult struct {
	Results  []*domain.BenefitResult `yaml:"results" json:"results"`
	Metadata SearchMetadata          `yaml:"metadata" json:"metadata"`
}

// Best returns up to n of the highest-ranked results
func (r *SearchResult) Best(n int) []*domain.BenefitResult {
	if n <= 0 || n >= len(r.Results) {
		return r.Results
	}
	return r.Results[:n]
}

// BestByType returns the highest-ranked result for each strategy type
func (r *SearchResult) BestByType() map[domain.StrategyType]*domain.BenefitResult {
	best := make(map[domain.StrategyType]*domain.BenefitResult)
	for _, res := range r.Results {
		if _, ok := best[res.StrategyType]; !ok {
			best[res.StrategyType] = res
		}
	}
	return best
}

// Filter returns the results of one strategy type, keeping their order
func (r *SearchResult) Filter(typ domain.StrategyType) []*domain.BenefitResult {
	var out []*domain.BenefitResult
	for _, res := range r.Results {
		if res.StrategyType == typ {
			out = append(out, res)
		}
	}
	return out
}

// SolverOptions configures the search
type SolverOptions struct {
	Limit           int  // Truncate ranked results; 0 keeps everything
	IncludeSchedule bool // Attach each candidate's schedule to its result
}

// DefaultSolverOptions returns default search configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Limit:           0,
		IncludeSchedule: false,
	}
}

// SearchError represents an error that aborted a search
type SearchError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *SearchError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *SearchError) Unwrap() error {
	return e.Cause
}
