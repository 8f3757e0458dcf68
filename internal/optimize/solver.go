package optimize

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rgehrsitz/vcpgo/internal/calculation"
	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/rgehrsitz/vcpgo/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Solver enumerates the strategy space (month count × strategy type × wage
// level) and ranks the eligible candidates by return ratio.
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new strategy solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// scheduleKey identifies a full-length schedule; every candidate with the
// same type and level uses a prefix of it.
type scheduleKey struct {
	typ   domain.StrategyType
	level int
}

type builtSchedule struct {
	months []domain.MonthlyContribution
	err    error
}

// Enumerate evaluates every candidate in the search space and returns the
// eligible ones sorted by return ratio, highest first. A candidate that
// fails is logged and skipped; it never aborts the scan.
func (s *Solver) Enumerate(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	started := time.Now()
	engine := s.CalcEngine
	if engine == nil || engine.Tables == nil {
		engine = calculation.NewCalculationEngine()
		if s.CalcEngine != nil {
			engine.SetLogger(s.CalcEngine.Logger)
		}
	}
	tables := engine.Tables
	log := engine.Logger
	if log == nil {
		log = calculation.NopLogger{}
	}

	req = s.applyDefaults(tables, req)
	if err := s.validate(tables, req); err != nil {
		return nil, &SearchError{Operation: "enumerate", Message: "invalid search request", Cause: err}
	}

	profile := req.Profile()
	start := s.earliestStart(tables, req)
	retirement := profile.RetirementPeriod()
	available := start.MonthsUntil(retirement)
	if available <= 0 {
		return nil, &SearchError{
			Operation: "enumerate",
			Message:   "no contribution months available",
			Cause: domain.NewValidationError("start", "start %s is not before the retirement month %s",
				start, retirement),
		}
	}

	meta := SearchMetadata{
		Start:            start,
		RetirementPeriod: retirement,
		AgeAtStart:       dateutil.Age(req.BirthDate, start.FirstDay()),
		AvailableMonths:  available,
		MaxMonths:        tables.Scheme.MaxMonths,
		MinWageLevel:     req.MinWageLevel,
		MaxWageLevel:     req.MaxWageLevel,
		TablesVersion:    tables.Metadata.Version,
	}
	if available > tables.Scheme.MaxMonths {
		available = tables.Scheme.MaxMonths
		meta.AvailableMonths = available
		meta.Capped = true
	}

	log.Infof("searching %d months x %d types x levels %d-%d from %s",
		available, len(domain.StrategyTypes), req.MinWageLevel, req.MaxWageLevel, start)

	fullRange := domain.NewRange(start, available)
	schedules := make(map[scheduleKey]builtSchedule)
	scheduleFor := func(typ domain.StrategyType, level int) builtSchedule {
		key := scheduleKey{typ: typ, level: level}
		if b, ok := schedules[key]; ok {
			return b
		}
		strategy := calculation.StrategyForType(tables, typ, decimal.NewFromInt(int64(level)), fullRange)
		months, err := engine.BuildContributionSchedule(strategy)
		b := builtSchedule{months: months, err: err}
		schedules[key] = b
		return b
	}

	var results []*domain.BenefitResult
	for n := 1; n <= available; n++ {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		for _, typ := range domain.StrategyTypes {
			for level := req.MinWageLevel; level <= req.MaxWageLevel; level++ {
				meta.Evaluated++
				candidate := Candidate{Months: n, StrategyType: typ, WageLevel: level}

				built := scheduleFor(typ, level)
				if built.err != nil {
					meta.Failed++
					log.Warnf("skipping %+v: %v", candidate, built.err)
					continue
				}

				res, err := engine.Evaluate(built.months[:n], profile)
				if err != nil {
					meta.Failed++
					log.Warnf("skipping %+v: %v", candidate, err)
					continue
				}
				if res.Failure != nil {
					if res.Failure.Kind == domain.FailureEligibility {
						meta.Ineligible++
					} else {
						meta.Failed++
						log.Warnf("skipping %+v: %s", candidate, res.Failure.Reason)
					}
					continue
				}

				res.StrategyKind = typ.Kind()
				res.StrategyType = typ
				res.WageLevel = level
				if s.Options.IncludeSchedule {
					res.Schedule = append([]domain.MonthlyContribution(nil), built.months[:n]...)
				}
				results = append(results, res)
			}
		}
	}

	SortResults(results)
	meta.Kept = len(results)
	if s.Options.Limit > 0 && len(results) > s.Options.Limit {
		results = results[:s.Options.Limit]
	}
	meta.Duration = time.Since(started)

	log.Infof("evaluated %d candidates: %d kept, %d ineligible, %d failed",
		meta.Evaluated, meta.Kept, meta.Ineligible, meta.Failed)

	return &SearchResult{Results: results, Metadata: meta}, nil
}

// SortResults orders results by return ratio descending. Ties go to the
// higher pension, then fewer months, then the lower level, then the type name.
func SortResults(results []*domain.BenefitResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if c := a.ReturnRatio.Cmp(b.ReturnRatio); c != 0 {
			return c > 0
		}
		if c := a.Pension().Cmp(b.Pension()); c != 0 {
			return c > 0
		}
		if a.MonthsContributed != b.MonthsContributed {
			return a.MonthsContributed < b.MonthsContributed
		}
		if a.WageLevel != b.WageLevel {
			return a.WageLevel < b.WageLevel
		}
		return a.StrategyType < b.StrategyType
	})
}

// applyDefaults fills each unset wage bound with the statutory limit
func (s *Solver) applyDefaults(tables *domain.StatutoryTables, req SearchRequest) SearchRequest {
	if req.MinWageLevel == 0 {
		req.MinWageLevel = int(tables.Scheme.MinWageMultiple.IntPart())
	}
	if req.MaxWageLevel == 0 {
		req.MaxWageLevel = int(tables.Scheme.MaxWageMultiple.IntPart())
	}
	return req
}

func (s *Solver) validate(tables *domain.StatutoryTables, req SearchRequest) error {
	if err := req.Profile().Validate(tables); err != nil {
		return err
	}
	minLevel := int(tables.Scheme.MinWageMultiple.IntPart())
	maxLevel := int(tables.Scheme.MaxWageMultiple.IntPart())
	if req.MinWageLevel < minLevel || req.MaxWageLevel > maxLevel {
		return domain.NewValidationError("wage_level", "wage levels must lie within [%d, %d], got [%d, %d]",
			minLevel, maxLevel, req.MinWageLevel, req.MaxWageLevel)
	}
	if req.MinWageLevel > req.MaxWageLevel {
		return domain.NewValidationError("wage_level", "min wage level %d is above max wage level %d",
			req.MinWageLevel, req.MaxWageLevel)
	}
	if req.AsOf.IsZero() {
		return domain.NewValidationError("as_of", "the month the search runs from is required")
	}
	if err := req.AsOf.Validate(); err != nil {
		return domain.NewValidationError("as_of", "%v", err)
	}
	if req.CustomStart != nil {
		if err := req.CustomStart.Validate(); err != nil {
			return domain.NewValidationError("custom_start", "%v", err)
		}
	}
	return nil
}

// earliestStart is the custom start when given; otherwise AsOf for a worker
// already at the entry age, or the month after the entry-age birthday.
func (s *Solver) earliestStart(tables *domain.StatutoryTables, req SearchRequest) domain.YearMonth {
	if req.CustomStart != nil {
		return *req.CustomStart
	}
	entryAge := tables.Scheme.EntryAge
	if dateutil.Age(req.BirthDate, req.AsOf.FirstDay()) >= entryAge {
		return req.AsOf
	}
	birthday := dateutil.BirthdayIn(req.BirthDate, req.BirthDate.Year()+entryAge)
	return domain.YearMonthOf(birthday).AddMonths(1)
}

// DescribeCandidate renders a result's grid cell for logs and tables
func DescribeCandidate(r *domain.BenefitResult) string {
	return fmt.Sprintf("%s level %d for %d months", r.StrategyType, r.WageLevel, r.MonthsContributed)
}
