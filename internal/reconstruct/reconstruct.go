package reconstruct

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/vcpgo/internal/calculation"
	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// PaymentRecord is one contribution actually paid for a month
type PaymentRecord struct {
	Period domain.YearMonth `yaml:"period" json:"period"`
	Amount decimal.Decimal  `yaml:"amount" json:"amount"`
}

// PlannedContinuation describes months the worker intends to pay after
// resuming. A zero WageMultiple continues at the last paid month's multiple.
type PlannedContinuation struct {
	Months       int                 `yaml:"months" json:"months"`
	Type         domain.StrategyType `yaml:"type" json:"type"`
	WageMultiple decimal.Decimal     `yaml:"wage_multiple" json:"wageMultiple"`
}

// Request is the input to a reconstruction. Exactly one of Strategy and
// Payments describes the months already paid.
type Request struct {
	Profile  domain.WorkerProfile `yaml:"profile" json:"profile"`
	Strategy *domain.Strategy     `yaml:"strategy,omitempty" json:"strategy,omitempty"`
	Payments []PaymentRecord      `yaml:"payments,omitempty" json:"payments,omitempty"`

	// Resume is the month contributions restart; the months between the last
	// payment and Resume are back-filled as retroactive months.
	Resume              *domain.YearMonth    `yaml:"resume,omitempty" json:"resume,omitempty"`
	RetroactiveMultiple *decimal.Decimal     `yaml:"retroactive_multiple,omitempty" json:"retroactiveMultiple,omitempty"`
	Planned             *PlannedContinuation `yaml:"planned,omitempty" json:"planned,omitempty"`
}

// Reconstruction is the canonical schedule rebuilt from history together
// with its projected benefit.
type Reconstruction struct {
	Schedule        []domain.MonthlyContribution `yaml:"schedule" json:"schedule"`
	Original        int                          `yaml:"original" json:"original"`
	Retroactive     int                          `yaml:"retroactive" json:"retroactive"`
	Planned         int                          `yaml:"planned" json:"planned"`
	PaidCost        decimal.Decimal              `yaml:"paid_cost" json:"paidCost"`
	RetroactiveCost decimal.Decimal              `yaml:"retroactive_cost" json:"retroactiveCost"`
	PlannedCost     decimal.Decimal              `yaml:"planned_cost" json:"plannedCost"`
	State           EnrollmentState              `yaml:"state" json:"state"`
	Transitions     []Transition                 `yaml:"transitions" json:"transitions"`
	Result          *domain.BenefitResult        `yaml:"result" json:"result"`
}

// Reconstructor rebuilds schedules from payment history
type Reconstructor struct {
	Engine *calculation.CalculationEngine
}

// NewReconstructor creates a reconstructor; a nil engine uses the default tables.
func NewReconstructor(engine *calculation.CalculationEngine) *Reconstructor {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	return &Reconstructor{Engine: engine}
}

// Reconstruct rebuilds the chronological schedule (paid, retroactive and
// planned months) and projects the pension it earns. The combined month
// count is checked against the statutory ceiling before anything is built;
// an over-limit request fails rather than being truncated.
func (r *Reconstructor) Reconstruct(req Request) (*Reconstruction, error) {
	tables := r.Engine.Tables
	if err := req.Profile.Validate(tables); err != nil {
		return nil, err
	}

	original, err := r.originalPeriods(req)
	if err != nil {
		return nil, err
	}
	lastPaid := original[len(original)-1]

	retro := 0
	if req.Resume != nil {
		if err := req.Resume.Validate(); err != nil {
			return nil, domain.NewValidationError("resume", "%v", err)
		}
		if !req.Resume.After(lastPaid) {
			return nil, domain.NewValidationError("resume", "resume month %s must follow the last payment in %s", req.Resume, lastPaid)
		}
		retro = lastPaid.MonthsUntil(*req.Resume) - 1
	}

	planned := 0
	if req.Planned != nil {
		if req.Planned.Months <= 0 {
			return nil, domain.NewValidationError("planned.months", "planned months must be positive, got %d", req.Planned.Months)
		}
		if req.Planned.Type != "" {
			if _, err := domain.ParseStrategyType(string(req.Planned.Type)); err != nil {
				return nil, domain.NewValidationError("planned.type", "unknown strategy type %q (want fixed or progressive)", req.Planned.Type)
			}
		}
		planned = req.Planned.Months
	}

	if total := len(original) + retro + planned; total > tables.Scheme.MaxMonths {
		return nil, &domain.LimitExceededError{
			Original:    len(original),
			Retroactive: retro,
			Planned:     planned,
			Limit:       tables.Scheme.MaxMonths,
		}
	}

	paid, err := r.paidMonths(req)
	if err != nil {
		return nil, err
	}

	tracker := NewTracker(tables.Scheme.ReentryGraceMonths)
	if err := replay(tracker, paid); err != nil {
		return nil, err
	}

	schedule := paid
	last := paid[len(paid)-1]
	var retroMonths, plannedMonths []domain.MonthlyContribution

	if req.Resume != nil {
		for p := lastPaid.AddMonths(1); p.Before(*req.Resume); p = p.AddMonths(1) {
			if _, err := tracker.Apply(Event{Kind: EventMiss, Period: p}); err != nil {
				return nil, err
			}
		}
		if _, err := tracker.Apply(Event{Kind: EventResume, Period: *req.Resume}); err != nil {
			return nil, err
		}

		if retro > 0 {
			multiple := continuationMultiple(tables, last)
			if req.RetroactiveMultiple != nil {
				multiple = *req.RetroactiveMultiple
			}
			retroMonths, err = r.generate(domain.Strategy{
				Kind:         domain.FixedWageIndex,
				WageMultiple: multiple,
				Range:        domain.NewRange(lastPaid.AddMonths(1), retro),
			}, domain.OriginRetroactive)
			if err != nil {
				return nil, fmt.Errorf("failed to back-fill retroactive months: %w", err)
			}
			schedule = append(schedule, retroMonths...)
		}
	}

	if req.Planned != nil {
		start := lastPaid.AddMonths(1)
		if req.Resume != nil {
			start = *req.Resume
		}
		multiple := req.Planned.WageMultiple
		if multiple.IsZero() {
			multiple = continuationMultiple(tables, last)
		}
		typ := req.Planned.Type
		if typ == "" {
			typ = domain.StrategyProgressive
		}
		strategy := calculation.StrategyForType(tables, typ, multiple, domain.NewRange(start, planned))
		plannedMonths, err = r.generate(strategy, domain.OriginPlanned)
		if err != nil {
			return nil, fmt.Errorf("failed to plan continuation: %w", err)
		}
		if err := replay(tracker, plannedMonths); err != nil {
			return nil, err
		}
		schedule = append(schedule, plannedMonths...)
	}

	result, err := r.Engine.Evaluate(schedule, req.Profile)
	if err != nil {
		return nil, err
	}
	if req.Strategy != nil {
		result.StrategyKind = req.Strategy.Kind
	}
	result.Schedule = schedule

	r.Engine.Logger.Debugf("reconstructed %d paid, %d retroactive, %d planned months; state %s",
		len(paid), len(retroMonths), len(plannedMonths), tracker.State())

	return &Reconstruction{
		Schedule:        schedule,
		Original:        len(paid),
		Retroactive:     len(retroMonths),
		Planned:         len(plannedMonths),
		PaidCost:        domain.TotalContributions(paid),
		RetroactiveCost: domain.TotalContributions(retroMonths),
		PlannedCost:     domain.TotalContributions(plannedMonths),
		State:           tracker.State(),
		Transitions:     tracker.Transitions(),
		Result:          result,
	}, nil
}

// originalPeriods returns the sorted paid months without building anything
func (r *Reconstructor) originalPeriods(req Request) ([]domain.YearMonth, error) {
	switch {
	case req.Strategy != nil && len(req.Payments) > 0:
		return nil, domain.NewValidationError("payments", "give either a strategy or a payment list, not both")
	case req.Strategy != nil:
		if err := req.Strategy.Range.Validate(); err != nil {
			return nil, err
		}
		return req.Strategy.Range.Periods(), nil
	case len(req.Payments) == 0:
		return nil, domain.NewValidationError("payments", "no payments to reconstruct")
	}

	periods := make([]domain.YearMonth, 0, len(req.Payments))
	seen := make(map[domain.YearMonth]bool, len(req.Payments))
	for i, p := range req.Payments {
		if err := p.Period.Validate(); err != nil {
			return nil, domain.NewValidationError(fmt.Sprintf("payments[%d].period", i), "%v", err)
		}
		if seen[p.Period] {
			return nil, domain.NewValidationError(fmt.Sprintf("payments[%d].period", i), "duplicate payment for %s", p.Period)
		}
		seen[p.Period] = true
		periods = append(periods, p.Period)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })
	return periods, nil
}

// paidMonths derives schedule months from the strategy or the payments,
// sorted chronologically.
func (r *Reconstructor) paidMonths(req Request) ([]domain.MonthlyContribution, error) {
	if req.Strategy != nil {
		return r.generate(*req.Strategy, domain.OriginPaid)
	}

	months := make([]domain.MonthlyContribution, 0, len(req.Payments))
	for i, p := range req.Payments {
		m, err := calculation.ContributionFromPayment(r.Engine.Tables, p.Period, p.Amount, domain.OriginPaid)
		if err != nil {
			return nil, fmt.Errorf("payments[%d]: %w", i, err)
		}
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Period.Before(months[j].Period) })
	return months, nil
}

func (r *Reconstructor) generate(strategy domain.Strategy, origin domain.ContributionOrigin) ([]domain.MonthlyContribution, error) {
	months, err := r.Engine.BuildContributionSchedule(strategy)
	if err != nil {
		return nil, err
	}
	for i := range months {
		months[i].Origin = origin
	}
	return months, nil
}

// continuationMultiple is the last paid month's multiple rounded to cents and
// kept within the statutory bounds; fixed-contribution months drift below 1×
// as the index grows.
func continuationMultiple(tables *domain.StatutoryTables, last domain.MonthlyContribution) decimal.Decimal {
	m := last.WageMultiple.Round(2)
	if m.LessThan(tables.Scheme.MinWageMultiple) {
		return tables.Scheme.MinWageMultiple
	}
	if m.GreaterThan(tables.Scheme.MaxWageMultiple) {
		return tables.Scheme.MaxWageMultiple
	}
	return m
}

// replay feeds chronological months to the tracker, emitting a miss for
// every gap month.
func replay(t *Tracker, months []domain.MonthlyContribution) error {
	for _, m := range months {
		if last := t.LastPaid(); !last.IsZero() {
			for p := last.AddMonths(1); p.Before(m.Period); p = p.AddMonths(1) {
				if _, err := t.Apply(Event{Kind: EventMiss, Period: p}); err != nil {
					return err
				}
			}
		}
		if _, err := t.Apply(Event{Kind: EventPay, Period: m.Period}); err != nil {
			return err
		}
	}
	return nil
}
