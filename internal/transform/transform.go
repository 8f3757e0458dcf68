package transform

import (
	"fmt"

	"github.com/rgehrsitz/vcpgo/internal/config"
	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Plan is one strategy for one worker: the unit transforms operate on and
// the comparison engine projects.
type Plan struct {
	Name      string               `json:"name" yaml:"name"`
	Profile   domain.WorkerProfile `json:"profile" yaml:"profile"`
	Type      domain.StrategyType  `json:"type" yaml:"type"`
	WageLevel decimal.Decimal      `json:"wageLevel" yaml:"wage_level"`
	Start     domain.YearMonth     `json:"start" yaml:"start"`
	Months    int                  `json:"months" yaml:"months"`

	// Tables bounds what transforms accept; nil means the built-in law.
	Tables *domain.StatutoryTables `json:"-" yaml:"-"`
}

// NewPlan builds a plan from a configured strategy
func NewPlan(name string, profile domain.WorkerProfile, s *config.StrategyConfig) *Plan {
	rng := s.Range()
	return &Plan{
		Name:      name,
		Profile:   profile,
		Type:      s.Type,
		WageLevel: s.WageLevel,
		Start:     rng.Start,
		Months:    rng.Months(),
	}
}

// DeepCopy returns an independent copy of the plan
func (p *Plan) DeepCopy() *Plan {
	cp := *p
	return &cp
}

// LawTables returns the tables the plan is checked against
func (p *Plan) LawTables() *domain.StatutoryTables {
	if p.Tables == nil {
		return domain.DefaultStatutoryTables()
	}
	return p.Tables
}

// Range is the contribution range of the plan
func (p *Plan) Range() domain.Range {
	return domain.NewRange(p.Start, p.Months)
}

// Strategy resolves the plan into a schedule strategy against tables
func (p *Plan) Strategy(tables *domain.StatutoryTables) (domain.Strategy, error) {
	cfg := config.StrategyConfig{Type: p.Type, WageLevel: p.WageLevel, Start: p.Start, Months: p.Months}
	return cfg.ToStrategy(tables)
}

func (p *Plan) String() string {
	return fmt.Sprintf("%s level %s for %d months from %s", p.Type, p.WageLevel, p.Months, p.Start)
}

// PlanTransform defines the interface for all plan transformations.
// Transforms are composable: each receives the output of the previous one.
type PlanTransform interface {
	// Apply returns a modified copy of base; base itself is never changed.
	Apply(base *Plan) (*Plan, error)

	// Name returns a short identifier (e.g. "adjust_level").
	Name() string

	// Description returns a human-readable description of the change.
	Description() string

	// Validate checks the parameters against base without applying them.
	Validate(base *Plan) error
}

// ApplyTransforms applies a sequence of transforms to a base plan
func ApplyTransforms(base *Plan, transforms []PlanTransform) (*Plan, error) {
	if base == nil {
		return nil, fmt.Errorf("base plan cannot be nil")
	}

	current := base.DeepCopy()
	for i, t := range transforms {
		if t == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := t.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", t.Name(), err)
		}
		next, err := t.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}
	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
