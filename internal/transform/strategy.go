package transform

import (
	"fmt"

	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// SwitchType changes the strategy type while keeping level and range.
type SwitchType struct {
	Type domain.StrategyType
}

func (st *SwitchType) Name() string { return "switch_type" }

func (st *SwitchType) Description() string {
	return fmt.Sprintf("Switch to the %s strategy", st.Type)
}

func (st *SwitchType) Validate(base *Plan) error {
	if base == nil {
		return NewTransformError(st.Name(), "validate", "base plan cannot be nil", nil)
	}
	if _, err := domain.ParseStrategyType(string(st.Type)); err != nil {
		return NewTransformError(st.Name(), "validate", "unknown strategy type", err)
	}
	return nil
}

func (st *SwitchType) Apply(base *Plan) (*Plan, error) {
	modified := base.DeepCopy()
	modified.Type = st.Type
	return modified, nil
}

// AdjustLevel raises or lowers the wage level by Delta.
type AdjustLevel struct {
	Delta decimal.Decimal
}

func (al *AdjustLevel) Name() string { return "adjust_level" }

func (al *AdjustLevel) Description() string {
	if al.Delta.IsNegative() {
		return fmt.Sprintf("Lower the wage level by %s", al.Delta.Neg())
	}
	return fmt.Sprintf("Raise the wage level by %s", al.Delta)
}

func (al *AdjustLevel) Validate(base *Plan) error {
	if base == nil {
		return NewTransformError(al.Name(), "validate", "base plan cannot be nil", nil)
	}
	if level := base.WageLevel.Add(al.Delta); !level.IsPositive() {
		return NewTransformError(al.Name(), "validate", fmt.Sprintf("resulting wage level %s must be positive", level), nil)
	}
	return nil
}

func (al *AdjustLevel) Apply(base *Plan) (*Plan, error) {
	modified := base.DeepCopy()
	modified.WageLevel = base.WageLevel.Add(al.Delta)
	return modified, nil
}

// SetLevel sets an absolute wage level.
type SetLevel struct {
	Level decimal.Decimal
}

func (sl *SetLevel) Name() string { return "set_level" }

func (sl *SetLevel) Description() string {
	return fmt.Sprintf("Contribute at wage level %s", sl.Level)
}

func (sl *SetLevel) Validate(base *Plan) error {
	if base == nil {
		return NewTransformError(sl.Name(), "validate", "base plan cannot be nil", nil)
	}
	if !sl.Level.IsPositive() {
		return NewTransformError(sl.Name(), "validate", fmt.Sprintf("wage level must be positive, got %s", sl.Level), nil)
	}
	return nil
}

func (sl *SetLevel) Apply(base *Plan) (*Plan, error) {
	modified := base.DeepCopy()
	modified.WageLevel = sl.Level
	return modified, nil
}

// DelayStart moves the first contribution month later, keeping the month
// count.
type DelayStart struct {
	Months int
}

func (ds *DelayStart) Name() string { return "delay_start" }

func (ds *DelayStart) Description() string {
	return fmt.Sprintf("Start contributing %d months later", ds.Months)
}

func (ds *DelayStart) Validate(base *Plan) error {
	if base == nil {
		return NewTransformError(ds.Name(), "validate", "base plan cannot be nil", nil)
	}
	if ds.Months <= 0 {
		return NewTransformError(ds.Name(), "validate", fmt.Sprintf("months must be positive, got %d", ds.Months), nil)
	}
	return nil
}

func (ds *DelayStart) Apply(base *Plan) (*Plan, error) {
	modified := base.DeepCopy()
	modified.Start = base.Start.AddMonths(ds.Months)
	return modified, nil
}

// AdjustMonths lengthens or shortens the plan, keeping its start.
type AdjustMonths struct {
	Delta int
}

func (am *AdjustMonths) Name() string { return "adjust_months" }

func (am *AdjustMonths) Description() string {
	if am.Delta < 0 {
		return fmt.Sprintf("Contribute %d fewer months", -am.Delta)
	}
	return fmt.Sprintf("Contribute %d more months", am.Delta)
}

func (am *AdjustMonths) Validate(base *Plan) error {
	if base == nil {
		return NewTransformError(am.Name(), "validate", "base plan cannot be nil", nil)
	}
	if months := base.Months + am.Delta; months <= 0 {
		return NewTransformError(am.Name(), "validate", fmt.Sprintf("resulting month count %d must be positive", months), nil)
	}
	return nil
}

func (am *AdjustMonths) Apply(base *Plan) (*Plan, error) {
	modified := base.DeepCopy()
	modified.Months = base.Months + am.Delta
	return modified, nil
}

// SetMonths sets an absolute month count, keeping the start.
type SetMonths struct {
	Months int
}

func (sm *SetMonths) Name() string { return "set_months" }

func (sm *SetMonths) Description() string {
	return fmt.Sprintf("Contribute for %d months", sm.Months)
}

func (sm *SetMonths) Validate(base *Plan) error {
	if base == nil {
		return NewTransformError(sm.Name(), "validate", "base plan cannot be nil", nil)
	}
	if sm.Months <= 0 {
		return NewTransformError(sm.Name(), "validate", fmt.Sprintf("months must be positive, got %d", sm.Months), nil)
	}
	return nil
}

func (sm *SetMonths) Apply(base *Plan) (*Plan, error) {
	modified := base.DeepCopy()
	modified.Months = sm.Months
	return modified, nil
}
