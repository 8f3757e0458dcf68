package transform

import (
	"fmt"
)

// SetRetirementAge projects the same contributions at another retirement
// age. The age factor changes; the schedule does not.
type SetRetirementAge struct {
	Age int
}

func (sr *SetRetirementAge) Name() string {
	return "set_retirement_age"
}

func (sr *SetRetirementAge) Description() string {
	return fmt.Sprintf("Retire at %d", sr.Age)
}

func (sr *SetRetirementAge) Validate(base *Plan) error {
	if base == nil {
		return NewTransformError(sr.Name(), "validate", "base plan cannot be nil", nil)
	}
	scheme := base.LawTables().Scheme
	if sr.Age < scheme.MinRetirementAge || sr.Age > scheme.MaxRetirementAge {
		return NewTransformError(sr.Name(), "validate", fmt.Sprintf("age must be between %d and %d, got %d",
			scheme.MinRetirementAge, scheme.MaxRetirementAge, sr.Age), nil)
	}
	return nil
}

func (sr *SetRetirementAge) Apply(base *Plan) (*Plan, error) {
	modified := base.DeepCopy()
	modified.Profile.RetirementAge = sr.Age
	return modified, nil
}
