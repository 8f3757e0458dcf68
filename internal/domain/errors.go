package domain

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks by callers that translate errors into messages.
var (
	ErrValidation     = errors.New("validation failed")
	ErrLimitExceeded  = errors.New("contribution month limit exceeded")
	ErrReentryExpired = errors.New("re-entry window expired")
)

// ValidationError reports malformed or out-of-policy input. It is raised
// before any computation starts.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// LimitExceededError is raised when a schedule would exceed the statutory
// month ceiling. Schedules are never truncated to fit.
type LimitExceededError struct {
	Original    int
	Retroactive int
	Planned     int
	Limit       int
}

// Total is the number of months that was requested
func (e *LimitExceededError) Total() int {
	return e.Original + e.Retroactive + e.Planned
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("%d contribution months (original %d, retroactive %d, planned %d) exceed the limit of %d",
		e.Total(), e.Original, e.Retroactive, e.Planned, e.Limit)
}

func (e *LimitExceededError) Is(target error) bool { return target == ErrLimitExceeded }

// ReentryError is raised when back-payment is requested after the grace
// window following the last paid month has closed.
type ReentryError struct {
	LastPaid YearMonth
	Resume   YearMonth
	Elapsed  int
	Grace    int
}

func (e *ReentryError) Error() string {
	return fmt.Sprintf("cannot resume in %s: %d months since last payment in %s exceeds the %d-month re-entry window",
		e.Resume, e.Elapsed, e.LastPaid, e.Grace)
}

func (e *ReentryError) Is(target error) bool { return target == ErrReentryExpired }

// FailureKind classifies a non-raised calculation failure
type FailureKind string

const (
	// FailureEligibility means the total contributed weeks are below the minimum.
	FailureEligibility FailureKind = "eligibility"
	// FailureComputation means the factors produced a non-positive pension.
	FailureComputation FailureKind = "computation"
)

// Failure is embedded in a BenefitResult so multi-candidate flows can skip
// the candidate without aborting.
type Failure struct {
	Kind   FailureKind `yaml:"kind" json:"kind"`
	Reason string      `yaml:"reason" json:"reason"`
}
