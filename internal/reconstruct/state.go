package reconstruct

import (
	"fmt"

	"github.com/rgehrsitz/vcpgo/internal/domain"
)

// EnrollmentState is the worker's standing in the continuation scheme
type EnrollmentState string

const (
	StateNeverEnrolled     EnrollmentState = "never_enrolled"
	StateActive            EnrollmentState = "active"
	StateLapsedWithinGrace EnrollmentState = "lapsed_within_grace"
	StateLapsedExpired     EnrollmentState = "lapsed_expired"
)

// EventKind is what happened in a month
type EventKind string

const (
	EventPay    EventKind = "pay"
	EventMiss   EventKind = "miss"
	EventResume EventKind = "resume"
)

// Event is a dated occurrence fed to the tracker in chronological order
type Event struct {
	Kind   EventKind        `json:"kind" yaml:"kind"`
	Period domain.YearMonth `json:"period" yaml:"period"`
}

// Transition records a change of state and the event that caused it
type Transition struct {
	From  EnrollmentState `json:"from" yaml:"from"`
	To    EnrollmentState `json:"to" yaml:"to"`
	Event Event           `json:"event" yaml:"event"`
}

// TransitionError reports an event that is not allowed in the current state
type TransitionError struct {
	State EnrollmentState
	Event Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s in %s while %s", e.Event.Kind, e.Event.Period, e.State)
}

// Tracker replays payment history through the enrollment state machine.
//
//	never_enrolled      --pay-->    active
//	active              --pay-->    active
//	active              --miss-->   lapsed_within_grace | lapsed_expired
//	active              --resume--> active (within grace) | ReentryError
//	lapsed_within_grace --pay-->    active
//	lapsed_within_grace --miss-->   lapsed_within_grace | lapsed_expired
//	lapsed_within_grace --resume--> active (within grace) | ReentryError
//	lapsed_expired      --pay-->    active (new enrollment)
//	lapsed_expired      --miss-->   lapsed_expired
//	lapsed_expired      --resume--> ReentryError
//
// A lapse stays within grace while the months since the last payment do not
// exceed Grace. A successful resume settles the gap by back-payment, so the
// month before the resume month counts as the last paid one.
type Tracker struct {
	Grace int

	state       EnrollmentState
	lastPaid    domain.YearMonth
	last        domain.YearMonth
	transitions []Transition
}

// NewTracker creates a tracker for a never-enrolled worker
func NewTracker(grace int) *Tracker {
	return &Tracker{Grace: grace, state: StateNeverEnrolled}
}

// State returns the current state
func (t *Tracker) State() EnrollmentState { return t.state }

// LastPaid returns the most recent paid month, zero if none
func (t *Tracker) LastPaid() domain.YearMonth { return t.lastPaid }

// Transitions lists the state changes so far, oldest first
func (t *Tracker) Transitions() []Transition {
	return append([]Transition(nil), t.transitions...)
}

// Apply feeds one event to the machine and returns the new state. Events must
// not go back in time. Illegal events leave the state unchanged.
func (t *Tracker) Apply(ev Event) (EnrollmentState, error) {
	if err := ev.Period.Validate(); err != nil {
		return t.state, domain.NewValidationError("period", "%v", err)
	}
	if !t.last.IsZero() && ev.Period.Before(t.last) {
		return t.state, domain.NewValidationError("period", "event in %s precedes %s", ev.Period, t.last)
	}

	next, err := t.next(ev)
	if err != nil {
		return t.state, err
	}

	switch ev.Kind {
	case EventPay:
		t.lastPaid = ev.Period
	case EventResume:
		if settled := ev.Period.AddMonths(-1); settled.After(t.lastPaid) {
			t.lastPaid = settled
		}
	}
	t.last = ev.Period
	if next != t.state {
		t.transitions = append(t.transitions, Transition{From: t.state, To: next, Event: ev})
		t.state = next
	}
	return t.state, nil
}

func (t *Tracker) next(ev Event) (EnrollmentState, error) {
	switch ev.Kind {
	case EventPay:
		return StateActive, nil

	case EventMiss:
		switch t.state {
		case StateNeverEnrolled:
			return t.state, &TransitionError{State: t.state, Event: ev}
		case StateLapsedExpired:
			return t.state, nil
		}
		if t.elapsed(ev.Period) > t.Grace {
			return StateLapsedExpired, nil
		}
		return StateLapsedWithinGrace, nil

	case EventResume:
		if t.state == StateNeverEnrolled {
			return t.state, &TransitionError{State: t.state, Event: ev}
		}
		elapsed := t.elapsed(ev.Period)
		if t.state == StateLapsedExpired || elapsed > t.Grace {
			return t.state, &domain.ReentryError{LastPaid: t.lastPaid, Resume: ev.Period, Elapsed: elapsed, Grace: t.Grace}
		}
		return StateActive, nil
	}

	return t.state, domain.NewValidationError("event", "unknown event kind %q", ev.Kind)
}

func (t *Tracker) elapsed(p domain.YearMonth) int {
	return t.lastPaid.MonthsUntil(p)
}
