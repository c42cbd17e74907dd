package checkout

import (
	"errors"
	"fmt"
)

// Reasons a payment attempt stops making progress. The first three block the
// flow; a failed bookkeeping update never does (the charge already went
// through at the provider).
var (
	ErrIntentCreation      = errors.New("payment intent creation failed")
	ErrCardDeclined        = errors.New("card declined")
	ErrProviderUnavailable = errors.New("payment provider unavailable")
	ErrStatusUpdate        = errors.New("payment status update failed")
)

var ErrIllegalTransition = errors.New("illegal payment flow transition")

// FlowState is the single place a payment attempt's progress lives.
type FlowState int

const (
	StateIdle FlowState = iota
	StateInitializing
	StateReady
	StateSubmitting
	StateFailed
	StateSucceeded
)

func (s FlowState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateSubmitting:
		return "submitting"
	case StateFailed:
		return "failed"
	case StateSucceeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

type FlowEvent int

const (
	// EventStart begins payment-intent creation.
	EventStart FlowEvent = iota
	EventIntentReady
	EventIntentFailed
	EventSubmit
	EventConfirmFailed
	EventConfirmed
)

func (e FlowEvent) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventIntentReady:
		return "intent-ready"
	case EventIntentFailed:
		return "intent-failed"
	case EventSubmit:
		return "submit"
	case EventConfirmFailed:
		return "confirm-failed"
	case EventConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

type transition struct {
	from  FlowState
	event FlowEvent
}

var legalTransitions = map[transition]FlowState{
	{StateIdle, EventStart}:                StateInitializing,
	{StateInitializing, EventIntentReady}:  StateReady,
	{StateInitializing, EventIntentFailed}: StateFailed,
	{StateReady, EventSubmit}:              StateSubmitting,
	{StateFailed, EventSubmit}:             StateSubmitting,
	{StateSubmitting, EventConfirmFailed}:  StateFailed,
	{StateSubmitting, EventConfirmed}:      StateSucceeded,
}

// Flow tracks one payment attempt. Reason holds the user-facing message when
// the state is Failed; Fatal marks failures from before a card form ever
// became usable, after which re-submitting is not a legal move.
type Flow struct {
	State  FlowState `json:"state"`
	Reason string    `json:"reason,omitempty"`
	Fatal  bool      `json:"fatal,omitempty"`
}

// Apply moves the flow along one edge. Any edge not in the table is a caller
// bug and comes back as ErrIllegalTransition.
func (f *Flow) Apply(event FlowEvent) error {
	if f.State == StateFailed && event == EventSubmit && f.Fatal {
		return fmt.Errorf("%w: %s on fatally %s flow", ErrIllegalTransition, event, f.State)
	}
	next, ok := legalTransitions[transition{f.State, event}]
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrIllegalTransition, event, f.State)
	}
	f.State = next
	if next != StateFailed {
		f.Reason = ""
		f.Fatal = false
	}
	return nil
}

// Fail applies a failure edge and records the message shown to the user.
func (f *Flow) Fail(event FlowEvent, message string, fatal bool) error {
	if err := f.Apply(event); err != nil {
		return err
	}
	f.Reason = message
	f.Fatal = fatal
	return nil
}
