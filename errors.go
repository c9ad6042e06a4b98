package fsm

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrNilTable is returned when a Machine is created or driven without a Table.
var ErrNilTable = errors.New("fsm: nil transition table")

// ErrUnknownState is returned when a state is not a member of the table's
// state enumeration. It is fatal to table construction and is also returned when
// a machine is seeded, forced or restored with such a state.
type ErrUnknownState[S comparable] struct {
	State S
}

func (e *ErrUnknownState[S]) Error() string {
	return fmt.Sprintf("fsm: unknown state %s", quote(e.State))
}

func (*ErrUnknownState[S]) unknownState() {}

// ErrDuplicateRule is returned when two rules are declared for the same origin.
// The table is ambiguous, so construction is aborted.
type ErrDuplicateRule[S comparable] struct {
	From S
}

func (e *ErrDuplicateRule[S]) Error() string {
	return fmt.Sprintf("fsm: duplicate rule for origin state %s", quote(e.From))
}

func (*ErrDuplicateRule[S]) duplicateRule() {}

// ErrIllegalTransition is returned when the requested target is not an allowed
// destination of the machine's current state. The machine is left unchanged.
type ErrIllegalTransition[S comparable] struct {
	From S
	To   S
}

func (e *ErrIllegalTransition[S]) Error() string {
	return fmt.Sprintf("fsm: illegal transition from state %s to state %s", quote(e.From), quote(e.To))
}

// Origin returns the state the machine was in when the transition was rejected.
func (e *ErrIllegalTransition[S]) Origin() any { return e.From }

// Target returns the rejected destination state.
func (e *ErrIllegalTransition[S]) Target() any { return e.To }

// IllegalTransitionError is implemented by every ErrIllegalTransition
// instantiation. It lets code that does not know the state type, such as a
// protocol layer translating failures into replies, read the rejected move.
type IllegalTransitionError interface {
	error
	Origin() any
	Target() any
}

// ErrCallback is returned when a TransitionHook or RejectHook panics.
// It wraps the recovered value, allowing it to be inspected using errors.Is and errors.As.
type ErrCallback struct {
	// HookType is "OnTransition" or "OnReject".
	HookType string
	// Err is the error created after recovering from the panic.
	Err error
}

func (e *ErrCallback) Error() string {
	return fmt.Sprintf("fsm: error in %s hook: %v", e.HookType, e.Err)
}

// Unwrap provides compatibility with the standard library's errors package.
func (e *ErrCallback) Unwrap() error { return e.Err }

// IsUnknownState reports whether any error in err's tree is an ErrUnknownState,
// whatever its state type.
func IsUnknownState(err error) bool {
	var target interface{ unknownState() }
	return errors.As(err, &target)
}

// IsDuplicateRule reports whether any error in err's tree is an ErrDuplicateRule.
func IsDuplicateRule(err error) bool {
	var target interface{ duplicateRule() }
	return errors.As(err, &target)
}

// IsIllegalTransition reports whether any error in err's tree is an ErrIllegalTransition.
func IsIllegalTransition(err error) bool {
	_, ok := AsIllegalTransition(err)
	return ok
}

// AsIllegalTransition finds the first ErrIllegalTransition in err's tree.
func AsIllegalTransition(err error) (IllegalTransitionError, bool) {
	var target IllegalTransitionError
	if errors.As(err, &target) {
		return target, true
	}

	return nil, false
}

func quote(v any) string { return strconv.Quote(fmt.Sprint(v)) }
