package fsm

import (
	"errors"
	"fmt"

	"github.com/enetx/g"
)

// New creates a Machine driven by table and seeded with initial.
// The initial state must be a member of the table's enumeration; it does not need
// an outgoing rule, so a machine may start in a terminal state.
func New[S comparable](table *Table[S], initial S) (*Machine[S], error) {
	if table == nil {
		return nil, ErrNilTable
	}

	if !table.Contains(initial) {
		return nil, &ErrUnknownState[S]{State: initial}
	}

	return &Machine[S]{
		table:   table,
		initial: initial,
		current: initial,
	}, nil
}

// Clone creates a new Machine sharing the same table and hooks, starting at the initial state.
func (m *Machine[S]) Clone() *Machine[S] {
	return &Machine[S]{
		table:        m.table,
		initial:      m.initial,
		current:      m.initial,
		onTransition: m.onTransition.Clone(),
		onReject:     m.onReject.Clone(),
	}
}

// Table returns the transition table the machine is gated by.
func (m *Machine[S]) Table() *Table[S] { return m.table }

// Initial returns the state the machine was created with.
func (m *Machine[S]) Initial() S { return m.initial }

// Current returns the machine's current state.
func (m *Machine[S]) Current() S { return m.current }

// Allowed returns the states the machine may move to from its current state.
func (m *Machine[S]) Allowed() g.Set[S] { return m.table.Allowed(m.current) }

// Can reports whether TransitionTo(target) would succeed.
func (m *Machine[S]) Can(target S) bool { return m.table.IsLegal(m.current, target) }

// TransitionTo moves the machine to target if the table allows it from the
// current state. Otherwise it returns *ErrIllegalTransition carrying both states
// and leaves the machine unchanged.
//
// Hooks run after the outcome is final. A panicking hook is reported as
// *ErrCallback; it never undoes a committed move.
func (m *Machine[S]) TransitionTo(target S) error {
	if m.table == nil {
		return ErrNilTable
	}

	from := m.current

	if !m.table.IsLegal(from, target) {
		err := &ErrIllegalTransition[S]{From: from, To: target}
		if hookErr := m.notifyReject(err); hookErr != nil {
			return errors.Join(err, hookErr)
		}

		return err
	}

	m.current = target

	return m.notifyTransition(from, target)
}

// ForceState sets the current state without consulting the rule table and
// without calling any hooks. The state must still belong to the enumeration.
// WARNING: This is a low-level method intended for initialization and recovery.
// For all ordinary transitions, use TransitionTo.
func (m *Machine[S]) ForceState(s S) error {
	if m.table == nil {
		return ErrNilTable
	}

	if !m.table.Contains(s) {
		return &ErrUnknownState[S]{State: s}
	}

	m.current = s

	return nil
}

// Reset forces the machine back to its initial state.
func (m *Machine[S]) Reset() { m.current = m.initial }

// OnTransition registers a hook called after every committed transition.
func (m *Machine[S]) OnTransition(hook TransitionHook[S]) *Machine[S] {
	m.onTransition.Push(hook)
	return m
}

// OnReject registers a hook called after every rejected transition.
func (m *Machine[S]) OnReject(hook RejectHook[S]) *Machine[S] {
	m.onReject.Push(hook)
	return m
}

// Sync wraps the machine in a SyncMachine. The machine must not be used
// directly afterwards.
func (m *Machine[S]) Sync() *SyncMachine[S] { return &SyncMachine[S]{m: m} }

func (m *Machine[S]) notifyTransition(from, to S) error {
	for _, hook := range m.onTransition {
		if err := recoverHook("OnTransition", func() { hook(from, to) }); err != nil {
			return err
		}
	}

	return nil
}

func (m *Machine[S]) notifyReject(rejected *ErrIllegalTransition[S]) error {
	for _, hook := range m.onReject {
		if err := recoverHook("OnReject", func() { hook(rejected) }); err != nil {
			return err
		}
	}

	return nil
}

// recoverHook safely executes a hook, recovering from panics.
func recoverHook(hookType string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ErrCallback{HookType: hookType, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	fn()

	return nil
}
