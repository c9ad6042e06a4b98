package fsm

import "github.com/enetx/g"

// Interface compliance checks.
var (
	_ StateMachine[State] = (*Machine[State])(nil)
	_ StateMachine[State] = (*SyncMachine[State])(nil)
)

// TransitionTo is the thread-safe version of Machine.TransitionTo.
// The check and the commit happen under one write lock, so concurrent callers
// never observe the machine mid-transition. Hooks run while the lock is held
// and must not call back into the SyncMachine.
func (sm *SyncMachine[S]) TransitionTo(target S) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.m.TransitionTo(target)
}

// ForceState is the thread-safe version of Machine.ForceState.
// WARNING: This is a low-level method intended for initialization and recovery.
// For all standard operations, use TransitionTo.
func (sm *SyncMachine[S]) ForceState(s S) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.m.ForceState(s)
}

// Reset is the thread-safe version of Machine.Reset.
func (sm *SyncMachine[S]) Reset() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.m.Reset()
}

// Current is the thread-safe version of Machine.Current.
func (sm *SyncMachine[S]) Current() S {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.Current()
}

// Initial returns the state the machine was created with. It never changes.
func (sm *SyncMachine[S]) Initial() S { return sm.m.Initial() }

// Table returns the shared, immutable transition table.
func (sm *SyncMachine[S]) Table() *Table[S] { return sm.m.Table() }

// Allowed is the thread-safe version of Machine.Allowed.
func (sm *SyncMachine[S]) Allowed() g.Set[S] {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.Allowed()
}

// Can is the thread-safe version of Machine.Can.
func (sm *SyncMachine[S]) Can(target S) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.Can(target)
}

// OnTransition is the thread-safe version of Machine.OnTransition.
func (sm *SyncMachine[S]) OnTransition(hook TransitionHook[S]) *SyncMachine[S] {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.m.OnTransition(hook)

	return sm
}

// OnReject is the thread-safe version of Machine.OnReject.
func (sm *SyncMachine[S]) OnReject(hook RejectHook[S]) *SyncMachine[S] {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.m.OnReject(hook)

	return sm
}

// MarshalJSON implements the json.Marshaler interface for thread-safe
// serialization of the machine's current state.
func (sm *SyncMachine[S]) MarshalJSON() ([]byte, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for thread-safe
// restoration of the machine's current state.
func (sm *SyncMachine[S]) UnmarshalJSON(data []byte) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.m.UnmarshalJSON(data)
}
