package fsm

import "github.com/enetx/g"

// StateMachine is the behaviour shared by Machine and SyncMachine.
type StateMachine[S comparable] interface {
	TransitionTo(S) error
	ForceState(S) error
	Reset()
	Current() S
	Initial() S
	Table() *Table[S]
	Allowed() g.Set[S]
	Can(S) bool
	ToDOT() g.String
	MarshalJSON() ([]byte, error)
	UnmarshalJSON(data []byte) error
}
