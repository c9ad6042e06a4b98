// Package fsm provides a generic finite state machine validation engine.
// A Table declares, once, which moves between states are legal; a Machine holds
// the current state of one subject and gates every change to it through the table.
// Collections are built with types from the github.com/enetx/g library.
package fsm

import (
	"sync"

	"github.com/enetx/g"
)

type (
	// State is a ready-made string state type. The engine works with any
	// comparable type, so consumers may declare their own enumeration instead.
	State g.String

	// Rule declares the states a single origin may legally move to.
	Rule[S comparable] struct {
		From S
		To   g.Slice[S]
	}

	// TransitionHook is an observer called after a transition has been committed.
	TransitionHook[S comparable] func(from, to S)
	// RejectHook is an observer called after a transition has been rejected.
	RejectHook[S comparable] func(err *ErrIllegalTransition[S])

	// destinations is the internal, read-only form of a Rule.
	destinations[S comparable] struct {
		order g.Slice[S]
		set   g.Set[S]
	}

	// Table is an immutable mapping from every origin state to the set of
	// states it may legally move to. It is safe for concurrent use.
	Table[S comparable] struct {
		states  g.Slice[S]
		known   g.Set[S]
		origins g.Slice[S]
		rules   g.Map[S, destinations[S]]
	}

	// Builder collects state and rule declarations for a Table.
	Builder[S comparable] struct {
		states g.Slice[S]
		rules  g.Slice[Rule[S]]
	}

	// Machine holds the current state of one subject. A Machine must not be driven
	// from more than one goroutine at a time; use Sync for a shared instance.
	// Create machines with New. A zero Machine has no table: it allows nothing,
	// and TransitionTo, ForceState and UnmarshalJSON return ErrNilTable.
	Machine[S comparable] struct {
		table        *Table[S]
		initial      S
		current      S
		onTransition g.Slice[TransitionHook[S]]
		onReject     g.Slice[RejectHook[S]]
	}

	// SyncMachine is a thread-safe wrapper around a Machine.
	// It protects all state-mutating and state-reading operations with a sync.RWMutex,
	// making it safe for use across multiple goroutines.
	// All methods on SyncMachine are the thread-safe counterparts to the methods on the base Machine.
	SyncMachine[S comparable] struct {
		m  *Machine[S]
		mu sync.RWMutex
	}
)

// Allow returns a Rule permitting moves from one origin to the given destinations.
func Allow[S comparable](from S, to ...S) Rule[S] {
	return Rule[S]{From: from, To: g.SliceOf(to...)}
}
