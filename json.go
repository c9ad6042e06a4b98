package fsm

import (
	"encoding/json"
	"fmt"
)

// Snapshot is a serializable representation of a machine's current state.
// Only the current state is recorded; no transition history is kept.
type Snapshot[S comparable] struct {
	Current S `json:"current"`
}

// MarshalJSON implements the json.Marshaler interface.
func (m *Machine[S]) MarshalJSON() ([]byte, error) {
	return json.Marshal(Snapshot[S]{Current: m.current})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// The restored state must belong to the table's enumeration; it is applied
// through ForceState, so no rule is consulted and no hook is called.
func (m *Machine[S]) UnmarshalJSON(data []byte) error {
	var snapshot Snapshot[S]
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("failed to unmarshal fsm snapshot: %w", err)
	}

	return m.ForceState(snapshot.Current)
}
