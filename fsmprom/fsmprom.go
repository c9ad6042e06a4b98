// Package fsmprom counts fsm transitions with Prometheus.
package fsmprom

import (
	"fmt"

	"github.com/enetx/fsm/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the transition counters. One Metrics value serves any number
// of machines; the machine label tells them apart.
type Metrics struct {
	// transitions tracks committed transitions by machine, from_state and to_state.
	transitions *prometheus.CounterVec
	// rejections tracks rejected transitions by machine, from_state and to_state.
	rejections *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg.
// A nil reg leaves them unregistered. Registering twice with the same
// registerer panics, as with promauto.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fsm_transitions_total",
			Help:      "Total number of committed state transitions by machine, from_state and to_state",
		}, []string{"machine", "from_state", "to_state"}),
		rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fsm_transitions_rejected_total",
			Help:      "Total number of rejected state transitions by machine, from_state and to_state",
		}, []string{"machine", "from_state", "to_state"}),
	}
}

// TransitionHook returns an fsm hook counting committed transitions of one machine.
func TransitionHook[S comparable](m *Metrics, machine string) fsm.TransitionHook[S] {
	machine = sanitizeMachine(machine)

	return func(from, to S) {
		m.transitions.WithLabelValues(machine, label(from), label(to)).Inc()
	}
}

// RejectHook returns an fsm hook counting rejected transitions of one machine.
// Targets outside the table's enumeration are labelled "unknown", so callers
// passing arbitrary input cannot create new series.
func RejectHook[S comparable](m *Metrics, machine string, table *fsm.Table[S]) fsm.RejectHook[S] {
	machine = sanitizeMachine(machine)

	return func(err *fsm.ErrIllegalTransition[S]) {
		m.rejections.WithLabelValues(machine, sanitizeState(table, err.From), sanitizeState(table, err.To)).Inc()
	}
}

// Attach registers both counting hooks on sm and returns it.
func Attach[S comparable](sm *fsm.Machine[S], m *Metrics, machine string) *fsm.Machine[S] {
	return sm.
		OnTransition(TransitionHook[S](m, machine)).
		OnReject(RejectHook(m, machine, sm.Table()))
}

// AttachSync is Attach for a SyncMachine.
func AttachSync[S comparable](sm *fsm.SyncMachine[S], m *Metrics, machine string) *fsm.SyncMachine[S] {
	return sm.
		OnTransition(TransitionHook[S](m, machine)).
		OnReject(RejectHook(m, machine, sm.Table()))
}

func label(v any) string { return fmt.Sprint(v) }

func sanitizeState[S comparable](table *fsm.Table[S], s S) string {
	if !table.Contains(s) {
		return "unknown"
	}

	return label(s)
}

func sanitizeMachine(machine string) string {
	if machine == "" {
		return "unknown"
	}

	return machine
}
