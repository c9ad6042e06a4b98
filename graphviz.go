package fsm

import "github.com/enetx/g"

// ToDOT generates a DOT language string representation of the table for visualization.
// States are listed in declaration order; terminal states are drawn grey.
func (t *Table[S]) ToDOT() g.String {
	return t.dot(nil, nil)
}

// ToDOT generates a DOT language string representation of the machine's table,
// marking the initial and current states.
func (m *Machine[S]) ToDOT() g.String {
	return m.table.dot(&m.initial, &m.current)
}

// ToDOT is the thread-safe version of Machine.ToDOT.
func (sm *SyncMachine[S]) ToDOT() g.String {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.ToDOT()
}

func (t *Table[S]) dot(initial, current *S) g.String {
	b := g.NewBuilder()

	b.WriteString("digraph FSM {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString(
		"  node [shape=circle, style=filled, fillcolor=\"#f8f8f8\", color=\"#444444\", fontname=\"Helvetica\"];\n",
	)
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	if initial != nil {
		b.WriteString("  __start [shape=point, style=invis];\n")
		b.WriteString(g.Format("  __start -> \"{}\" [label=\" initial\"];\n\n", *initial))
	}

	for _, state := range t.States() {
		var attrs g.Slice[g.String]
		attrs.Push(g.Format("label=\"{}\"", state))

		switch {
		case current != nil && state == *current:
			attrs.Push("fillcolor=\"#90ee90\"", "shape=doublecircle")
		case t.IsTerminal(state):
			attrs.Push("fillcolor=\"#d3d3d3\"", "shape=doublecircle")
		}

		b.WriteString(g.Format("  \"{}\" [{}];\n", state, attrs.Join(", ")))
	}

	b.WriteByte('\n')

	for _, rule := range t.Rules() {
		for _, to := range rule.To {
			if to == rule.From {
				b.WriteString(g.Format("  \"{}\" -> \"{}\" [style=dashed];\n", rule.From, to))
				continue
			}

			b.WriteString(g.Format("  \"{}\" -> \"{}\";\n", rule.From, to))
		}
	}

	b.WriteString("}\n")

	return b.String()
}
