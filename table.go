package fsm

import "github.com/enetx/g"

// NewTable builds a Table from a closed state enumeration and one rule per origin.
// Every state a rule names must belong to states, otherwise *ErrUnknownState is
// returned; declaring the same origin twice returns *ErrDuplicateRule. Repeated
// destinations within one rule collapse. On error no table is returned.
func NewTable[S comparable](states g.Slice[S], rules ...Rule[S]) (*Table[S], error) {
	t := &Table[S]{
		states: make(g.Slice[S], 0, len(states)),
		known:  g.NewSet[S](),
		rules:  g.NewMap[S, destinations[S]](),
	}

	for _, s := range states {
		if t.known.Contains(s) {
			continue
		}

		t.known.Insert(s)
		t.states.Push(s)
	}

	for _, r := range rules {
		if !t.known.Contains(r.From) {
			return nil, &ErrUnknownState[S]{State: r.From}
		}

		if _, ok := t.rules[r.From]; ok {
			return nil, &ErrDuplicateRule[S]{From: r.From}
		}

		dst := destinations[S]{set: g.NewSet[S]()}
		for _, to := range r.To {
			if !t.known.Contains(to) {
				return nil, &ErrUnknownState[S]{State: to}
			}

			if dst.set.Contains(to) {
				continue
			}

			dst.set.Insert(to)
			dst.order.Push(to)
		}

		t.rules[r.From] = dst
		t.origins.Push(r.From)
	}

	return t, nil
}

// Define starts a fluent table declaration over the given state enumeration.
func Define[S comparable](states ...S) *Builder[S] {
	return &Builder[S]{states: g.SliceOf(states...)}
}

// Allow adds a rule permitting moves from the origin to the given destinations.
func (b *Builder[S]) Allow(from S, to ...S) *Builder[S] {
	b.rules.Push(Allow(from, to...))
	return b
}

// Build validates the declarations and returns the resulting Table.
// The first invalid declaration, in declaration order, is reported.
func (b *Builder[S]) Build() (*Table[S], error) {
	return NewTable(b.states, b.rules...)
}

// MustBuild is like Build but panics on an invalid declaration.
// It is intended for package-level tables built from constant data.
func (b *Builder[S]) MustBuild() *Table[S] {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}

	return t
}

// Allowed returns the set of states the origin may legally move to.
// For a state with no rule, including one outside the enumeration, the set is empty.
// The returned set is a copy and may be modified freely.
// Queries on a nil Table behave as on an empty one.
func (t *Table[S]) Allowed(origin S) g.Set[S] {
	if t == nil {
		return g.NewSet[S]()
	}

	dst, ok := t.rules[origin]
	if !ok {
		return g.NewSet[S]()
	}

	return g.SetOf(dst.order...)
}

// Destinations returns the allowed destinations of origin in declaration order.
func (t *Table[S]) Destinations(origin S) g.Slice[S] {
	if t == nil {
		return g.Slice[S]{}
	}

	dst, ok := t.rules[origin]
	if !ok {
		return g.Slice[S]{}
	}

	return dst.order.Clone()
}

// IsLegal reports whether a move from origin to target is declared.
func (t *Table[S]) IsLegal(origin, target S) bool {
	if t == nil {
		return false
	}

	dst, ok := t.rules[origin]
	return ok && dst.set.Contains(target)
}

// IsTerminal reports whether s has no legal outgoing transitions.
func (t *Table[S]) IsTerminal(s S) bool {
	if t == nil {
		return true
	}

	return len(t.rules[s].order) == 0
}

// Contains reports whether s is a member of the state enumeration.
func (t *Table[S]) Contains(s S) bool {
	return t != nil && t.known.Contains(s)
}

// States returns the state enumeration in declaration order.
func (t *Table[S]) States() g.Slice[S] {
	if t == nil {
		return g.Slice[S]{}
	}

	return t.states.Clone()
}

// Rules returns a copy of the declared rules in declaration order.
func (t *Table[S]) Rules() g.Slice[Rule[S]] {
	if t == nil {
		return g.Slice[Rule[S]]{}
	}

	rules := make(g.Slice[Rule[S]], 0, len(t.origins))
	for _, from := range t.origins {
		rules.Push(Rule[S]{From: from, To: t.rules[from].order.Clone()})
	}

	return rules
}
