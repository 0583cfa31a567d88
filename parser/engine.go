package parser

import (
	"github.com/mkrotov/lrx/scanner"
	"github.com/mkrotov/lrx/tables"
)

// Engine is the shift-reduce interpreter for one parse. It keeps the parser
// state stack and one semantic value stack per stack declared by the table
// set, and dispatches the action set on every value-carrying reduction.
//
// An Engine serves exactly one token sequence: Accept every token in order,
// call Finish once, then discard it. Callers normally use a Run, which feeds
// an Engine from a Scanner; a bare Engine only serves callers bringing their
// own token source.
type Engine struct {
	ts      *tables.TableSet
	actions Actions

	states []int
	stacks [][]any
	done   bool

	// reduction scratch, reused across reductions
	counts, index []int

	sourceName string
}

func newEngine(ts *tables.TableSet, actions Actions, sourceName string) *Engine {
	stacks := make([][]any, ts.Stacks)
	return &Engine{
		ts:         ts,
		actions:    actions,
		states:     append(make([]int, 0, 16), tables.InitialState),
		stacks:     stacks,
		counts:     make([]int, ts.Stacks),
		index:      make([]int, ts.Stacks),
		sourceName: sourceName,
	}
}

// Depth returns the current state stack depth.
func (en *Engine) Depth() int {
	return len(en.states)
}

// Accept drives one token through the reduce/shift cycle: first every
// reduction the action table prescribes for this lookahead, then the shift.
func (en *Engine) Accept(t *scanner.Token) error {
	if en.done {
		return runFinishedError()
	}

	term := t.Term()
	e := en.reduceAll(term)
	if e != nil {
		return e
	}

	state := en.ts.ShiftAt(term, en.top())
	if state == 0 {
		return unexpectedTokenError(t, en.expected())
	}
	en.states = append(en.states, state)

	sid := en.ts.Terms[term].Stack
	if sid != tables.NoStack {
		v, e := en.actions.TokenValue(term, t.Text())
		if e != nil {
			return e
		}
		en.stacks[sid] = append(en.stacks[sid], v)
	}

	return nil
}

// Finish drives the end-of-input terminal through the reduce cycle (no shift
// follows) and validates the completed-parse shape: the initial state plus
// one state on the state stack and a single value on the root stack.
func (en *Engine) Finish() (any, error) {
	if en.done {
		return nil, runFinishedError()
	}
	en.done = true

	e := en.reduceAll(tables.EOI)
	if e != nil {
		return nil, e
	}

	root := en.stacks[en.ts.RootStack]
	if len(en.states) != 2 || len(root) != 1 {
		return nil, unexpectedEoiError(en.sourceName, en.expected())
	}
	return root[0], nil
}

func (en *Engine) top() int {
	return en.states[len(en.states)-1]
}

func (en *Engine) reduceAll(term int) error {
	for {
		ri := en.ts.ActionAt(term, en.top())
		if ri < 0 {
			return nil
		}

		e := en.reduce(ri)
		if e != nil {
			return e
		}
	}
}

// reduce pops one rule's worth of states and operands, dispatches the
// callback for value-carrying rules, and enters the goto state.
func (en *Engine) reduce(ri int) error {
	r := &en.ts.Rules[ri]
	en.states = en.states[:len(en.states)-r.Len]

	if len(r.Args) > 0 || r.Push != tables.NoStack {
		v, e := en.actions.Reduce(ri, en.popArgs(r.Args))
		if e != nil {
			return e
		}
		if r.Push != tables.NoStack {
			en.stacks[r.Push] = append(en.stacks[r.Push], v)
		}
	}

	en.states = append(en.states, en.ts.GotoAt(r.Nonterm, en.top()))
	return nil
}

// popArgs removes one reduction's operands from their declared stacks and
// returns them in left-to-right grammar order.
func (en *Engine) popArgs(argStacks []int) []any {
	if len(argStacks) == 0 {
		return nil
	}

	for _, sid := range argStacks {
		en.counts[sid]++
	}
	for _, sid := range argStacks {
		en.index[sid] = len(en.stacks[sid]) - en.counts[sid]
	}

	args := make([]any, len(argStacks))
	for i, sid := range argStacks {
		args[i] = en.stacks[sid][en.index[sid]]
		en.index[sid]++
	}
	for _, sid := range argStacks {
		if en.counts[sid] > 0 {
			en.stacks[sid] = en.stacks[sid][:len(en.stacks[sid])-en.counts[sid]]
			en.counts[sid] = 0
		}
	}

	return args
}

// expected names a terminal acceptable in the current state, for error
// messages.
func (en *Engine) expected() string {
	state := en.top()
	for term := 1; term < len(en.ts.Terms); term++ {
		if en.ts.ShiftAt(term, state) != 0 {
			return en.ts.TermName(term)
		}
	}
	return "end of input"
}
