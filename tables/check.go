package tables

import (
	"github.com/mkrotov/lrx"
)

// Error codes used by tables:
const (
	// BadDimensionsError indicates a table whose length does not match the
	// declared symbol and state counts.
	BadDimensionsError = lrx.TableErrors + iota

	// BadIndexError indicates a cross-reference pointing outside its target
	// table.
	BadIndexError

	// BadHeaderError indicates a binary table file with wrong magic or
	// unsupported format version.
	BadHeaderError
)

func badDimensionsError(table string, expected, got int) *lrx.Error {
	return lrx.FormatError(BadDimensionsError, "table %s: expecting %d entries, got %d", table, expected, got)
}

func badIndexError(what string, index int) *lrx.Error {
	return lrx.FormatError(BadIndexError, "%s out of range: %d", what, index)
}

func badHeaderError(detail string) *lrx.Error {
	return lrx.FormatError(BadHeaderError, "not a table set file: %s", detail)
}

// Check validates the internal consistency of the table set: declared
// dimensions, label/edge/state slice bounds, rule descriptors, and every
// entry of the action, shift, and goto tables. A table set that passes Check
// can be interpreted without any further index validation.
func (ts *TableSet) Check() error {
	if len(ts.Terms) == 0 {
		return badDimensionsError("terms", 1, 0)
	}
	if ts.Terms[EOI].Stack != NoStack {
		return badIndexError("end-of-input stack", ts.Terms[EOI].Stack)
	}
	if ts.States <= 0 {
		return badDimensionsError("states", 1, ts.States)
	}
	if ts.Stacks < 0 || ts.RootStack < 0 || ts.RootStack >= ts.Stacks {
		return badIndexError("root stack", ts.RootStack)
	}

	for _, t := range ts.Terms {
		if t.Stack != NoStack && (t.Stack < 0 || t.Stack >= ts.Stacks) {
			return badIndexError("terminal "+t.Name+" stack", t.Stack)
		}
	}

	for _, r := range ts.Rules {
		if r.Nonterm < 0 || r.Nonterm >= len(ts.Nonterms) {
			return badIndexError("rule nonterminal", r.Nonterm)
		}
		if r.Len < 0 || len(r.Args) > r.Len {
			return badDimensionsError("rule "+ts.Nonterms[r.Nonterm].Name+" length", len(r.Args), r.Len)
		}
		for _, s := range r.Args {
			if s < 0 || s >= ts.Stacks {
				return badIndexError("rule argument stack", s)
			}
		}
		if r.Push != NoStack && (r.Push < 0 || r.Push >= ts.Stacks) {
			return badIndexError("rule result stack", r.Push)
		}
	}

	e := ts.checkParserTables()
	if e != nil {
		return e
	}

	for i := range ts.DFAs {
		e = checkDFA(&ts.DFAs[i], len(ts.Terms))
		if e != nil {
			return e
		}
	}

	return nil
}

func (ts *TableSet) checkParserTables() error {
	size := len(ts.Terms) * ts.States
	if len(ts.Actions) != size {
		return badDimensionsError("actions", size, len(ts.Actions))
	}
	if len(ts.Shifts) != size {
		return badDimensionsError("shifts", size, len(ts.Shifts))
	}
	for _, a := range ts.Actions {
		if a < 0 || a > len(ts.Rules) {
			return badIndexError("action rule", a-1)
		}
	}
	for _, s := range ts.Shifts {
		if s < 0 || s >= ts.States {
			return badIndexError("shift state", s)
		}
	}

	size = len(ts.Nonterms) * ts.States
	if len(ts.Gotos) != size {
		return badDimensionsError("gotos", size, len(ts.Gotos))
	}
	for _, s := range ts.Gotos {
		if s < 0 || s >= ts.States {
			return badIndexError("goto state", s)
		}
	}

	return nil
}

func checkDFA(dfa *DFA, termCount int) error {
	if len(dfa.States) == 0 {
		return badDimensionsError("lexer states", 1, 0)
	}
	for _, s := range dfa.States {
		if s.LowEdge < 0 || s.HighEdge < s.LowEdge || s.HighEdge > len(dfa.Edges) {
			return badIndexError("lexer state edge bound", s.HighEdge)
		}
		if s.Accept < AcceptDiscard || s.Accept >= termCount || s.Accept == EOI {
			return badIndexError("accept tag", s.Accept)
		}
	}
	for _, ed := range dfa.Edges {
		if ed.LowLabel < 0 || ed.HighLabel < ed.LowLabel || ed.HighLabel > len(dfa.Labels) {
			return badIndexError("edge label bound", ed.HighLabel)
		}
		if ed.Target < 0 || ed.Target >= len(dfa.States) {
			return badIndexError("edge target", ed.Target)
		}
	}
	return nil
}
