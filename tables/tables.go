// Package tables defines the table set interpreted by the scanner and parser
// runtimes. A table set is the compiled form of a grammar: it is produced by
// an external generator, never mutated afterwards, and may be shared by any
// number of concurrently running scanner/parser instances.
package tables

const (
	// InitialState is the starting state of every DFA and of the parser.
	InitialState = 0

	// EOI is the index of the reserved end-of-input terminal.
	EOI = 0

	// NoStack marks a terminal or rule that carries no semantic value.
	NoStack = -1
)

// Accept tags for lexer states that do not produce a surfaced token:
const (
	// AcceptNone marks a lexer state that is not a valid end of any token.
	AcceptNone = -1

	// AcceptDiscard marks a lexer state completing a token that is consumed
	// but never surfaced (whitespace, comments).
	AcceptDiscard = -2
)

// Label is an inclusive character code range; a char c matches if Low <= c <= High.
type Label struct {
	Low, High byte
}

// Edge connects two lexer states. The edge fires on a character matching at
// least one of Labels[LowLabel:HighLabel], or matching none of them if Invert
// is set.
type Edge struct {
	LowLabel, HighLabel int
	Target              int
	Invert              bool `json:",omitempty"`
}

// LexState owns Edges[LowEdge:HighEdge], tried in order, first firing edge
// wins. Accept is the terminal recognized when no further edge fires here,
// or AcceptNone/AcceptDiscard.
type LexState struct {
	LowEdge, HighEdge int
	Accept            int
}

// DFA is one character-classification machine. A table set may carry several;
// scanners start with DFA 0 and may be switched between them.
type DFA struct {
	Labels []Label
	Edges  []Edge
	States []LexState
}

// Term describes a terminal symbol. Terminal 0 is always the end-of-input
// marker: it has no lexeme and is synthesized by the parser on Finish.
type Term struct {
	Name string

	// Stack is the semantic stack receiving the converted lexeme value
	// when a token of this terminal is shifted, or NoStack.
	Stack int
}

// Nonterm describes a nonterminal symbol.
type Nonterm struct {
	Name string
}

// Rule describes one reduction.
type Rule struct {
	// Nonterm is the produced nonterminal.
	Nonterm int

	// Len is the number of right-hand-side symbols, i.e. the number of
	// parser states popped by the reduction. Zero for rules with an empty
	// right-hand side.
	Len int

	// Args lists, in left-to-right grammar order, the semantic stack each
	// callback operand is popped from. Only value-carrying right-hand-side
	// symbols appear here.
	Args []int `json:",omitempty"`

	// Push is the semantic stack receiving the callback result, or NoStack.
	// A rule with no Args and no Push dispatches no callback at all;
	// any operand values on the stacks are left in place.
	Push int
}

// TableSet is the complete compiled grammar. All cross-references use flat
// indices; Check validates every one of them once so that table lookups at
// parse time need no bounds checking beyond slice semantics.
type TableSet struct {
	Terms    []Term
	Nonterms []Nonterm
	Rules    []Rule
	DFAs     []DFA

	// States is the number of parser states.
	States int

	// Actions is the reduction table, len(Terms) rows of States entries.
	// Entry (term, state) holds rule index + 1, or 0 for no reduction.
	Actions []int

	// Shifts is the shift table, len(Terms) rows of States entries.
	// Entry (term, state) holds the state shifted to, or 0 for reject.
	// Row 0 (end of input) is never consulted.
	Shifts []int

	// Gotos is the goto table, len(Nonterms) rows of States entries.
	// Entry (nonterm, state) holds the state entered after a reduction.
	Gotos []int

	// Stacks is the number of semantic value stacks used by the grammar.
	Stacks int

	// RootStack is the stack holding the single residual value of a
	// completed parse.
	RootStack int
}

// ActionAt returns the index of the rule to reduce by for the given lookahead
// terminal and parser state, or -1 if no reduction applies.
func (ts *TableSet) ActionAt(term, state int) int {
	return ts.Actions[term*ts.States+state] - 1
}

// ShiftAt returns the state entered by shifting the given terminal,
// or 0 if the terminal is not acceptable in the given state.
func (ts *TableSet) ShiftAt(term, state int) int {
	return ts.Shifts[term*ts.States+state]
}

// GotoAt returns the state entered after reducing to the given nonterminal.
func (ts *TableSet) GotoAt(nonterm, state int) int {
	return ts.Gotos[nonterm*ts.States+state]
}

// TermName returns the name of the given terminal or "?" if the table set
// does not name it.
func (ts *TableSet) TermName(term int) string {
	if term >= 0 && term < len(ts.Terms) && ts.Terms[term].Name != "" {
		return ts.Terms[term].Name
	}
	return "?"
}
