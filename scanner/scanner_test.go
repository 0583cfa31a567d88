package scanner

import (
	"testing"

	"github.com/d4l3k/messagediff"

	"github.com/mkrotov/lrx"
	"github.com/mkrotov/lrx/internal/test"
	"github.com/mkrotov/lrx/tables"
)

const (
	termWord = iota + 1
	termNum
	termStr
)

// Two lexical modes: DFA 0 distinguishes words, numbers, and quoted strings;
// DFA 1 lumps letters and digits into one word token.
var scanTables = &tables.TableSet{
	Terms: []tables.Term{
		{Name: "-end-of-input-", Stack: tables.NoStack},
		{Name: "word", Stack: 0},
		{Name: "num", Stack: 0},
		{Name: "str", Stack: 0},
	},
	States:    1,
	Actions:   []int{0, 0, 0, 0},
	Shifts:    []int{0, 0, 0, 0},
	Stacks:    1,
	RootStack: 0,
	DFAs: []tables.DFA{
		{
			Labels: []tables.Label{
				{Low: 'a', High: 'z'}, {Low: '0', High: '9'},
				{Low: 9, High: 13}, {Low: ' ', High: ' '}, {Low: '"', High: '"'},
			},
			Edges: []tables.Edge{
				{LowLabel: 0, HighLabel: 1, Target: 1},
				{LowLabel: 1, HighLabel: 2, Target: 2},
				{LowLabel: 2, HighLabel: 4, Target: 3},
				{LowLabel: 4, HighLabel: 5, Target: 4},
				{LowLabel: 0, HighLabel: 1, Target: 1},
				{LowLabel: 1, HighLabel: 2, Target: 2},
				{LowLabel: 2, HighLabel: 4, Target: 3},
				{LowLabel: 4, HighLabel: 5, Target: 5},
				{LowLabel: 4, HighLabel: 5, Target: 4, Invert: true},
			},
			States: []tables.LexState{
				{LowEdge: 0, HighEdge: 4, Accept: tables.AcceptNone},
				{LowEdge: 4, HighEdge: 5, Accept: termWord},
				{LowEdge: 5, HighEdge: 6, Accept: termNum},
				{LowEdge: 6, HighEdge: 7, Accept: tables.AcceptDiscard},
				{LowEdge: 7, HighEdge: 9, Accept: tables.AcceptNone},
				{LowEdge: 9, HighEdge: 9, Accept: termStr},
			},
		},
		{
			Labels: []tables.Label{
				{Low: 'a', High: 'z'}, {Low: '0', High: '9'},
				{Low: 9, High: 13}, {Low: ' ', High: ' '},
			},
			Edges: []tables.Edge{
				{LowLabel: 0, HighLabel: 2, Target: 1},
				{LowLabel: 2, HighLabel: 4, Target: 2},
				{LowLabel: 0, HighLabel: 2, Target: 1},
				{LowLabel: 2, HighLabel: 4, Target: 2},
			},
			States: []tables.LexState{
				{LowEdge: 0, HighEdge: 2, Accept: tables.AcceptNone},
				{LowEdge: 2, HighEdge: 3, Accept: termWord},
				{LowEdge: 3, HighEdge: 4, Accept: tables.AcceptDiscard},
			},
		},
	},
}

type tokenInfo struct {
	Term      int
	Text      string
	Line, Col int
}

func collect(tokens *[]tokenInfo) TokenFunc {
	return func(t *Token) error {
		*tokens = append(*tokens, tokenInfo{t.Term(), t.Text(), t.Line(), t.Col()})
		return nil
	}
}

func scanAll(t *testing.T, input string, widths ...int) []tokenInfo {
	var tokens []tokenInfo
	s := New(scanTables, "test", collect(&tokens))

	rest := []byte(input)
	for _, w := range widths {
		test.Assert(t, w <= len(rest), "bad chunk width %d", w)
		e := s.Feed(rest[:w])
		if e != nil {
			t.Fatalf("input %q: unexpected error: %s", input, e.Error())
		}
		rest = rest[w:]
	}
	e := s.Feed(rest)
	if e == nil {
		e = s.Finish()
	}
	if e != nil {
		t.Fatalf("input %q: unexpected error: %s", input, e.Error())
	}
	return tokens
}

func TestEmpty(t *testing.T) {
	for _, input := range []string{"", " ", " \t\r\n "} {
		tokens := scanAll(t, input)
		test.ExpectInt(t, 0, len(tokens))
	}
}

func TestTokenSequence(t *testing.T) {
	tokens := scanAll(t, "abc12 \"x y\"z")
	expected := []tokenInfo{
		{termWord, "abc", 1, 1},
		{termNum, "12", 1, 4},
		{termStr, "\"x y\"", 1, 7},
		{termWord, "z", 1, 12},
	}
	if diff, equal := messagediff.PrettyDiff(expected, tokens); !equal {
		t.Fatalf("token mismatch:\n%s", diff)
	}
}

func TestChunkingInvariance(t *testing.T) {
	input := "ab 12\ncd\"ef gh\"3 i"
	whole := scanAll(t, input)

	splits := [][]int{
		{1}, {len(input) - 1},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{3, 5, 2}, {7, 1, 4},
	}
	for _, widths := range splits {
		chunked := scanAll(t, input, widths...)
		if diff, equal := messagediff.PrettyDiff(whole, chunked); !equal {
			t.Fatalf("split %v: token mismatch:\n%s", widths, diff)
		}
	}
}

func TestLongestMatch(t *testing.T) {
	tokens := scanAll(t, "aaaa")
	if diff, equal := messagediff.PrettyDiff([]tokenInfo{{termWord, "aaaa", 1, 1}}, tokens); !equal {
		t.Fatalf("token mismatch:\n%s", diff)
	}

	tokens = scanAll(t, "ab12")
	expected := []tokenInfo{{termWord, "ab", 1, 1}, {termNum, "12", 1, 3}}
	if diff, equal := messagediff.PrettyDiff(expected, tokens); !equal {
		t.Fatalf("token mismatch:\n%s", diff)
	}
}

func TestPositions(t *testing.T) {
	tokens := scanAll(t, "ab\n cd")
	expected := []tokenInfo{{termWord, "ab", 1, 1}, {termWord, "cd", 2, 2}}
	if diff, equal := messagediff.PrettyDiff(expected, tokens); !equal {
		t.Fatalf("token mismatch:\n%s", diff)
	}
}

func TestWrongChar(t *testing.T) {
	var tokens []tokenInfo
	s := New(scanTables, "test", collect(&tokens))
	e := s.Feed([]byte("ab@"))
	test.ExpectErrorCode(t, WrongCharError, e)

	le := e.(*lrx.Error)
	test.ExpectInt(t, 1, le.Line)
	test.ExpectInt(t, 3, le.Col)
	test.ExpectInt(t, 1, len(tokens))
	test.Expect(t, tokens[0].Text == "ab", "ab", tokens[0].Text)
}

func TestBadToken(t *testing.T) {
	var tokens []tokenInfo
	s := New(scanTables, "test", collect(&tokens))
	e := s.Feed([]byte(" \"unterminated"))
	if e == nil {
		e = s.Finish()
	}
	test.ExpectErrorCode(t, BadTokenError, e)

	le := e.(*lrx.Error)
	test.ExpectInt(t, 1, le.Line)
	test.ExpectInt(t, 2, le.Col)
}

func TestFinishIdle(t *testing.T) {
	var tokens []tokenInfo
	s := New(scanTables, "test", collect(&tokens))
	if e := s.Feed([]byte("ab ")); e != nil {
		t.Fatal(e)
	}
	if e := s.Finish(); e != nil {
		t.Fatal(e)
	}
	test.ExpectInt(t, 1, len(tokens))
}

func TestSelectDFA(t *testing.T) {
	var tokens []tokenInfo
	s := New(scanTables, "test", collect(&tokens))
	s.SelectDFA(1)
	if e := s.Feed([]byte("ab12 cd")); e != nil {
		t.Fatal(e)
	}
	if e := s.Finish(); e != nil {
		t.Fatal(e)
	}
	expected := []tokenInfo{{termWord, "ab12", 1, 1}, {termWord, "cd", 1, 6}}
	if diff, equal := messagediff.PrettyDiff(expected, tokens); !equal {
		t.Fatalf("token mismatch:\n%s", diff)
	}
}
