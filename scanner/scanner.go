// Package scanner defines the incremental DFA tokenizer.
package scanner

import (
	"fmt"

	"github.com/mkrotov/lrx"
	"github.com/mkrotov/lrx/tables"
)

// Error codes used by scanner:
const (
	// WrongCharError indicates a character that cannot start any token.
	// Error message contains the offending character.
	WrongCharError = lrx.LexicalErrors + iota

	// BadTokenError indicates input ending (or becoming unextendable) inside
	// a lexeme that is not a complete token of any kind.
	// Error message contains the partial lexeme.
	BadTokenError
)

// TokenFunc receives every surfaced token in input order.
// A non-nil result aborts scanning and is returned to the Feed or Finish caller.
type TokenFunc = func(t *Token) error

// Scanner walks input characters through one of the table set's DFAs and
// pushes recognized tokens into a sink, using maximal-munch semantics:
// a token is emitted only when the next character cannot extend it, and that
// character is then retried as the start of the following token. Behavior is
// identical no matter how the input is split across Feed calls.
//
// A Scanner serves exactly one input: feed any number of chunks, call Finish
// once, then discard it. Scanners sharing one table set are fully independent.
type Scanner struct {
	ts         *tables.TableSet
	sink       TokenFunc
	sourceName string

	dfa    int
	state  int
	lexeme []byte

	line, col       int // position of the next incoming character
	tokLine, tokCol int // position of the first buffered character
}

// New creates a scanner pushing tokens into sink, starting with DFA 0 of ts.
// sourceName may be empty; it only decorates tokens and error messages.
func New(ts *tables.TableSet, sourceName string, sink TokenFunc) *Scanner {
	return &Scanner{
		ts:         ts,
		sink:       sink,
		sourceName: sourceName,
		state:      tables.InitialState,
		line:       1,
		col:        1,
	}
}

// SelectDFA switches the scanner to another DFA of its table set.
// Meant to be called between tokens (e.g. from the sink) when the grammar
// uses several lexical modes; switching mid-lexeme keeps the pending buffer.
func (s *Scanner) SelectDFA(n int) {
	s.dfa = n
}

func wrongCharError(c byte, name string, line, col int) *lrx.Error {
	return lrx.NewError(WrongCharError, fmt.Sprintf("wrong char %q (u+%x)", c, c), name, line, col)
}

func badTokenError(lexeme []byte, name string, line, col int) *lrx.Error {
	return lrx.NewError(BadTokenError, fmt.Sprintf("bad token %q", lexeme), name, line, col)
}

// Feed pushes one input chunk through the DFA, character by character.
// Chunks may be split at arbitrary byte boundaries. Returns the first error
// reported by the DFA walk or by the sink; an error leaves the scanner in an
// undefined state and the instance must be discarded.
func (s *Scanner) Feed(chunk []byte) error {
	for _, c := range chunk {
		e := s.accept(c)
		if e != nil {
			return e
		}

		if c == '\n' {
			s.line++
			s.col = 1
		} else {
			s.col++
		}
	}
	return nil
}

// Finish flushes the pending lexeme exactly as if the input were followed by
// a character matching no edge: the current state's token is emitted (or a
// BadTokenError reported if there is none). An idle scanner emits nothing.
// The scanner must not be fed after Finish.
func (s *Scanner) Finish() error {
	if len(s.lexeme) == 0 && s.state == tables.InitialState {
		return nil
	}
	return s.flush()
}

// accept walks one character, flushing completed tokens until the character
// is either consumed into the lexeme buffer or rejected.
func (s *Scanner) accept(c byte) error {
	for {
		target, found := s.step(c)
		if found {
			if len(s.lexeme) == 0 {
				s.tokLine, s.tokCol = s.line, s.col
			}
			s.state = target
			s.lexeme = append(s.lexeme, c)
			return nil
		}

		if s.state == tables.InitialState {
			return wrongCharError(c, s.sourceName, s.line, s.col)
		}

		e := s.flush()
		if e != nil {
			return e
		}
	}
}

// step tries the current state's edges in declaration order and returns the
// target of the first one firing on c.
func (s *Scanner) step(c byte) (target int, found bool) {
	dfa := &s.ts.DFAs[s.dfa]
	st := dfa.States[s.state]
	for ei := st.LowEdge; ei < st.HighEdge; ei++ {
		ed := dfa.Edges[ei]
		matched := false
		for li := ed.LowLabel; !matched && li < ed.HighLabel; li++ {
			l := dfa.Labels[li]
			matched = l.Low <= c && c <= l.High
		}

		if matched != ed.Invert {
			return ed.Target, true
		}
	}
	return 0, false
}

// flush emits the pending lexeme as a token of the current state's accept
// kind and resets the DFA to the initial state. Discard tokens are swallowed.
func (s *Scanner) flush() error {
	accept := s.ts.DFAs[s.dfa].States[s.state].Accept
	if accept == tables.AcceptNone {
		return badTokenError(s.lexeme, s.sourceName, s.tokLine, s.tokCol)
	}

	var e error
	if accept != tables.AcceptDiscard {
		e = s.sink(NewToken(accept, string(s.lexeme), s.sourceName, s.tokLine, s.tokCol))
	}

	s.lexeme = s.lexeme[:0]
	s.state = tables.InitialState
	return e
}
