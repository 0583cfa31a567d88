// Package parser defines the shift-reduce engine interpreting a table set,
// and the coupling that feeds it from a DFA scanner.
package parser

import (
	"github.com/mkrotov/lrx/scanner"
	"github.com/mkrotov/lrx/tables"
)

// Actions is the grammar-specific callback set folding recognized input into
// values. Implementations must be pure: both methods see only their operands
// and are invoked exactly once per shifted value token / per value-carrying
// reduction.
type Actions interface {
	// TokenValue converts the lexeme of a value-carrying terminal to its
	// typed value, e.g. a numeral to a number. The only sanctioned failure
	// is a lexeme outside the representable range of the target type.
	TokenValue(term int, text string) (any, error)

	// Reduce computes the value of one reduction from its operands, given in
	// left-to-right grammar order. Implementations switch on the rule index;
	// rules that carry no value are never dispatched.
	Reduce(rule int, args []any) (any, error)
}

// Parser ties a table set to its action set. Parser itself is immutable and
// safe for concurrent use: any number of runs or engines created from one
// Parser may operate in parallel.
type Parser struct {
	ts      *tables.TableSet
	actions Actions
}

// New creates a Parser after validating the table set, so that runs can
// interpret it without per-lookup index checks.
func New(ts *tables.TableSet, actions Actions) (*Parser, error) {
	e := ts.Check()
	if e != nil {
		return nil, e
	}
	return &Parser{ts, actions}, nil
}

// Tables returns the shared table set.
func (p *Parser) Tables() *tables.TableSet {
	return p.ts
}

// NewEngine creates a bare shift-reduce engine, for callers supplying their
// own token stream.
func (p *Parser) NewEngine() *Engine {
	return newEngine(p.ts, p.actions, "")
}

// NewRun creates a runtime instance for one input unit: a scanner feeding a
// fresh engine. sourceName may be empty; it only decorates errors.
func (p *Parser) NewRun(sourceName string) *Run {
	engine := newEngine(p.ts, p.actions, sourceName)
	r := &Run{engine: engine}
	r.scanner = scanner.New(p.ts, sourceName, engine.Accept)
	return r
}

// ParseBytes parses one complete input, creating and discarding a Run.
func (p *Parser) ParseBytes(sourceName string, input []byte) (any, error) {
	r := p.NewRun(sourceName)
	e := r.Feed(input)
	if e != nil {
		return nil, e
	}
	return r.Finish()
}

// ParseString parses one complete input, creating and discarding a Run.
func (p *Parser) ParseString(sourceName, input string) (any, error) {
	return p.ParseBytes(sourceName, []byte(input))
}

// Run is one runtime instance: a scanner pushing tokens into an engine as
// they are recognized. Feed it any number of byte chunks, call Finish once,
// then discard it; a Run is never reused across inputs.
type Run struct {
	engine   *Engine
	scanner  *scanner.Scanner
	finished bool
}

// Scanner exposes the run's scanner, e.g. for DFA selection from a sink on
// grammars with several lexical modes.
func (r *Run) Scanner() *scanner.Scanner {
	return r.scanner
}

// Feed pushes one chunk of input. Chunk boundaries do not affect the result.
func (r *Run) Feed(chunk []byte) error {
	if r.finished {
		return runFinishedError()
	}
	return r.scanner.Feed(chunk)
}

// Finish flushes the scanner, drives the end-of-input terminal through the
// engine, and returns the root value or the error that makes this run fail.
func (r *Run) Finish() (any, error) {
	if r.finished {
		return nil, runFinishedError()
	}
	r.finished = true

	e := r.scanner.Finish()
	if e != nil {
		return nil, e
	}
	return r.engine.Finish()
}
