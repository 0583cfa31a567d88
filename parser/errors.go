package parser

import (
	"github.com/mkrotov/lrx"
	"github.com/mkrotov/lrx/scanner"
)

// Error codes used by parser:
const (
	// UnexpectedTokenError indicates a token with no valid shift transition
	// in the current parser state.
	UnexpectedTokenError = lrx.SyntaxErrors + iota

	// UnexpectedEoiError indicates input ending before the parse could be
	// completed, or with leftover symbols on the parse frontier.
	UnexpectedEoiError
)

const (
	// RunFinishedError indicates an attempt to feed a run (or engine) that
	// has already yielded its result.
	RunFinishedError = lrx.ParserErrors + iota
)

func unexpectedTokenError(t *scanner.Token, expected string) *lrx.Error {
	return lrx.FormatErrorPos(t, UnexpectedTokenError, "unexpected token %q, expecting %s", t.Text(), expected)
}

func unexpectedEoiError(name, expected string) *lrx.Error {
	return lrx.NewError(UnexpectedEoiError, "unexpected end of input, expecting "+expected, name, 0, 0)
}

func runFinishedError() *lrx.Error {
	return lrx.FormatError(RunFinishedError, "run already finished")
}
