/*
Package lrx is a table-driven text recognition runtime: a DFA scanner paired
with a shift-reduce parser, both interpreting precomputed tables.

Consists of subpackages:
  - cmd/lrxrun: console utility validating, converting, and exercising table set files;
  - tables: defines the table set structure (DFA and parser tables) produced by an external grammar compiler;
  - scanner: incremental DFA tokenizer;
  - parser: shift-reduce engine and the scanner/engine coupling.

Typical usage is:

1. Compile a grammar to a table set with an external generator, either baked
into a Go source file or loaded from a JSON or binary table file.

2. Implement the parser.Actions interface for the grammar: one method converts
captured lexemes to typed values, the other folds reduction operands into
results, switching on rule index.

3. Create one parser.Parser per table set and share it freely; create one
parser.Run per input unit, feed it byte chunks, and collect the root value
or error from Finish.
*/
package lrx

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	TableErrors   = 1   // used by tables
	LexicalErrors = 101 // used by scanner
	SyntaxErrors  = 201 // used by parser
	ParserErrors  = 301 // used by parser
)

// Error is the error type used by lrx subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source or 0.
	Line int

	// Col contains column number in source or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// scanner.Token implements this interface.
type SourcePos interface {
	// SourceName returns source name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	} else if line != 0 && col != 0 {
		msg += fmt.Sprintf(" at line %d col %d", line, col)
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}
