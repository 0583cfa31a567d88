package scanner

// Token is one classified lexeme. Term is a terminal index of the table set
// the token was scanned with; Text is the exact matched lexeme, kept only for
// terminals that carry data.
type Token struct {
	term       int
	text       string
	sourceName string
	line, col  int
}

func NewToken(term int, text, sourceName string, line, col int) *Token {
	return &Token{term, text, sourceName, line, col}
}

// Term returns the terminal index of the token.
func (t *Token) Term() int {
	return t.term
}

// Text returns the matched lexeme.
func (t *Token) Text() string {
	return t.text
}

// SourceName returns the name of the source the token was scanned from,
// or empty string.
func (t *Token) SourceName() string {
	return t.sourceName
}

// Line returns the 1-based line of the first lexeme character.
func (t *Token) Line() int {
	return t.line
}

// Col returns the 1-based column of the first lexeme character.
func (t *Token) Col() int {
	return t.col
}
