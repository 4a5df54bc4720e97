package lex

import "strings"

// keywords is the fixed, case-insensitive keyword set. Any other
// identifier is an identity (field reference) token.
var keywords = map[string]TokenType{
	"and": TokenAnd,
	"or":  TokenOr,
	"not": TokenNot,
	"in":  TokenIN,
}

// Lexer walks an expression string one token at a time, tracking byte
// offset, line, and column for error reporting. The parser holds at most
// the current and one look-ahead token, so tokens are produced on demand
// and never buffered.
type Lexer struct {
	input  string
	pos    int
	line   int
	column int
}

func NewLexer(input string) *Lexer {
	return &Lexer{input: input, line: 1, column: 1}
}

// Pos returns the current byte offset into the input.
func (l *Lexer) Pos() int { return l.pos }

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

// advance consumes one byte, keeping line/column in sync.
func (l *Lexer) advance() byte {
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool { return isIdentStart(ch) || isDigit(ch) }

// NextToken returns the next token in the input. After the input is
// exhausted it returns TokenEOF forever.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	tok := Token{Pos: l.pos, Line: l.line, Column: l.column}
	if l.pos >= len(l.input) {
		tok.T = TokenEOF
		return tok
	}

	ch := l.peek()

	// Two-character operators take priority over their one-character
	// prefixes.
	if next := l.peekAt(1); next != 0 {
		two := string(ch) + string(next)
		switch two {
		case "==":
			return l.emit(&tok, TokenEqual, 2)
		case "!=":
			return l.emit(&tok, TokenNE, 2)
		case "<=":
			return l.emit(&tok, TokenLE, 2)
		case ">=":
			return l.emit(&tok, TokenGE, 2)
		case "=~":
			return l.emit(&tok, TokenMatch, 2)
		case "!~":
			return l.emit(&tok, TokenNotMatch, 2)
		}
	}

	switch {
	case ch == '<':
		return l.emit(&tok, TokenLT, 1)
	case ch == '>':
		return l.emit(&tok, TokenGT, 1)
	case ch == '(':
		return l.emit(&tok, TokenLeftParen, 1)
	case ch == ')':
		return l.emit(&tok, TokenRightParen, 1)
	case ch == '[':
		return l.emit(&tok, TokenLeftBracket, 1)
	case ch == ']':
		return l.emit(&tok, TokenRightBracket, 1)
	case ch == ',':
		return l.emit(&tok, TokenComma, 1)
	case ch == '\'' || ch == '"':
		return l.lexString(&tok)
	case isDigit(ch):
		return l.lexNumber(&tok)
	case isIdentStart(ch):
		return l.lexIdentity(&tok)
	}

	tok.T = TokenError
	tok.V = string(ch)
	l.advance()
	return tok
}

func (l *Lexer) emit(tok *Token, t TokenType, width int) Token {
	tok.T = t
	tok.V = l.input[l.pos : l.pos+width]
	for i := 0; i < width; i++ {
		l.advance()
	}
	return *tok
}

// lexString reads a quoted literal. Either quote mark works. A backslash
// causes the following character to be taken verbatim; there is no other
// escape processing. A missing closing quote yields the text read so far.
func (l *Lexer) lexString(tok *Token) Token {
	quote := l.advance()
	var sb strings.Builder
	for l.pos < len(l.input) {
		ch := l.advance()
		if ch == quote {
			break
		}
		if ch == '\\' && l.pos < len(l.input) {
			ch = l.advance()
		}
		sb.WriteByte(ch)
	}
	tok.T = TokenString
	tok.V = sb.String()
	tok.Quote = quote
	return *tok
}

func (l *Lexer) lexNumber(tok *Token) Token {
	start := l.pos
	for l.pos < len(l.input) && isDigit(l.peek()) {
		l.advance()
	}
	tok.T = TokenInteger
	tok.V = l.input[start:l.pos]
	return *tok
}

func (l *Lexer) lexIdentity(tok *Token) Token {
	start := l.pos
	for l.pos < len(l.input) && isIdentPart(l.peek()) {
		l.advance()
	}
	word := l.input[start:l.pos]
	if kw, ok := keywords[strings.ToLower(word)]; ok {
		tok.T = kw
	} else {
		tok.T = TokenIdentity
	}
	tok.V = word
	return *tok
}
