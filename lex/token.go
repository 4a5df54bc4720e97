// Package lex tokenizes netlink filter expressions.
package lex

import "fmt"

// TokenType identifies the kind of a lexed token.
type TokenType int

const (
	// TokenEOF marks the end of input.
	TokenEOF TokenType = iota
	// TokenError is emitted for a character the lexer does not recognize.
	TokenError

	// Comparison / match operators
	TokenEqual    // ==
	TokenNE       // !=
	TokenLT       // <
	TokenGT       // >
	TokenLE       // <=
	TokenGE       // >=
	TokenMatch    // =~
	TokenNotMatch // !~

	// Keywords (case-insensitive)
	TokenAnd // AND
	TokenOr  // OR
	TokenNot // NOT
	TokenIN  // IN

	TokenIdentity // field reference
	TokenString   // quoted string literal
	TokenInteger  // unsigned decimal integer literal

	TokenLeftParen    // (
	TokenRightParen   // )
	TokenLeftBracket  // [
	TokenRightBracket // ]
	TokenComma        // ,
)

var tokenNames = map[TokenType]string{
	TokenEOF:          "EOF",
	TokenError:        "Error",
	TokenEqual:        "==",
	TokenNE:           "!=",
	TokenLT:           "<",
	TokenGT:           ">",
	TokenLE:           "<=",
	TokenGE:           ">=",
	TokenMatch:        "=~",
	TokenNotMatch:     "!~",
	TokenAnd:          "AND",
	TokenOr:           "OR",
	TokenNot:          "NOT",
	TokenIN:           "IN",
	TokenIdentity:     "identity",
	TokenString:       "string",
	TokenInteger:      "integer",
	TokenLeftParen:    "(",
	TokenRightParen:   ")",
	TokenLeftBracket:  "[",
	TokenRightBracket: "]",
	TokenComma:        ",",
}

func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a typed fragment of a filter expression. Pos is the byte offset
// of the first character; Line and Column are 1-based.
type Token struct {
	T      TokenType
	V      string
	Pos    int
	Line   int
	Column int
	Quote  byte // quote mark for string literals, 0 otherwise
}

func (t Token) String() string {
	switch t.T {
	case TokenEOF:
		return "EOF"
	case TokenString:
		return fmt.Sprintf("%q", t.V)
	}
	return t.V
}

// IsComparison reports whether the token is one of the nine comparison,
// match, or membership operators that may join two primaries.
func (t Token) IsComparison() bool {
	switch t.T {
	case TokenEqual, TokenNE, TokenLT, TokenGT, TokenLE, TokenGE,
		TokenMatch, TokenNotMatch, TokenIN:
		return true
	}
	return false
}
