package expr

import (
	"fmt"
	"strconv"

	"github.com/lytics/nlfilter/event"
	"github.com/lytics/nlfilter/lex"
)

// Parse builds the expression tree for a filter string. It never returns
// nil: an invalid input yields Expression{Valid: false} carrying the first
// syntax error encountered, with no recovery or multi-error reporting.
func Parse(text string) *Expression {
	p := &parser{l: lex.NewLexer(text)}
	p.next()

	root := p.parseExpr()
	if p.err == nil && p.cur.T != lex.TokenEOF {
		p.errorf(p.cur, "unexpected %q after expression", p.cur.V)
	}
	if p.err != nil {
		return &Expression{Text: text, Err: p.err}
	}
	return &Expression{Text: text, Root: root, Valid: true}
}

// MustParse parses or panics; for expressions known valid at compile time.
func MustParse(text string) *Expression {
	exp := Parse(text)
	if !exp.Valid {
		panic(fmt.Sprintf("nlfilter: MustParse(%q): %v", text, exp.Err))
	}
	return exp
}

type parser struct {
	l   *lex.Lexer
	cur lex.Token
	err *SyntaxError
}

func (p *parser) next() {
	p.cur = p.l.NextToken()
}

// errorf records the first error; later errors are discarded.
func (p *parser) errorf(tok lex.Token, format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	p.err = &SyntaxError{
		Message: fmt.Sprintf(format, args...),
		Offset:  tok.Pos,
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

// expr := or_expr
func (p *parser) parseExpr() Node {
	return p.parseOr()
}

// or_expr := and_expr ( "OR" and_expr )*
func (p *parser) parseOr() Node {
	n := p.parseAnd()
	for p.err == nil && p.cur.T == lex.TokenOr {
		p.next()
		right := p.parseAnd()
		if p.err != nil {
			return nil
		}
		n = &BooleanNode{Op: lex.TokenOr, Left: n, Right: right}
	}
	return n
}

// and_expr := not_expr ( "AND" not_expr )*
func (p *parser) parseAnd() Node {
	n := p.parseNot()
	for p.err == nil && p.cur.T == lex.TokenAnd {
		p.next()
		right := p.parseNot()
		if p.err != nil {
			return nil
		}
		n = &BooleanNode{Op: lex.TokenAnd, Left: n, Right: right}
	}
	return n
}

// not_expr := "NOT" not_expr | cmp_expr
func (p *parser) parseNot() Node {
	if p.cur.T == lex.TokenNot {
		p.next()
		arg := p.parseNot()
		if p.err != nil {
			return nil
		}
		return &UnaryNode{Arg: arg}
	}
	return p.parseComparison()
}

// cmp_expr := primary ( cmp_op primary )?
//
// Comparisons do not chain: "a < b < c" parses as "(a < b)" followed by a
// trailing "< c", which the caller rejects as unconsumed input.
func (p *parser) parseComparison() Node {
	left := p.parsePrimary()
	if p.err != nil {
		return nil
	}
	if !p.cur.IsComparison() {
		return left
	}
	op := p.cur.T
	p.next()
	right := p.parsePrimary()
	if p.err != nil {
		return nil
	}
	return &ComparisonNode{Op: op, Left: left, Right: right}
}

// primary := FIELD | STRING | NUMBER | "(" expr ")" | "[" list "]"
func (p *parser) parsePrimary() Node {
	tok := p.cur
	switch tok.T {
	case lex.TokenIdentity:
		p.next()
		return newIdentityNode(tok.V)
	case lex.TokenString:
		p.next()
		return &StringNode{Text: tok.V}
	case lex.TokenInteger:
		iv, err := strconv.ParseInt(tok.V, 10, 64)
		if err != nil {
			p.errorf(tok, "invalid number %q", tok.V)
			return nil
		}
		p.next()
		return &NumberNode{Int64: iv, Text: tok.V}
	case lex.TokenLeftParen:
		p.next()
		n := p.parseExpr()
		if p.err != nil {
			return nil
		}
		if p.cur.T != lex.TokenRightParen {
			p.errorf(p.cur, "expected ) but got %q", p.cur.String())
			return nil
		}
		p.next()
		return n
	case lex.TokenLeftBracket:
		return p.parseArray()
	case lex.TokenError:
		p.errorf(tok, "unexpected character %q", tok.V)
		return nil
	case lex.TokenEOF:
		p.errorf(tok, "unexpected end of expression")
		return nil
	}
	p.errorf(tok, "unexpected %q", tok.String())
	return nil
}

// "[" ( primary ( "," primary )* )? "]"
func (p *parser) parseArray() Node {
	p.next() // consume [
	arr := &ArrayNode{}
	if p.cur.T == lex.TokenRightBracket {
		p.next()
		return arr
	}
	for {
		item := p.parsePrimary()
		if p.err != nil {
			return nil
		}
		arr.Args = append(arr.Args, item)
		switch p.cur.T {
		case lex.TokenComma:
			p.next()
		case lex.TokenRightBracket:
			p.next()
			return arr
		default:
			p.errorf(p.cur, "expected , or ] in list but got %q", p.cur.String())
			return nil
		}
	}
}

// newIdentityNode resolves a field identifier against the catalog,
// case-insensitively. An unrecognized name is accepted and resolves to
// the first catalog entry; see the compatibility note on this in the
// package tests before changing it.
func newIdentityNode(text string) *IdentityNode {
	id, ok := event.FieldByName(text)
	if !ok {
		id = event.FieldInterface
	}
	return &IdentityNode{Text: text, Field: id}
}
