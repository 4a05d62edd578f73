// Package parser assembles a token stream into the value trees the
// evaluator walks: parenthesized forms become SExpr, bracketed forms become
// List, and braced forms become Dict, each tagged with its source position.
package parser

import (
	"strings"

	"scam/internal/diag"
	"scam/internal/lexer"
	"scam/internal/value"
)

// Parser holds the token stream and cursor. A syntax error is reported by
// panicking with a *diag.ScamError; Parse recovers it at the top level,
// mirroring how the teacher parser turns a panic-based internal control
// flow into an ordinary returned error.
type Parser struct {
	c           *value.Collector
	toks        []lexer.Token
	current     int
	file        string
	sourceLines []string
}

// New builds a Parser over toks. file and source are used only to annotate
// syntax errors; source may be empty if no source text is available.
func New(c *value.Collector, toks []lexer.Token, file, source string) *Parser {
	p := &Parser{c: c, toks: toks, file: file}
	if source != "" {
		p.sourceLines = strings.Split(source, "\n")
	}
	return p
}

// Parse reads every top-level form up to EOF and returns the parsed values
// in order, each still rooted in the collector.
func (p *Parser) Parse() (forms []value.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(*diag.ScamError); ok {
				err = se
				return
			}
			panic(r)
		}
	}()
	for !p.isAtEnd() {
		forms = append(forms, p.expr())
	}
	return forms, nil
}

// ParseOne parses exactly one form, used by the REPL to read one line at a
// time without requiring the whole input to balance beyond that form.
func (p *Parser) ParseOne() (v value.Value, atEnd bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(*diag.ScamError); ok {
				err = se
				return
			}
			panic(r)
		}
	}()
	if p.isAtEnd() {
		return value.Value{}, true, nil
	}
	return p.expr(), false, nil
}

func (p *Parser) expr() value.Value {
	tok := p.peek()
	switch tok.Kind {
	case lexer.LParen:
		return p.sexpr()
	case lexer.LBracket:
		return p.seq(lexer.RBracket, value.NewList)
	case lexer.LBrace:
		return p.dict()
	case lexer.Int:
		return p.atomInt()
	case lexer.Dec:
		return p.atomDec()
	case lexer.Str:
		return p.atomStr()
	case lexer.Sym:
		return p.atomSym()
	case lexer.RParen, lexer.RBracket, lexer.RBrace:
		p.fail("unexpected '%s'", tok.Val)
	case lexer.Unknown:
		p.fail("malformed token '%s'", tok.Val)
	}
	p.fail("unexpected end of input")
	panic("unreachable")
}

// sexpr parses a parenthesized form. Its children are fully parsed first and
// then assembled with SExprFromVals, the constructor the evaluator's
// interface specifically names for building expression nodes out of
// pre-constructed children.
func (p *Parser) sexpr() value.Value {
	open := p.advance()
	var elems []value.Value
	for !p.check(lexer.RParen) {
		if p.isAtEnd() {
			p.failAt(open, "unterminated '('")
		}
		elems = append(elems, p.expr())
	}
	p.advance()
	var v value.Value
	if len(elems) == 0 {
		v = value.NewSExpr(p.c)
	} else {
		v = value.SExprFromVals(p.c, elems...)
	}
	v.SetPos(open.Line, open.Col)
	return v
}

// seq parses a bracketed run of sub-expressions into a fresh sequence value,
// appending each child as it is parsed (Append clears the child's root flag,
// handing ownership to the new parent as it goes).
func (p *Parser) seq(close lexer.Kind, empty func(*value.Collector) value.Value) value.Value {
	open := p.advance()
	v := empty(p.c)
	v.SetPos(open.Line, open.Col)
	for !p.check(close) {
		if p.isAtEnd() {
			p.failAt(open, "unterminated '%s'", open.Val)
		}
		value.Append(p.c, v, p.expr())
	}
	p.advance() // closing bracket
	return v
}

// dict parses `{` key value key value ... `}` into a Dict. Scam's brace
// syntax pairs a key form with a value form positionally; it does not use a
// colon separator in source (the colon appears only in the printed form).
func (p *Parser) dict() value.Value {
	open := p.advance()
	d := value.NewDict(p.c)
	for !p.check(lexer.RBrace) {
		if p.isAtEnd() {
			p.failAt(open, "unterminated '{'")
		}
		k := p.expr()
		if p.check(lexer.RBrace) {
			p.failAt(open, "dict literal has a key with no matching value")
		}
		v := p.expr()
		value.Bind(p.c, d, k, v)
	}
	p.advance()
	d.SetPos(open.Line, open.Col)
	return d
}

func (p *Parser) atomInt() value.Value {
	tok := p.advance()
	n, err := parseInt(tok.Val)
	if err != nil {
		p.failAt(tok, "invalid integer literal '%s'", tok.Val)
	}
	v := value.NewInt(p.c, n)
	v.SetPos(tok.Line, tok.Col)
	return v
}

func (p *Parser) atomDec() value.Value {
	tok := p.advance()
	f, err := parseFloat(tok.Val)
	if err != nil {
		p.failAt(tok, "invalid decimal literal '%s'", tok.Val)
	}
	v := value.NewDec(p.c, f)
	v.SetPos(tok.Line, tok.Col)
	return v
}

func (p *Parser) atomStr() value.Value {
	tok := p.advance()
	v := value.NewStr(p.c, tok.Val)
	v.SetPos(tok.Line, tok.Col)
	return v
}

func (p *Parser) atomSym() value.Value {
	tok := p.advance()
	switch tok.Val {
	case "true":
		v := value.NewBool(p.c, true)
		v.SetPos(tok.Line, tok.Col)
		return v
	case "false":
		v := value.NewBool(p.c, false)
		v.SetPos(tok.Line, tok.Col)
		return v
	case "null":
		v := value.NewNull(p.c)
		v.SetPos(tok.Line, tok.Col)
		return v
	default:
		v := value.NewSym(p.c, tok.Val)
		v.SetPos(tok.Line, tok.Col)
		return v
	}
}

func (p *Parser) fail(format string, args ...any) {
	p.failAt(p.peek(), format, args...)
}

func (p *Parser) failAt(tok lexer.Token, format string, args ...any) {
	e := diag.NewSyntax(p.file, tok.Line, tok.Col, format, args...)
	if p.sourceLines != nil && tok.Line > 0 && tok.Line <= len(p.sourceLines) {
		e = e.WithSource(p.sourceLines[tok.Line-1])
	}
	panic(e)
}

func (p *Parser) check(k lexer.Kind) bool {
	return !p.isAtEnd() && p.peek().Kind == k
}

func (p *Parser) advance() lexer.Token {
	tok := p.toks[p.current]
	if !p.isAtEnd() {
		p.current++
	}
	return tok
}

func (p *Parser) peek() lexer.Token {
	return p.toks[p.current]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == lexer.EOF
}
