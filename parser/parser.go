/*
File    : dungeontalk/parser/parser.go
Package : parser
*/

// Package parser turns a lexeme stream into the interpreter's flat,
// append-only program list. Block structure (if/else/end, for/end,
// procedure/def bodies) is never represented as tree nesting: every
// statement, at whatever depth, is appended to the same Program slice
// in the order it is read, and a handful of headers record the span of
// flat instructions their body occupies. The only nesting that exists
// at parse time is Go's own call stack, recursing one level per open
// block the same way the source text does.
package parser

import (
	"errors"
	"fmt"

	"github.com/dungeontalk/dungeontalk/ast"
	"github.com/dungeontalk/dungeontalk/grammar"
	"github.com/dungeontalk/dungeontalk/langerr"
	"github.com/dungeontalk/dungeontalk/lexeme"
	"github.com/dungeontalk/dungeontalk/lexer"
	"github.com/dungeontalk/dungeontalk/token"
)

// Parser consumes a Lexer and produces ast.Instr entries.
type Parser struct {
	lex     *lexer.Lexer
	pending []lexeme.Lexeme
	program []ast.Instr
	openIfs []*ast.IfStmt
}

// New builds a Parser reading from source text.
func New(source string) *Parser {
	return &Parser{lex: lexer.New(source)}
}

// NewFile builds a Parser reading a file's contents.
func NewFile(path string) (*Parser, error) {
	l, err := lexer.NewFile(path)
	if err != nil {
		return nil, err
	}
	return &Parser{lex: l}, nil
}

// ParseProgram consumes the entire source, returning the flat
// instruction list.
func (p *Parser) ParseProgram() ([]ast.Instr, error) {
	for {
		_, _, err := p.parseOne(nil)
		if err != nil {
			if errors.Is(err, langerr.ErrEOF) {
				return p.program, nil
			}
			return nil, err
		}
	}
}

// Program returns everything parsed so far.
func (p *Parser) Program() []ast.Instr { return p.program }

// --- lexeme-level reading ---

var defaultIgnore = map[lexeme.Tag]bool{lexeme.TagSpace: true, lexeme.TagTab: true}

// next reads the next significant lexeme, skipping whitespace and
// consuming (and discarding) preprocessor comment spans inline.
func (p *Parser) next() (lexeme.Lexeme, error) {
	for {
		var l lexeme.Lexeme
		var err error
		if n := len(p.pending); n > 0 {
			l = p.pending[n-1]
			p.pending = p.pending[:n-1]
		} else {
			l, err = p.lex.Next()
			if err != nil {
				return nil, err
			}
		}

		switch v := l.(type) {
		case *lexeme.CommentLine:
			if err := p.skipLineComment(); err != nil {
				return nil, err
			}
			continue
		case *lexeme.CommentBlock:
			if v.Open {
				if err := p.skipBlockComment(); err != nil {
					return nil, err
				}
				continue
			}
		}

		if defaultIgnore[l.Tag()] {
			continue
		}
		return l, nil
	}
}

func (p *Parser) pushback(l lexeme.Lexeme) {
	p.pending = append(p.pending, l)
}

func (p *Parser) skipLineComment() error {
	for {
		l, err := p.lex.Next()
		if err != nil {
			return err
		}
		if _, ok := l.(*lexeme.NewLine); ok {
			return nil
		}
	}
}

func (p *Parser) skipBlockComment() error {
	for {
		l, err := p.lex.Next()
		if err != nil {
			return err
		}
		if cb, ok := l.(*lexeme.CommentBlock); ok && !cb.Open {
			return nil
		}
	}
}

// verbatimUntilQuote reads raw bytes directly off the lexer (bypassing
// classification) until the matching closing quote, used for string
// literals so escape-free raw content survives untouched.
func (p *Parser) verbatimUntilQuote(double bool) (string, error) {
	var out []byte
	for {
		t, ok := p.lex.ReadRaw()
		if !ok {
			return "", &langerr.UnexpectedEOF{Context: "string literal"}
		}
		if (double && t.Word == "\"") || (!double && t.Word == "'") {
			return string(out), nil
		}
		out = append(out, t.Word...)
	}
}

// --- expressions and clauses ---

// parseExpression collects lexemes into an Expression until a NewLine,
// EOF, or (if stop is non-nil) a lexeme stop reports true, validating
// each push against the expression grammar.
func (p *Parser) parseExpression(stop func(lexeme.Lexeme) bool) ([]lexeme.Lexeme, error) {
	var expr grammar.Expression
	var out []lexeme.Lexeme

	for {
		l, err := p.next()
		if err != nil {
			if errors.Is(err, langerr.ErrEOF) {
				return out, nil
			}
			return nil, err
		}

		if _, ok := l.(*lexeme.NewLine); ok {
			return out, nil
		}
		if stop != nil && stop(l) {
			p.pushback(l)
			return out, nil
		}

		if dq, ok := l.(*lexeme.DoubleQuote); ok {
			word, err := p.verbatimUntilQuote(true)
			if err != nil {
				return nil, err
			}
			pos := dq.Pos()
			out = append(out, lexeme.NewString(token.New(word, pos.Line, pos.Column, pos.ByteOffset)))
			continue
		}
		if sq, ok := l.(*lexeme.SingleQuote); ok {
			word, err := p.verbatimUntilQuote(false)
			if err != nil {
				return nil, err
			}
			pos := sq.Pos()
			out = append(out, lexeme.NewString(token.New(word, pos.Line, pos.Column, pos.ByteOffset)))
			continue
		}

		if !expr.Push(l) {
			return nil, &langerr.UnexpectedSymbol{
				Line: l.Pos().Line, Column: l.Pos().Column,
				Got: l.Word(), Expected: fmt.Sprintf("%v", expr.Hint()),
			}
		}
		out = append(out, l)
	}
}

// clause parses a single UNTIL/BY-introduced expression. It returns nil
// if the next lexeme isn't the parameter it expects, pushing it back
// unconsumed.
func (p *Parser) clause() (lexeme.Lexeme, []lexeme.Lexeme, error) {
	l, err := p.next()
	if err != nil {
		if errors.Is(err, langerr.ErrEOF) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	if l.Tag() != lexeme.TagParameter {
		p.pushback(l)
		return nil, nil, nil
	}
	body, err := p.parseExpression(nil)
	if err != nil {
		return nil, nil, err
	}
	return l, body, nil
}

func build(lexs []lexeme.Lexeme) (ast.Expr, error) {
	seq := make([]ast.Expr, len(lexs))
	for i, l := range lexs {
		seq[i] = l
	}
	return ast.Build(seq)
}
