/*
File    : dungeontalk/parser/statements.go
Package : parser
*/
package parser

import (
	"errors"
	"fmt"

	"github.com/dungeontalk/dungeontalk/ast"
	"github.com/dungeontalk/dungeontalk/langerr"
	"github.com/dungeontalk/dungeontalk/lexeme"
)

func (p *Parser) emit(instr ast.Instr) int {
	p.program = append(p.program, instr)
	return len(p.program) - 1
}

func isEnd(l lexeme.Lexeme) bool {
	_, ok := l.(*lexeme.End)
	return ok
}

// parseOne reads and dispatches a single statement. If stop is given
// and the freshly read lexeme satisfies it, parseOne returns that
// lexeme without dispatching or emitting it — the caller (a block body
// loop) handles it directly.
func (p *Parser) parseOne(stop func(lexeme.Lexeme) bool) (ast.Instr, lexeme.Lexeme, error) {
	l, err := p.next()
	if err != nil {
		return nil, nil, err
	}
	if stop != nil && stop(l) {
		return nil, l, nil
	}

	switch v := l.(type) {
	case *lexeme.Prnt:
		instr, err := p.parsePrnt()
		return instr, nil, err
	case *lexeme.If:
		instr, err := p.parseIf()
		return instr, nil, err
	case *lexeme.Else:
		instr, err := p.parseElse()
		return instr, nil, err
	case *lexeme.For:
		instr, err := p.parseFor()
		return instr, nil, err
	case *lexeme.Procedure:
		instr, err := p.parseProcedure()
		return instr, nil, err
	case *lexeme.Def:
		instr, err := p.parseDef()
		return instr, nil, err
	case *lexeme.Exec:
		instr, err := p.parseExec()
		return instr, nil, err
	case *lexeme.Wait:
		instr, err := p.parseWait()
		return instr, nil, err
	case *lexeme.Include:
		instr, err := p.parseInclude()
		return instr, nil, err
	case *lexeme.End:
		return nil, nil, &langerr.BlockMismatch{Detail: "'end' without a matching if/for/procedure/def"}
	default:
		p.pushback(v)
		if instr, ok, err := p.tryParseExecAssign(); err != nil {
			return nil, nil, err
		} else if ok {
			return instr, nil, nil
		}
		lexs, err := p.parseExpression(nil)
		if err != nil {
			return nil, nil, err
		}
		if len(lexs) == 0 {
			return nil, nil, nil
		}
		built, err := build(lexs)
		if err != nil {
			return nil, nil, err
		}
		p.emit(built)
		return built, nil, nil
	}
}

func (p *Parser) parsePrnt() (ast.Instr, error) {
	lexs, err := p.parseExpression(nil)
	if err != nil {
		return nil, err
	}
	value, err := build(lexs)
	if err != nil {
		return nil, err
	}
	instr := &ast.PrntStmt{Value: value}
	p.emit(instr)
	return instr, nil
}

func (p *Parser) parseWait() (ast.Instr, error) {
	condLexs, err := p.parseExpression(func(l lexeme.Lexeme) bool { return l.Tag() == lexeme.TagParameter })
	if err != nil {
		return nil, err
	}
	cond, err := build(condLexs)
	if err != nil {
		return nil, err
	}
	_, untilLexs, err := p.clause()
	if err != nil {
		return nil, err
	}
	var until ast.Expr
	if len(untilLexs) > 0 {
		until, err = build(untilLexs)
		if err != nil {
			return nil, err
		}
	}
	instr := &ast.WaitStmt{Condition: cond, Until: until}
	p.emit(instr)
	return instr, nil
}

func (p *Parser) parseInclude() (ast.Instr, error) {
	lexs, err := p.parseExpression(nil)
	if err != nil {
		return nil, err
	}
	src, err := build(lexs)
	if err != nil {
		return nil, err
	}
	instr := &ast.IncludeStmt{Source: src}
	p.emit(instr)
	return instr, nil
}

func (p *Parser) parseIf() (ast.Instr, error) {
	ifIdx := len(p.program)
	ifStmt := &ast.IfStmt{}
	p.emit(ifStmt)

	condLexs, err := p.parseExpression(nil)
	if err != nil {
		return nil, err
	}
	cond, err := build(condLexs)
	if err != nil {
		return nil, err
	}
	ifStmt.Condition = cond

	p.openIfs = append(p.openIfs, ifStmt)
	elseIdx := -1
	for {
		instr, stop, err := p.parseOne(isEnd)
		if err != nil {
			if errors.Is(err, langerr.ErrEOF) {
				return nil, &langerr.UnexpectedEOF{Context: "if block"}
			}
			return nil, err
		}
		if stop != nil {
			break
		}
		if elseIdx == -1 {
			if _, ok := instr.(*ast.ElseStmt); ok {
				elseIdx = len(p.program) - 1
			}
		}
	}
	p.openIfs = p.openIfs[:len(p.openIfs)-1]

	endIdx := len(p.program)
	if elseIdx >= 0 {
		ifStmt.Length = elseIdx - ifIdx - 1
		ifStmt.Else.Length = endIdx - elseIdx - 1
	} else {
		ifStmt.Length = endIdx - ifIdx - 1
	}
	p.emit(&ast.EndStmt{})
	return ifStmt, nil
}

func (p *Parser) parseElse() (ast.Instr, error) {
	if len(p.openIfs) == 0 {
		return nil, &langerr.BlockMismatch{Detail: "'else' without a matching 'if'"}
	}
	ifStmt := p.openIfs[len(p.openIfs)-1]
	elseStmt := &ast.ElseStmt{}
	ifStmt.Else = elseStmt
	p.emit(elseStmt)
	return elseStmt, nil
}

func (p *Parser) parseFor() (ast.Instr, error) {
	forIdx := len(p.program)
	forStmt := &ast.ForStmt{Address: forIdx}
	p.emit(forStmt)

	initLexs, err := p.parseExpression(nil)
	if err != nil {
		return nil, err
	}
	condLexs, err := p.parseExpression(nil)
	if err != nil {
		return nil, err
	}
	incLexs, err := p.parseExpression(nil)
	if err != nil {
		return nil, err
	}
	if forStmt.Init, err = build(initLexs); err != nil {
		return nil, err
	}
	if forStmt.Condition, err = build(condLexs); err != nil {
		return nil, err
	}
	if forStmt.Increment, err = build(incLexs); err != nil {
		return nil, err
	}

	for {
		_, stop, err := p.parseOne(isEnd)
		if err != nil {
			if errors.Is(err, langerr.ErrEOF) {
				return nil, &langerr.UnexpectedEOF{Context: "for block"}
			}
			return nil, err
		}
		if stop != nil {
			break
		}
	}

	forStmt.Length = len(p.program) - forIdx - 1
	p.emit(&ast.EndStmt{})
	return forStmt, nil
}

func (p *Parser) parseIdentifier(context string) (*lexeme.Identifier, error) {
	l, err := p.next()
	if err != nil {
		return nil, err
	}
	id, ok := l.(*lexeme.Identifier)
	if !ok {
		return nil, fmt.Errorf("%s must have an identifier, got %q", context, l.Word())
	}
	return id, nil
}

func paramNames(expr ast.Expr) ([]string, error) {
	switch v := expr.(type) {
	case nil:
		return nil, nil
	case *ast.List:
		names := make([]string, 0, len(v.Items))
		for _, it := range v.Items {
			id, ok := it.(*lexeme.Identifier)
			if !ok {
				return nil, fmt.Errorf("parameter list must be plain identifiers")
			}
			names = append(names, id.Word())
		}
		return names, nil
	case *lexeme.Identifier:
		return []string{v.Word()}, nil
	default:
		return nil, fmt.Errorf("invalid parameter list")
	}
}

// parseSignature parses a parameter list. An empty "()" is not a legal
// expression on its own (the grammar has nothing to accept between an
// open and close paren), so — matching how a bare signature-less
// declaration is meant to behave — a grammar rejection here is treated
// as "no parameters" rather than a hard parse error; the rejected
// lexeme was already consumed off the stream either way.
func (p *Parser) parseSignature() ([]string, error) {
	lexs, err := p.parseExpression(nil)
	if err != nil {
		if _, ok := err.(*langerr.UnexpectedSymbol); ok {
			return nil, nil
		}
		return nil, err
	}
	if len(lexs) == 0 {
		return nil, nil
	}
	built, err := build(lexs)
	if err != nil {
		return nil, err
	}
	return paramNames(built)
}

func (p *Parser) parseProcedure() (ast.Instr, error) {
	procIdx := len(p.program)
	stmt := &ast.ProcedureStmt{Addr: procIdx}
	p.emit(stmt)

	id, err := p.parseIdentifier("procedure")
	if err != nil {
		return nil, err
	}
	stmt.Ident = id.Word()

	params, err := p.parseSignature()
	if err != nil {
		return nil, err
	}
	stmt.Params = params

	for {
		_, stop, err := p.parseOne(isEnd)
		if err != nil {
			if errors.Is(err, langerr.ErrEOF) {
				return nil, &langerr.UnexpectedEOF{Context: "procedure block"}
			}
			return nil, err
		}
		if stop != nil {
			break
		}
	}

	stmt.Length = len(p.program) - procIdx - 1
	p.emit(&ast.EndStmt{})
	return stmt, nil
}

func (p *Parser) parseDef() (ast.Instr, error) {
	defIdx := len(p.program)
	stmt := &ast.DefStmt{Addr: defIdx}
	p.emit(stmt)

	id, err := p.parseIdentifier("def")
	if err != nil {
		return nil, err
	}
	stmt.Ident = id.Word()

	params, err := p.parseSignature()
	if err != nil {
		return nil, err
	}
	stmt.Params = params

	bodyStart := len(p.program)
	for {
		_, stop, err := p.parseOne(isEnd)
		if err != nil {
			if errors.Is(err, langerr.ErrEOF) {
				return nil, &langerr.UnexpectedEOF{Context: "def block"}
			}
			return nil, err
		}
		if stop != nil {
			break
		}
	}
	stmt.Body = append([]ast.Instr{}, p.program[bodyStart:len(p.program)]...)
	p.emit(&ast.EndStmt{})
	return stmt, nil
}

// buildExecStmt reads an exec's identifier and optional argument list,
// assuming the leading 'exec' lexeme has already been consumed. It does
// not emit anything, so a caller that needs the ExecStmt nested inside a
// larger instruction (an exec-as-expression assignment) can build it
// without also leaving a stray duplicate entry in the program.
func (p *Parser) buildExecStmt() (*ast.ExecStmt, error) {
	id, err := p.parseIdentifier("exec")
	if err != nil {
		return nil, err
	}
	argLexs, err := p.parseExpression(nil)
	if err != nil {
		if _, ok := err.(*langerr.UnexpectedSymbol); !ok {
			return nil, err
		}
		argLexs = nil
	}
	var args ast.Expr
	if len(argLexs) > 0 {
		args, err = build(argLexs)
		if err != nil {
			return nil, err
		}
	}
	return &ast.ExecStmt{Ident: id.Word(), Args: args}, nil
}

func (p *Parser) parseExec() (ast.Instr, error) {
	instr, err := p.buildExecStmt()
	if err != nil {
		return nil, err
	}
	p.emit(instr)
	return instr, nil
}

// tryParseExecAssign looks ahead for the one shape the expression
// grammar can never accept on its own: "ident = exec ...", since exec is
// a statement keyword, not a term the expression automaton has an edge
// for. On a match it builds the exec call inline as the assignment's
// right-hand side and emits the combined instruction; on a mismatch
// every lexeme it peeked at is pushed back untouched.
func (p *Parser) tryParseExecAssign() (ast.Instr, bool, error) {
	first, err := p.next()
	if err != nil {
		return nil, false, err
	}
	id, ok := first.(*lexeme.Identifier)
	if !ok {
		p.pushback(first)
		return nil, false, nil
	}

	second, err := p.next()
	if err != nil {
		p.pushback(first)
		return nil, false, err
	}
	assign, ok := second.(*lexeme.Assign)
	if !ok {
		p.pushback(second)
		p.pushback(first)
		return nil, false, nil
	}

	third, err := p.next()
	if err != nil {
		p.pushback(second)
		p.pushback(first)
		return nil, false, err
	}
	if _, ok := third.(*lexeme.Exec); !ok {
		p.pushback(third)
		p.pushback(second)
		p.pushback(first)
		return nil, false, nil
	}

	call, err := p.buildExecStmt()
	if err != nil {
		return nil, false, err
	}
	combined := []ast.Expr{id, assign, call}
	p.emit(combined)
	return combined, true, nil
}
