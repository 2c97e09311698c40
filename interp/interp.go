/*
File    : dungeontalk/interp/interp.go
Package : interp
*/

// Package interp walks the flat instruction list package parser
// produces. It owns every piece of mutable execution state: the scope
// stack, the block stack (bottom sentinel <MAIN>), the control
// (read-enable) stack running parallel to it, the value stack of call
// return frames, and the program counter. Nothing here is safe for
// concurrent use by more than one goroutine, matching the single
// evaluation thread spec.md describes.
package interp

import (
	"fmt"
	"io"
	"os"

	"github.com/dungeontalk/dungeontalk/ast"
	"github.com/dungeontalk/dungeontalk/langerr"
	"github.com/dungeontalk/dungeontalk/lexeme"
	"github.com/dungeontalk/dungeontalk/parser"
	"github.com/dungeontalk/dungeontalk/scope"
)

// mainSentinel occupies block_stack[0] for the life of the Interpreter;
// it is never popped and never matched by any End.
type mainSentinel struct{}

// callFrame is a value_stack entry: the instruction index a Procedure
// call resumes at once its matching End is reached. Def calls never push
// one of these (they return synchronously and Call restores pc itself).
type callFrame struct {
	retAddr int
}

// Interpreter executes one AST node at a time over its Program, which
// only ever grows (by Feed) and is never rewritten.
type Interpreter struct {
	Program []ast.Instr
	PC      int

	scopes  *scope.Stack
	blocks  []ast.Instr // block_stack; blocks[0] is always mainSentinel{}
	control []bool      // control_stack, same length as blocks at every statement boundary
	values  []callFrame // value_stack

	Last any
	Out  io.Writer
}

// New builds an Interpreter over source text, parsing it completely
// before returning.
func New(source string) (*Interpreter, error) {
	p := parser.New(source)
	return fromParser(p)
}

// ReadFile builds an Interpreter over a file's contents.
func ReadFile(path string) (*Interpreter, error) {
	p, err := parser.NewFile(path)
	if err != nil {
		return nil, err
	}
	return fromParser(p)
}

func fromParser(p *parser.Parser) (*Interpreter, error) {
	program, err := p.ParseProgram()
	if err != nil {
		return nil, err
	}
	return &Interpreter{
		Program: program,
		scopes:  scope.NewStack(),
		blocks:  []ast.Instr{mainSentinel{}},
		control: []bool{true},
		Out:     os.Stdout,
	}, nil
}

// Get fetches a bound variable from the current (global, once Run has
// returned) scope frame, for callers inspecting final state.
func (in *Interpreter) Get(name string) (any, bool) {
	return in.scopes.Top().Fetch(name)
}

// Feed parses source as a standalone unit and appends the instructions
// it produces onto the end of the existing Program, then drives
// execution forward from wherever PC last stopped. This is how a REPL
// grows a single long-lived Interpreter one line at a time: PC always
// sits at the old end of Program between calls, so driving picks up
// exactly the newly appended instructions and stops again once they run
// out, leaving every scope/block/control frame open across calls the
// same way spec.md's `_load` accumulates into one running `instr` list.
func (in *Interpreter) Feed(source string) (any, error) {
	p := parser.New(source)
	instrs, err := p.ParseProgram()
	if err != nil {
		return nil, err
	}
	in.Program = append(in.Program, instrs...)
	result, err := in.drive(-1)
	if err != nil {
		in.PC = len(in.Program)
	}
	return result, err
}

// Run drives the program to completion from wherever PC currently sits,
// returning the last value produced by a non-End instruction.
func (in *Interpreter) Run() (any, error) {
	return in.drive(-1)
}

// ExecNext evaluates the single instruction at PC, stores its result in
// Last, advances PC, and returns the result. Stepping past the end of
// Program returns langerr.ErrEOF.
func (in *Interpreter) ExecNext() (any, error) {
	if in.PC >= len(in.Program) {
		return nil, langerr.ErrEOF
	}
	v, err := in.execTop(in.Program[in.PC])
	if err != nil {
		return nil, err
	}
	in.Last = v
	in.PC++
	return v, nil
}

// drive steps the program forward, fetching Program[PC] and evaluating
// it, until either the program runs out (minDepth < 0) or the block
// stack unwinds back to minDepth (a Def call returning synchronously to
// its caller). A minDepth >= 0 that is never reached because the
// program runs out first is an unterminated call body.
func (in *Interpreter) drive(minDepth int) (any, error) {
	var result any
	for minDepth < 0 || len(in.blocks) > minDepth {
		if in.PC >= len(in.Program) {
			if minDepth < 0 {
				return result, nil
			}
			return nil, &langerr.UnexpectedEOF{Context: "function body"}
		}
		instr := in.Program[in.PC]
		v, err := in.execTop(instr)
		if err != nil {
			return nil, err
		}
		if _, end := instr.(*ast.EndStmt); !end {
			result = v
		}
		in.Last = result
		in.PC++
	}
	return result, nil
}

// Eval resolves an ast.Expr to a Go-native value: nil, bool, int64,
// float64, string, []any (a resolved List), *lexeme.Identifier's bound
// value, or an ast.Callable fetched by name.
func (in *Interpreter) Eval(e ast.Expr) (any, error) {
	switch v := e.(type) {
	case nil:
		return nil, nil
	case *ast.List:
		items := make([]any, len(v.Items))
		for idx, it := range v.Items {
			val, err := in.Eval(it)
			if err != nil {
				return nil, err
			}
			items[idx] = val
		}
		return items, nil
	case []ast.Expr:
		return in.evalShape(v)
	case *ast.ExecStmt:
		// Reached only as the right-hand side of an "ident = exec ..."
		// assignment (see tryParseExecAssign): exec is a statement
		// keyword the expression grammar has no edge for, so that one
		// shape is parsed and evaluated as a nested call expression
		// rather than through the ordinary binary-operator path.
		return in.evalExec(v)
	case *lexeme.Identifier:
		val, _ := in.scopes.Top().Fetch(v.Word())
		return val, nil
	case lexeme.Constant:
		return v.Eval()
	default:
		return v, nil
	}
}

func (in *Interpreter) evalShape(v []ast.Expr) (any, error) {
	switch len(v) {
	case 0:
		return nil, nil
	case 1:
		return in.Eval(v[0])
	case 2:
		return in.evalUnary(v[0], v[1])
	case 3:
		return in.evalBinary(v[0], v[1], v[2])
	default:
		return nil, fmt.Errorf("malformed expression node of length %d", len(v))
	}
}

func (in *Interpreter) evalUnary(opExpr, operand ast.Expr) (any, error) {
	switch o := opExpr.(type) {
	case *lexeme.Not:
		v, err := in.Eval(operand)
		if err != nil {
			return nil, err
		}
		return o.Eval(v)
	case *lexeme.Increment:
		id, ok := operand.(*lexeme.Identifier)
		if !ok {
			return nil, &langerr.RuntimeTypeError{Op: "++", Operand: operand}
		}
		return o.Eval(id, in.scopes.Top())
	case *lexeme.Decrement:
		id, ok := operand.(*lexeme.Identifier)
		if !ok {
			return nil, &langerr.RuntimeTypeError{Op: "--", Operand: operand}
		}
		return o.Eval(id, in.scopes.Top())
	default:
		return nil, fmt.Errorf("unknown unary operator %T", opExpr)
	}
}

func (in *Interpreter) evalBinary(leftExpr, opExpr, rightExpr ast.Expr) (any, error) {
	if assign, ok := opExpr.(*lexeme.Assign); ok {
		id, ok := leftExpr.(*lexeme.Identifier)
		if !ok {
			return nil, &langerr.RuntimeTypeError{Op: "=", Operand: leftExpr}
		}
		rv, err := in.Eval(rightExpr)
		if err != nil {
			return nil, err
		}
		return assign.Eval(id, rv, in.scopes.Top())
	}

	binOp, ok := opExpr.(lexeme.BinaryOp)
	if !ok {
		return nil, fmt.Errorf("unknown binary operator %T", opExpr)
	}
	lv, err := in.Eval(leftExpr)
	if err != nil {
		return nil, err
	}
	rv, err := in.Eval(rightExpr)
	if err != nil {
		return nil, err
	}
	return binOp.Eval(lv, rv)
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case int64:
		return x != 0
	case float64:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}

// --- stack discipline ---

func (in *Interpreter) readEnabled() bool {
	return in.control[len(in.control)-1]
}

// pushReadEnabled pushes b AND the parent frame's own enabledness, so a
// disabled ancestor always wins over a locally-true condition.
func (in *Interpreter) pushReadEnabled(b bool) {
	in.control = append(in.control, b && in.readEnabled())
}

func (in *Interpreter) popReadEnabled() {
	in.control = in.control[:len(in.control)-1]
}

// toggleReadEnabled flips the top of the control stack, honoring parent
// disablement the same way pushReadEnabled does.
func (in *Interpreter) toggleReadEnabled() {
	n := len(in.control)
	if n < 2 || !in.control[n-2] {
		in.control[n-1] = false
		return
	}
	in.control[n-1] = !in.control[n-1]
}

func (in *Interpreter) pushBlock(b ast.Instr) {
	in.blocks = append(in.blocks, b)
}

func (in *Interpreter) currentBlock() ast.Instr {
	return in.blocks[len(in.blocks)-1]
}

func (in *Interpreter) popBlock() ast.Instr {
	n := len(in.blocks)
	top := in.blocks[n-1]
	in.blocks = in.blocks[:n-1]
	return top
}
