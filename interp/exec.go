/*
File    : dungeontalk/interp/exec.go
Package : interp
*/
package interp

import (
	"fmt"

	"github.com/dungeontalk/dungeontalk/ast"
	"github.com/dungeontalk/dungeontalk/langerr"
)

// execTop evaluates one Program entry. Control nodes (If/Else/For/End)
// always run, even inside a disabled branch, since they are what keeps
// the block/control stacks balanced as execution passes over skipped
// regions; every other instruction is gated by the current read-enable
// state.
func (in *Interpreter) execTop(instr ast.Instr) (any, error) {
	switch v := instr.(type) {
	case *ast.IfStmt:
		return in.evalIf(v)
	case *ast.ElseStmt:
		return in.evalElse(v)
	case *ast.ForStmt:
		return in.evalFor(v)
	case *ast.EndStmt:
		return in.evalEnd(v)
	}

	if !in.readEnabled() {
		return nil, nil
	}

	switch v := instr.(type) {
	case *ast.ProcedureStmt:
		return in.evalProcedureDecl(v)
	case *ast.DefStmt:
		return in.evalDefDecl(v)
	case *ast.ExecStmt:
		return in.evalExec(v)
	case *ast.PrntStmt:
		return in.evalPrnt(v)
	case *ast.WaitStmt:
		return in.evalWait(v)
	case *ast.IncludeStmt:
		return in.evalInclude(v)
	default:
		return in.Eval(instr)
	}
}

func (in *Interpreter) evalIf(v *ast.IfStmt) (any, error) {
	cond, err := in.Eval(v.Condition)
	if err != nil {
		return nil, err
	}
	in.pushReadEnabled(truthy(cond))
	in.pushBlock(v)
	return nil, nil
}

// evalElse toggles the shared if/else control-stack entry rather than
// opening a second block: at parse time one `end` closes the whole
// if/[else]/end span, so there is exactly one frame to flip.
func (in *Interpreter) evalElse(v *ast.ElseStmt) (any, error) {
	if _, ok := in.currentBlock().(*ast.IfStmt); !ok {
		return nil, &langerr.BlockMismatch{Detail: "'else' reached without its 'if' on the block stack"}
	}
	in.toggleReadEnabled()
	return nil, nil
}

// evalFor runs once, when the header is first reached going forward:
// Init binds the loop variable and Condition gates the first iteration.
// A loop-back jumps straight to the first body instruction (see
// evalEnd), never back through the header, so Init is never repeated.
func (in *Interpreter) evalFor(v *ast.ForStmt) (any, error) {
	if _, err := in.Eval(v.Init); err != nil {
		return nil, err
	}
	cond, err := in.Eval(v.Condition)
	if err != nil {
		return nil, err
	}
	in.pushReadEnabled(truthy(cond))
	in.pushBlock(v)
	return nil, nil
}

func (in *Interpreter) evalEnd(_ *ast.EndStmt) (any, error) {
	if len(in.blocks) <= 1 {
		return nil, &langerr.BlockMismatch{Detail: "'end' with no open block"}
	}

	switch b := in.currentBlock().(type) {
	case *ast.IfStmt:
		in.popReadEnabled()
		in.popBlock()
		return nil, nil

	case *ast.ForStmt:
		if _, err := in.Eval(b.Increment); err != nil {
			return nil, err
		}
		cond, err := in.Eval(b.Condition)
		if err != nil {
			return nil, err
		}
		if truthy(cond) {
			in.PC = b.Address // drive's own pc++ lands on the first body instruction
		} else {
			in.popReadEnabled()
			in.popBlock()
		}
		return nil, nil

	case *ast.ProcedureStmt:
		in.endCall(true)
		return nil, nil

	case *ast.DefStmt:
		in.endCall(false)
		return nil, nil

	default:
		return nil, &langerr.BlockMismatch{Detail: fmt.Sprintf("unknown block type %T on top of block stack", b)}
	}
}

// evalProcedureDecl and evalDefDecl handle execution simply flowing over
// a header (as opposed to reaching it through exec): both bind the
// routine into scope and skip the flat instruction range it declares
// without ever fetching or evaluating its body.
func (in *Interpreter) evalProcedureDecl(v *ast.ProcedureStmt) (any, error) {
	in.scopes.Top().Bind(v.Ident, v)
	in.PC += v.Length + 1
	return nil, nil
}

func (in *Interpreter) evalDefDecl(v *ast.DefStmt) (any, error) {
	in.scopes.Top().Bind(v.Ident, v)
	in.PC += len(v.Body) + 1
	return nil, nil
}

func (in *Interpreter) evalExec(v *ast.ExecStmt) (any, error) {
	routineVal, ok := in.scopes.Top().Fetch(v.Ident)
	if !ok {
		return nil, &langerr.UnknownCallable{Name: v.Ident}
	}
	routine, ok := routineVal.(ast.Callable)
	if !ok {
		return nil, &langerr.UnknownCallable{Name: v.Ident}
	}

	var args []any
	if v.Args != nil {
		argsVal, err := in.Eval(v.Args)
		if err != nil {
			return nil, err
		}
		if a, ok := argsVal.([]any); ok {
			args = a
		} else {
			args = []any{argsVal}
		}
	}
	return in.Call(routine, args)
}

// Call invokes routine with already-evaluated args. A Procedure pushes a
// return frame and jumps, resuming the caller only once the matching End
// is reached by normal stepping; a Def runs its body synchronously in a
// nested drive and returns the last value it produced.
func (in *Interpreter) Call(routine ast.Callable, args []any) (any, error) {
	sig := routine.Signature()
	if len(sig) != len(args) {
		return nil, &langerr.ArityError{Callable: routine.Identifier(), Want: len(sig), Got: len(args)}
	}

	retAddr := in.PC
	in.pushReadEnabled(true)
	in.pushBlock(routine)
	in.scopes.Push(nil)
	for i, name := range sig {
		in.scopes.Top().Bind(name, args[i])
	}

	if !routine.Inline() {
		in.values = append(in.values, callFrame{retAddr: retAddr})
		in.PC = routine.Address()
		return nil, nil
	}

	// Def calls run synchronously: drive the body to completion right
	// now, then restore pc to the call site so the enclosing drive loop
	// (whichever one is stepping through this Call) resumes right after
	// it, the same way it would after any other instruction.
	targetDepth := len(in.blocks) - 1
	in.PC = routine.Address() + 1
	result, err := in.drive(targetDepth)
	in.PC = retAddr
	return result, err
}

// endCall closes the block/scope frame opened by Call. A Procedure also
// pops its value-stack return frame and jumps back to it; a Def never
// pushed one, so pc is left for Call to restore once its nested drive
// returns.
func (in *Interpreter) endCall(hasRetFrame bool) {
	in.popReadEnabled()
	in.popBlock()
	in.scopes.Pull()
	if !hasRetFrame {
		return
	}
	n := len(in.values)
	frame := in.values[n-1]
	in.values = in.values[:n-1]
	in.PC = frame.retAddr
}

func (in *Interpreter) evalPrnt(v *ast.PrntStmt) (any, error) {
	val, err := in.Eval(v.Value)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(in.Out, val)
	return val, nil
}

// evalWait is the stub spec.md calls for: both operands are evaluated
// (so a malformed expression there still surfaces as an error) and
// logged, with no suspension.
func (in *Interpreter) evalWait(v *ast.WaitStmt) (any, error) {
	cond, err := in.Eval(v.Condition)
	if err != nil {
		return nil, err
	}
	var until any
	if v.Until != nil {
		until, err = in.Eval(v.Until)
		if err != nil {
			return nil, err
		}
	}
	fmt.Fprintf(in.Out, "WAIT %v UNTIL %v\n", cond, until)
	return nil, nil
}

func (in *Interpreter) evalInclude(v *ast.IncludeStmt) (any, error) {
	return nil, langerr.ErrNotImplemented
}

// Snapshot is a point-in-time dump of everything the interpreter is
// tracking, for debugging. It carries data only; formatting it is left
// to a caller (spec.md's Non-goals exclude a pretty-printer).
type Snapshot struct {
	PC                 int
	BlockStack         []ast.Instr
	ControlStack       []bool
	ValueStack         []int // pending Procedure return addresses, innermost last
	Scope              map[string]any
	CurrentInstruction ast.Instr
	Last               any
}

// Snapshot captures the interpreter's current state.
func (in *Interpreter) Snapshot() Snapshot {
	var cur ast.Instr
	if in.PC < len(in.Program) {
		cur = in.Program[in.PC]
	}
	blocks := append([]ast.Instr{}, in.blocks...)
	control := append([]bool{}, in.control...)
	retAddrs := make([]int, len(in.values))
	for i, f := range in.values {
		retAddrs[i] = f.retAddr
	}
	return Snapshot{
		PC:                 in.PC,
		BlockStack:         blocks,
		ControlStack:       control,
		ValueStack:         retAddrs,
		Scope:              in.scopes.Top().Snapshot(),
		CurrentInstruction: cur,
		Last:               in.Last,
	}
}
