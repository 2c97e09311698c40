/*
File    : dungeontalk/ast/ast.go
Package : ast
*/

// Package ast holds the tree shapes Build produces and interp.Eval
// consumes. Nodes are deliberately untyped at the top:
// Expr is the same dynamic-list shape the original language uses for
// every expression ([left, op, right], [unaryOp, operand], a bare
// constant, ...), so the interpreter type-switches on element 0 the
// same way the source language dispatches on isinstance checks.
// Statements that need to carry real state (conditions, block spans,
// call signatures) are small concrete structs instead, each stored
// directly as its own instruction.
package ast

// Expr is one node of an expression tree: either a leaf (a
// *lexeme.Identifier, a lexeme.Constant, a *List, a pointer to one of
// the statement node types below) or a []Expr shaped by Build as
// [left, op, right], or [op, operand] for both prefix and postfix
// unary operators.
type Expr = any

// Instr is one entry in the interpreter's flat, append-only program
// list. Body statements of if/for/procedure/def blocks are NOT nested
// inside their header's Instr — they are separate, later entries in the
// same flat list, and block structure is reconstructed purely from the
// runtime block/control stacks as execution passes through them.
type Instr = any

// List is a comma- or bracket-delimited sequence, the only compound
// value type the language has.
type List struct {
	Items []Expr
}

// Control marks the four node kinds whose Eval must run even while the
// interpreter is inside a disabled (not-taken) branch: they are the
// ones responsible for keeping the block/control stacks balanced as
// execution passes over skipped regions.
type Control interface {
	IsControl()
}

// Blocker is a node that opens a run of following instructions as its
// body. Length is the number of flat instructions that body spans,
// computed by the parser once the matching End is reached.
type Blocker interface {
	BlockLen() int
	SetBlockLen(n int)
}

// Callable is a procedure or function header: something exec can look
// up by name and invoke.
type Callable interface {
	Identifier() string
	Signature() []string
	Address() int
	SetAddress(n int)
	// Inline reports whether the call evaluates its body in place and
	// returns the last expression's value (Def), versus jumping to its
	// address and returning via a stacked return frame (Procedure).
	Inline() bool
}

// IfStmt is the header of an if/[else]/end block. Else, once parsed, is
// linked in directly so the parser can record the else branch's length
// on it; evaluation does not follow this link.
type IfStmt struct {
	Condition Expr
	Length    int
	Else      *ElseStmt
}

func (*IfStmt) IsControl()          {}
func (s *IfStmt) BlockLen() int     { return s.Length }
func (s *IfStmt) SetBlockLen(n int) { s.Length = n }

// ElseStmt does not open a second block: `end` closes exactly one block
// per if/end pair, so Else never pushes its own frame. Its Length is the
// number of flat instructions in the else branch alone.
type ElseStmt struct {
	Length int
}

func (*ElseStmt) IsControl()          {}
func (s *ElseStmt) BlockLen() int     { return s.Length }
func (s *ElseStmt) SetBlockLen(n int) { s.Length = n }

// ForStmt is the header of a for/end loop. Address is the flat
// instruction index of the ForStmt itself, set by the parser so `end`
// can jump back to it.
type ForStmt struct {
	Init, Condition, Increment Expr
	Address                    int
	Length                     int
}

func (*ForStmt) IsControl()          {}
func (s *ForStmt) BlockLen() int     { return s.Length }
func (s *ForStmt) SetBlockLen(n int) { s.Length = n }

// EndStmt closes whatever block is on top of the runtime block stack;
// which cleanup it performs depends on that block's concrete type.
type EndStmt struct{}

func (*EndStmt) IsControl() {}

// ProcedureStmt declares a jump-and-return callable: calling it pushes a
// return frame and moves the instruction pointer to Address, resuming
// the caller only once the procedure's own End is reached.
type ProcedureStmt struct {
	Ident  string
	Params []string
	Addr   int
	Length int
}

func (s *ProcedureStmt) Identifier() string  { return s.Ident }
func (s *ProcedureStmt) Signature() []string { return s.Params }
func (s *ProcedureStmt) Address() int        { return s.Addr }
func (s *ProcedureStmt) SetAddress(n int)    { s.Addr = n }
func (s *ProcedureStmt) Inline() bool        { return false }
func (s *ProcedureStmt) BlockLen() int       { return s.Length }
func (s *ProcedureStmt) SetBlockLen(n int)   { s.Length = n }

// DefStmt declares an inline-call callable: calling it runs its body in
// a fresh scope and returns the value of its last expression. The body's
// statements are not kept apart from the flat program: they stay there
// right after the header, and Body holds a copy of them whose length is
// the span a declaration skips. A call steps the instruction pointer
// through that span and then restores it to the call site.
type DefStmt struct {
	Ident  string
	Params []string
	Addr   int
	Body   []Instr
}

func (s *DefStmt) Identifier() string  { return s.Ident }
func (s *DefStmt) Signature() []string { return s.Params }
func (s *DefStmt) Address() int        { return s.Addr }
func (s *DefStmt) SetAddress(n int)    { s.Addr = n }
func (s *DefStmt) Inline() bool        { return true }
func (s *DefStmt) BlockLen() int       { return len(s.Body) }
func (s *DefStmt) SetBlockLen(int)     {}

// ExecStmt invokes a previously declared procedure or function by name.
type ExecStmt struct {
	Ident string
	Args  Expr
}

// PrntStmt evaluates Value and writes it to the interpreter's output.
type PrntStmt struct {
	Value Expr
}

// WaitStmt is a no-op stub: it evaluates and logs both operands (spec's
// WAIT is scenario flavor text, not a real suspend).
type WaitStmt struct {
	Condition, Until Expr
}

// IncludeStmt names a module import. Not implemented: evaluating one
// always returns langerr.ErrNotImplemented.
type IncludeStmt struct {
	Source Expr
}
