/*
File    : dungeontalk/langerr/langerr.go
Package : langerr
*/

// Package langerr collects the error kinds the interpreter pipeline can
// raise, as distinct Go types rather than sentinel strings, so callers
// can errors.As their way to the specific failure and recover position
// information (line/column/byte offset) for diagnostics.
package langerr

import (
	"errors"
	"fmt"
)

// ErrEOF marks a clean end of input: the lexer or parser has nothing
// left to read. It is not a failure and callers should treat it the way
// they treat io.EOF from a Reader.
var ErrEOF = errors.New("dungeontalk: end of input")

// ErrNotImplemented is returned by operations spec.md explicitly scopes
// out of this implementation (currently: include).
var ErrNotImplemented = errors.New("dungeontalk: not implemented")

// LexError reports a byte sequence the lexer's symbol tree could not
// classify into any lexeme.
type LexError struct {
	Line, Column, ByteOffset int
	Fragment                 string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %d:%d (byte %d): cannot classify %q", e.Line, e.Column, e.ByteOffset, e.Fragment)
}

// UnexpectedSymbol reports a lexeme the grammar acceptor could not
// transition on given its current state.
type UnexpectedSymbol struct {
	Line, Column int
	Got          string
	Expected     string
}

func (e *UnexpectedSymbol) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("unexpected symbol %q at %d:%d, expected %s", e.Got, e.Line, e.Column, e.Expected)
	}
	return fmt.Sprintf("unexpected symbol %q at %d:%d", e.Got, e.Line, e.Column)
}

// UnexpectedEOF reports input ending inside an open construct: a block
// with no end, an unterminated string literal, or a function body that
// runs off the end of the program.
type UnexpectedEOF struct {
	Context string
}

func (e *UnexpectedEOF) Error() string {
	return fmt.Sprintf("unexpected end of input while parsing %s", e.Context)
}

// RuntimeTypeError reports an operator or built-in applied to operands
// of a shape it cannot handle (e.g. '++' or '=' applied to something
// that is not an identifier).
type RuntimeTypeError struct {
	Op      string
	Operand any
}

func (e *RuntimeTypeError) Error() string {
	return fmt.Sprintf("type error: %s cannot operate on %v (%T)", e.Op, e.Operand, e.Operand)
}

// ArityError reports a procedure/function call with the wrong number of
// arguments for its declared parameter list.
type ArityError struct {
	Callable string
	Want     int
	Got      int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s expects %d argument(s), got %d", e.Callable, e.Want, e.Got)
}

// UnknownCallable reports an exec/call naming something that is not
// bound to a procedure or function in the current scope.
type UnknownCallable struct {
	Name string
}

func (e *UnknownCallable) Error() string {
	return fmt.Sprintf("no procedure or function named %q", e.Name)
}

// BlockMismatch reports block structure that does not line up: an `end`
// or `else` in the source with no matching opener, or the interpreter's
// block stack holding a block that the statement being run cannot close.
type BlockMismatch struct {
	Detail string
}

func (e *BlockMismatch) Error() string {
	return fmt.Sprintf("block stack mismatch: %s", e.Detail)
}
