/*
File    : dungeontalk/lexeme/data.go
Package : lexeme
*/
package lexeme

import (
	"strconv"
	"strings"

	"github.com/dungeontalk/dungeontalk/token"
)

// Identifier names a variable, procedure, or function.
type Identifier struct{ base }

func NewIdentifier(t token.Token) *Identifier { return &Identifier{newBase(t)} }
func (*Identifier) Tag() Tag                  { return TagIdent }

// Constant is any lexeme that folds directly to a Go-native value
// without consulting scope: integers, floats, strings, and booleans.
type Constant interface {
	Lexeme
	Eval() (any, error)
}

// Integer is a base-10 integer literal, `[0-9]+` (optionally carrying a
// leading '-' attached at lex time when not preceded by an operand).
type Integer struct{ base }

func NewInteger(t token.Token) *Integer { return &Integer{newBase(t)} }
func (*Integer) Tag() Tag               { return TagConst }
func (i *Integer) Eval() (any, error) {
	v, err := strconv.ParseInt(i.Word(), 10, 64)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Float is a decimal literal, `[0-9]*\.[0-9]+`.
type Float struct{ base }

func NewFloat(t token.Token) *Float { return &Float{newBase(t)} }
func (*Float) Tag() Tag             { return TagConst }
func (f *Float) Eval() (any, error) {
	v, err := strconv.ParseFloat(f.Word(), 64)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// String is the raw content collected between a matching pair of single
// or double quotes; no escape processing is performed, per spec.md.
type String struct{ base }

func NewString(t token.Token) *String { return &String{newBase(t)} }
func (*String) Tag() Tag              { return TagConst }
func (s *String) Eval() (any, error)  { return s.Word(), nil }

// Bool is TRUE/FALSE, matched case-insensitively.
type Bool struct{ base }

func NewBool(t token.Token) *Bool { return &Bool{newBase(t)} }
func (*Bool) Tag() Tag            { return TagConst }
func (b *Bool) Eval() (any, error) {
	return strings.EqualFold(b.Word(), "true"), nil
}
