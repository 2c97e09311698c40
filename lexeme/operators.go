/*
File    : dungeontalk/lexeme/operators.go
Package : lexeme
*/
package lexeme

import (
	"fmt"

	"github.com/dungeontalk/dungeontalk/token"
)

// ScopeBinder is the minimal surface an operator needs from the
// interpreter's current scope: bind a name, or fetch its value. It is
// satisfied structurally by *scope.Scope without this package needing to
// import package scope (which would otherwise be pointless coupling for
// two methods).
type ScopeBinder interface {
	Bind(name string, v any)
	Fetch(name string) (any, bool)
}

type opBase struct{ base }

func (opBase) Tag() Tag { return TagOp }

// BinaryOp is any two-operand operator: arithmetic, comparison, or
// logical. Eval receives already-dereferenced operand values.
type BinaryOp interface {
	Lexeme
	Eval(left, right any) (any, error)
}

// Assign is '='. Unlike the other binary operators it needs write access
// to scope and its left operand stays an identifier rather than a value.
type Assign struct{ opBase }

func NewAssign(t token.Token) *Assign { return &Assign{opBase{newBase(t)}} }

func (*Assign) Eval(left *Identifier, right any, s ScopeBinder) (any, error) {
	s.Bind(left.Word(), right)
	return left, nil
}

type Equal struct{ opBase }

func NewEqual(t token.Token) *Equal { return &Equal{opBase{newBase(t)}} }
func (*Equal) Eval(l, r any) (any, error) {
	return valuesEqual(l, r), nil
}

type Unequal struct{ opBase }

func NewUnequal(t token.Token) *Unequal { return &Unequal{opBase{newBase(t)}} }
func (*Unequal) Eval(l, r any) (any, error) {
	return !valuesEqual(l, r), nil
}

// EqualStrict and UnequalStrict additionally require identical dynamic
// types (so `1 === 1.0` is false where `1 == 1.0` is true).
type EqualStrict struct{ opBase }

func NewEqualStrict(t token.Token) *EqualStrict { return &EqualStrict{opBase{newBase(t)}} }
func (*EqualStrict) Eval(l, r any) (any, error) {
	return fmt.Sprintf("%T", l) == fmt.Sprintf("%T", r) && valuesEqual(l, r), nil
}

type UnequalStrict struct{ opBase }

func NewUnequalStrict(t token.Token) *UnequalStrict { return &UnequalStrict{opBase{newBase(t)}} }
func (*UnequalStrict) Eval(l, r any) (any, error) {
	eq := fmt.Sprintf("%T", l) == fmt.Sprintf("%T", r) && valuesEqual(l, r)
	return !eq, nil
}

type Greater struct{ opBase }

func NewGreater(t token.Token) *Greater { return &Greater{opBase{newBase(t)}} }
func (*Greater) Eval(l, r any) (any, error) {
	lf, rf, ok := bothFloat(l, r)
	if !ok {
		return nil, fmt.Errorf("'>' needs numeric operands, got %T and %T", l, r)
	}
	return lf > rf, nil
}

type Lesser struct{ opBase }

func NewLesser(t token.Token) *Lesser { return &Lesser{opBase{newBase(t)}} }
func (*Lesser) Eval(l, r any) (any, error) {
	lf, rf, ok := bothFloat(l, r)
	if !ok {
		return nil, fmt.Errorf("'<' needs numeric operands, got %T and %T", l, r)
	}
	return lf < rf, nil
}

type Add struct{ opBase }

func NewAdd(t token.Token) *Add { return &Add{opBase{newBase(t)}} }
func (*Add) Eval(l, r any) (any, error) {
	if ls, ok := l.(string); ok {
		rs, ok := r.(string)
		if !ok {
			return nil, fmt.Errorf("'+' cannot concatenate string with %T", r)
		}
		return ls + rs, nil
	}
	return arith(l, r, func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b })
}

type Subtract struct{ opBase }

func NewSubtract(t token.Token) *Subtract { return &Subtract{opBase{newBase(t)}} }
func (*Subtract) Eval(l, r any) (any, error) {
	return arith(l, r, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
}

type Multiply struct{ opBase }

func NewMultiply(t token.Token) *Multiply { return &Multiply{opBase{newBase(t)}} }
func (*Multiply) Eval(l, r any) (any, error) {
	return arith(l, r, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })
}

type Divide struct{ opBase }

func NewDivide(t token.Token) *Divide { return &Divide{opBase{newBase(t)}} }
func (*Divide) Eval(l, r any) (any, error) {
	lf, rf, ok := bothFloat(l, r)
	if !ok {
		return nil, fmt.Errorf("'/' needs numeric operands, got %T and %T", l, r)
	}
	return lf / rf, nil
}

type And struct{ opBase }

func NewAnd(t token.Token) *And { return &And{opBase{newBase(t)}} }
func (*And) Eval(l, r any) (any, error) { return truthy(l) && truthy(r), nil }

type Or struct{ opBase }

func NewOr(t token.Token) *Or { return &Or{opBase{newBase(t)}} }
func (*Or) Eval(l, r any) (any, error) { return truthy(l) || truthy(r), nil }

type Nor struct{ opBase }

func NewNor(t token.Token) *Nor { return &Nor{opBase{newBase(t)}} }
func (*Nor) Eval(l, r any) (any, error) { return !(truthy(l) || truthy(r)), nil }

type Xor struct{ opBase }

func NewXor(t token.Token) *Xor { return &Xor{opBase{newBase(t)}} }
func (*Xor) Eval(l, r any) (any, error) { return truthy(l) != truthy(r), nil }

type Nand struct{ opBase }

func NewNand(t token.Token) *Nand { return &Nand{opBase{newBase(t)}} }
func (*Nand) Eval(l, r any) (any, error) { return !(truthy(l) && truthy(r)), nil }

// unaryOpBase tags a prefix unary operator: '!'/NOT.
type unaryOpBase struct{ base }

func (unaryOpBase) Tag() Tag { return TagUnaryOp }

// Not is the logical negation prefix operator.
type Not struct{ unaryOpBase }

func NewNot(t token.Token) *Not { return &Not{unaryOpBase{newBase(t)}} }
func (*Not) Eval(v any) (any, error) { return !truthy(v), nil }

// unaryPostOpBase tags a postfix unary operator: '++'/'--'.
type unaryPostOpBase struct{ base }

func (unaryPostOpBase) Tag() Tag { return TagUnaryPostOp }

// Increment is the postfix '++' operator: it mutates its operand
// identifier in place and yields the new value.
type Increment struct{ unaryPostOpBase }

func NewIncrement(t token.Token) *Increment { return &Increment{unaryPostOpBase{newBase(t)}} }

func (*Increment) Eval(operand *Identifier, s ScopeBinder) (any, error) {
	v, ok := s.Fetch(operand.Word())
	if !ok {
		return nil, fmt.Errorf("identifier %q not bound", operand.Word())
	}
	nv, err := arith(v, int64(1), func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b })
	if err != nil {
		return nil, err
	}
	s.Bind(operand.Word(), nv)
	return nv, nil
}

// Decrement is the postfix '--' operator, symmetric with Increment.
type Decrement struct{ unaryPostOpBase }

func NewDecrement(t token.Token) *Decrement { return &Decrement{unaryPostOpBase{newBase(t)}} }

func (*Decrement) Eval(operand *Identifier, s ScopeBinder) (any, error) {
	v, ok := s.Fetch(operand.Word())
	if !ok {
		return nil, fmt.Errorf("identifier %q not bound", operand.Word())
	}
	nv, err := arith(v, int64(1), func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
	if err != nil {
		return nil, err
	}
	s.Bind(operand.Word(), nv)
	return nv, nil
}

// --- shared value helpers ---

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

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

func bothFloat(l, r any) (float64, float64, bool) {
	lf, ok1 := asFloat(l)
	rf, ok2 := asFloat(r)
	return lf, rf, ok1 && ok2
}

func valuesEqual(l, r any) bool {
	if lf, rf, ok := bothFloat(l, r); ok {
		return lf == rf
	}
	return l == r
}

// arith applies intOp when both operands are integers, floatOp otherwise
// (after widening whichever side is an int64), matching the host numeric
// promotion rules spec.md leaves to "the host numeric types".
func arith(l, r any, intOp func(a, b int64) int64, floatOp func(a, b float64) float64) (any, error) {
	li, lIsInt := l.(int64)
	ri, rIsInt := r.(int64)
	if lIsInt && rIsInt {
		return intOp(li, ri), nil
	}
	lf, rf, ok := bothFloat(l, r)
	if !ok {
		return nil, fmt.Errorf("arithmetic needs numeric operands, got %T and %T", l, r)
	}
	return floatOp(lf, rf), nil
}
