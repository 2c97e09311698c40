/*
File    : dungeontalk/ast/build.go
Package : ast
*/
package ast

import (
	"fmt"

	"github.com/dungeontalk/dungeontalk/lexeme"
)

// Build reshapes a flat, grammar-accepted lexeme sequence into a
// right-associative, no-precedence expression tree. There is no
// operator precedence by design: `1+2*3` parses as `1+(2*3)` only
// because that is the literal left-to-right nesting: `[1, +, [2, *,
// 3]]`. Parenthesize explicitly for anything else.
//
// Shapes Build produces:
//   - a bare leaf (*lexeme.Identifier, a lexeme.Constant) when the
//     sequence reduces to a single term
//   - []Expr{left, op, right} for a binary operator
//   - []Expr{op, operand} for a unary prefix operator
//   - []Expr{op, operand} for a unary postfix operator as well (operand
//     is whatever had been accumulated to its left)
//   - []Expr{param, Build(rest)} for a leading UNTIL/BY parameter
//   - *List for a comma-separated or bracketed sequence, each item
//     itself fully built by a recursive call
func Build(seq []Expr) (Expr, error) {
	if len(seq) == 1 {
		if inner, ok := seq[0].([]Expr); ok {
			seq = inner
		}
	}

	var n []Expr
	s := seq
	for len(s) > 0 {
		i := s[0]
		s = s[1:]

		if p, ok := i.(*lexeme.Parentheses); ok {
			if !p.Open {
				return nil, fmt.Errorf("unexpected ')' at %d:%d", p.Pos().Line, p.Pos().Column)
			}
			inner, rest, err := extractParens(s)
			if err != nil {
				return nil, err
			}
			s = rest
			if len(inner) > 0 {
				built, err := Build(inner)
				if err != nil {
					return nil, err
				}
				n = append(n, built)
			}
			continue
		}

		if _, ok := i.(*lexeme.Comma); ok {
			segment := append(append([]Expr{}, n...), append([]Expr{i}, s...)...)
			items, _, err := splitList(segment)
			if err != nil {
				return nil, err
			}
			return &List{Items: items}, nil
		}

		if br, ok := i.(*lexeme.Bracket); ok {
			if !br.Open {
				return nil, fmt.Errorf("unexpected ']' at %d:%d", br.Pos().Line, br.Pos().Column)
			}
			items, rest, err := splitList(s)
			if err != nil {
				return nil, err
			}
			n = append(n, &List{Items: items})
			s = rest
			continue
		}

		if lx, ok := i.(lexeme.Lexeme); ok {
			switch lx.Tag() {
			case lexeme.TagParameter:
				rest, err := Build(s)
				if err != nil {
					return nil, err
				}
				return []Expr{i, rest}, nil
			case lexeme.TagUnaryOp:
				rest, err := Build(s)
				if err != nil {
					return nil, err
				}
				return []Expr{i, rest}, nil
			case lexeme.TagUnaryPostOp:
				return []Expr{i, flatten(n)}, nil
			case lexeme.TagOp:
				rest, err := Build(s)
				if err != nil {
					return nil, err
				}
				return []Expr{flatten(n), i, rest}, nil
			}
		}

		n = append(n, i)
	}

	return flatten(n), nil
}

// flatten unwraps a single-element accumulator to its bare element, the
// same deferred normalization the interpreter applies when it meets a
// length-1 instruction list.
func flatten(n []Expr) Expr {
	if len(n) == 1 {
		return n[0]
	}
	return n
}

// extractParens scans forward from just after an opening '(' tracking
// nesting depth, returning the lexemes strictly between the matching
// pair and whatever follows it.
func extractParens(s []Expr) ([]Expr, []Expr, error) {
	depth := 1
	for idx, e := range s {
		p, ok := e.(*lexeme.Parentheses)
		if !ok {
			continue
		}
		if p.Open {
			depth++
			continue
		}
		depth--
		if depth == 0 {
			return s[:idx], s[idx+1:], nil
		}
	}
	return nil, nil, fmt.Errorf("unclosed '('")
}

// splitList segments a bracket's or comma list's body into top-level
// items, recursively building each one, and reports whatever trails a
// matching close bracket (nil if the list runs to the end of s instead,
// the bare `1, 2, 3` case with no enclosing brackets).
func splitList(s []Expr) (items []Expr, rest []Expr, err error) {
	var e []Expr
	flush := func() error {
		if len(e) == 0 {
			return nil
		}
		built, err := Build(e)
		if err != nil {
			return err
		}
		items = append(items, built)
		e = nil
		return nil
	}

	for len(s) > 0 {
		i := s[0]
		s = s[1:]

		if _, ok := i.(*lexeme.Comma); ok {
			if err := flush(); err != nil {
				return nil, nil, err
			}
			continue
		}

		if br, ok := i.(*lexeme.Bracket); ok {
			if br.Open {
				inner, after, err := splitList(s)
				if err != nil {
					return nil, nil, err
				}
				e = append(e, &List{Items: inner})
				s = after
				continue
			}
			if err := flush(); err != nil {
				return nil, nil, err
			}
			return items, s, nil
		}

		e = append(e, i)
	}

	if err := flush(); err != nil {
		return nil, nil, err
	}
	return items, nil, nil
}
