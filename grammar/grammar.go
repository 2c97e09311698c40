/*
File    : dungeontalk/grammar/grammar.go
Package : grammar
*/

// Package grammar implements the tag-driven acceptor that validates
// expression-lexeme sequences as the parser accumulates them. It is not
// precedence-aware — it only answers "is this sequence of lexeme tags a
// well-formed expression so far" — precedence-correct shaping of an
// accepted sequence into a tree happens later, in package ast's builder.
//
// Grounded on the original interpreter's Lang.Grammar/Clause/Expression
// classes, which walk a nested map keyed by regexes over a lexeme's
// rendered type string. Go has no convenient runtime regex-over-type
// trick, and doesn't need one: the lexeme tags this acceptor walks are
// already a closed, typed set, so the map-of-regexes becomes a small
// graph of nodes with tag-predicate edges.
package grammar

import "github.com/dungeontalk/dungeontalk/lexeme"

// Tagged is anything the acceptor can classify: every lexeme.Lexeme
// qualifies.
type Tagged interface {
	Tag() lexeme.Tag
}

type edge struct {
	match func(lexeme.Tag) bool
	next  *node
	name  string // for diagnostics ("hint")
}

type node struct {
	edges []edge
}

func (n *node) find(t lexeme.Tag) (*node, bool) {
	for _, e := range n.edges {
		if e.match(t) {
			return e.next, true
		}
	}
	return nil, false
}

func (n *node) hints() []string {
	h := make([]string, 0, len(n.edges))
	for _, e := range n.edges {
		h = append(h, e.name)
	}
	return h
}

func tag(want lexeme.Tag) func(lexeme.Tag) bool {
	return func(t lexeme.Tag) bool { return t == want }
}

func anyOf(tags ...lexeme.Tag) func(lexeme.Tag) bool {
	return func(t lexeme.Tag) bool {
		for _, w := range tags {
			if t == w {
				return true
			}
		}
		return false
	}
}

// exprRoot and constIdent are the two states of the expression automaton:
// exprRoot is "expecting the start of a term", constIdent is "just
// consumed a value-shaped term, expecting an operator or a close".
var exprRoot = &node{}
var constIdent = &node{}

func init() {
	exprRoot.edges = []edge{
		{anyOf(lexeme.TagUnaryOp), exprRoot, "<unary-op>"},
		{anyOf(lexeme.TagDelimOpen), exprRoot, "<delim>"},
		{anyOf(lexeme.TagBracketOpen), constIdent, "<bracket>"},
		{anyOf(lexeme.TagConst, lexeme.TagIdent), constIdent, "<const>|<ident>"},
	}
	constIdent.edges = []edge{
		{anyOf(lexeme.TagBracketOpen, lexeme.TagConst, lexeme.TagIdent), constIdent, "<bracket>|<const>|<ident>"},
		{tag(lexeme.TagOp), exprRoot, "<op>"},
		{anyOf(lexeme.TagUnaryPostOp), exprRoot, "<unary-post-op>"},
		{anyOf(lexeme.TagDelimClose, lexeme.TagBracketClose), constIdent, "</delim>|</bracket>"},
		{tag(lexeme.TagComma), exprRoot, "<comma>"},
	}
}

// Expression is an accumulating, incrementally-validated expression: a
// sequence of lexemes the acceptor has confirmed is still well-formed so
// far. Zero value is ready to use.
type Expression struct {
	lexemes []lexeme.Lexeme
	state   *node
	started bool
}

// Belongs reports whether appending l to the expression built so far
// would still be accepted, without mutating the expression.
func (e *Expression) Belongs(l Tagged) bool {
	state := e.state
	if !e.started {
		state = exprRoot
	}
	_, ok := state.find(l.Tag())
	return ok
}

// Push appends l if it belongs; it reports whether the push succeeded.
// A failed push leaves the expression unchanged.
func (e *Expression) Push(l lexeme.Lexeme) bool {
	state := e.state
	if !e.started {
		state = exprRoot
	}
	next, ok := state.find(l.Tag())
	if !ok {
		return false
	}
	e.lexemes = append(e.lexemes, l)
	e.state = next
	e.started = true
	return true
}

// Lexemes returns the accumulated sequence.
func (e *Expression) Lexemes() []lexeme.Lexeme { return e.lexemes }

// Len reports how many lexemes have been accepted so far.
func (e *Expression) Len() int { return len(e.lexemes) }

// Hint lists the tag descriptions legal from the expression's current
// state, for diagnostic messages on a rejected push.
func (e *Expression) Hint() []string {
	if !e.started {
		return exprRoot.hints()
	}
	return e.state.hints()
}

// IsLegal reports whether an entire candidate sequence of lexemes, taken
// from scratch, is accepted by the expression grammar end to end. It can
// validate a speculative "current expression plus one more lexeme"
// sequence in a single call; the parser itself validates through Push.
func IsLegal(seq []lexeme.Lexeme) bool {
	state := exprRoot
	for _, l := range seq {
		next, ok := state.find(l.Tag())
		if !ok {
			return false
		}
		state = next
	}
	return true
}

// Clause is a parameter-introduced expression: UNTIL/BY followed by a
// full expression. It mirrors Lang.Clause, which seeds the acceptor at
// "<parameter>" and then hands off to the expression automaton.
type Clause struct {
	param lexeme.Lexeme
	expr  Expression
}

// Push accepts the clause's leading parameter lexeme on the first call,
// then delegates to the inner Expression for everything after.
func (c *Clause) Push(l lexeme.Lexeme) bool {
	if c.param == nil {
		if l.Tag() != lexeme.TagParameter {
			return false
		}
		c.param = l
		return true
	}
	return c.expr.Push(l)
}

// Belongs mirrors Expression.Belongs, accounting for whether the clause
// has consumed its leading parameter yet.
func (c *Clause) Belongs(l Tagged) bool {
	if c.param == nil {
		return l.Tag() == lexeme.TagParameter
	}
	return c.expr.Belongs(l)
}

// Parameter returns the clause's leading UNTIL/BY lexeme, or nil if none
// has been pushed yet.
func (c *Clause) Parameter() lexeme.Lexeme { return c.param }

// Lexemes returns the clause's expression lexemes, excluding the leading
// parameter.
func (c *Clause) Lexemes() []lexeme.Lexeme { return c.expr.Lexemes() }

// Len reports the total number of lexemes pushed, parameter included.
func (c *Clause) Len() int {
	n := c.expr.Len()
	if c.param != nil {
		n++
	}
	return n
}
