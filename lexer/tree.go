/*
File    : dungeontalk/lexer/tree.go
Package : lexer
*/
package lexer

import (
	"regexp"
	"strings"

	"github.com/dungeontalk/dungeontalk/lexeme"
	"github.com/dungeontalk/dungeontalk/token"
)

// leaf builds a lexeme from the raw tokens a symbol-tree path consumed.
type leaf func(toks []token.Token) lexeme.Lexeme

// symEdge is one transition out of a symNode: either exact (compare the
// next raw token's word verbatim) or pattern (match it against a
// regexp), leading to either a terminal leaf or a deeper symNode.
type symEdge struct {
	exact   string
	pattern *regexp.Regexp
	leaf    leaf
	next    *symNode
}

func (e symEdge) matches(word string) bool {
	if e.pattern != nil {
		return e.pattern.MatchString(word)
	}
	return e.exact == word
}

// symNode is one state of the greedy symbol-classification tree. edges
// are tried in order, first match wins. fallback is the terminal to use
// when no edge matches but at least one token has already been
// consumed on this path (the original language's "None" key).
type symNode struct {
	edges    []symEdge
	fallback leaf
}

func joined(toks []token.Token) token.Token {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.Word)
	}
	return token.New(b.String(), toks[0].Line, toks[0].Column, toks[0].ByteOffset)
}

var (
	floatRe = regexp.MustCompile(`^[0-9]*\.[0-9]+$`)
	intRe   = regexp.MustCompile(`^[0-9]+$`)
	identRe = regexp.MustCompile(`^[_a-zA-Z][_a-zA-Z0-9]*$`)
)

func exact(word string, next *symNode, lf leaf) symEdge {
	return symEdge{exact: word, next: next, leaf: lf}
}

func pattern(re *regexp.Regexp, lf leaf) symEdge {
	return symEdge{pattern: re, leaf: lf}
}

func ciWord(word string) *regexp.Regexp {
	return regexp.MustCompile("(?i)^" + word + "$")
}

var slashNode = &symNode{
	edges: []symEdge{
		exact("*", nil, func(t []token.Token) lexeme.Lexeme { return lexeme.NewCommentBlock(joined(t), true) }),
		exact("/", nil, func(t []token.Token) lexeme.Lexeme { return lexeme.NewCommentLine(joined(t)) }),
	},
	fallback: func(t []token.Token) lexeme.Lexeme { return lexeme.NewDivide(joined(t)) },
}

var asteriskNode = &symNode{
	edges: []symEdge{
		exact("/", nil, func(t []token.Token) lexeme.Lexeme { return lexeme.NewCommentBlock(joined(t), false) }),
	},
	fallback: func(t []token.Token) lexeme.Lexeme { return lexeme.NewMultiply(joined(t)) },
}

var bangEqNode = &symNode{
	edges: []symEdge{
		exact("=", nil, func(t []token.Token) lexeme.Lexeme { return lexeme.NewUnequalStrict(joined(t)) }),
	},
	fallback: func(t []token.Token) lexeme.Lexeme { return lexeme.NewUnequal(joined(t)) },
}

var bangNode = &symNode{
	edges: []symEdge{
		{exact: "=", next: bangEqNode},
	},
	fallback: func(t []token.Token) lexeme.Lexeme { return lexeme.NewNot(joined(t)) },
}

var eqEqNode = &symNode{
	edges: []symEdge{
		exact("=", nil, func(t []token.Token) lexeme.Lexeme { return lexeme.NewEqualStrict(joined(t)) }),
	},
	fallback: func(t []token.Token) lexeme.Lexeme { return lexeme.NewEqual(joined(t)) },
}

var equalNode = &symNode{
	edges: []symEdge{
		{exact: "=", next: eqEqNode},
	},
	fallback: func(t []token.Token) lexeme.Lexeme { return lexeme.NewAssign(joined(t)) },
}

var plusNode = &symNode{
	edges: []symEdge{
		exact("+", nil, func(t []token.Token) lexeme.Lexeme { return lexeme.NewIncrement(joined(t)) }),
	},
	fallback: func(t []token.Token) lexeme.Lexeme { return lexeme.NewAdd(joined(t)) },
}

var dashNode = &symNode{
	edges: []symEdge{
		exact("-", nil, func(t []token.Token) lexeme.Lexeme { return lexeme.NewDecrement(joined(t)) }),
		pattern(floatRe, func(t []token.Token) lexeme.Lexeme { return lexeme.NewFloat(joined(t)) }),
		pattern(intRe, func(t []token.Token) lexeme.Lexeme { return lexeme.NewInteger(joined(t)) }),
	},
	fallback: func(t []token.Token) lexeme.Lexeme { return lexeme.NewSubtract(joined(t)) },
}

func identifierOrReserved(t []token.Token) lexeme.Lexeme {
	tok := joined(t)
	if l, ok := lexeme.Reserved(tok); ok {
		return l
	}
	return lexeme.NewIdentifier(tok)
}

// root is the entry state of the greedy classification tree. Order
// matters: logical-word patterns (OR/NOR/XOR/AND/NAND/NOT/TRUE/FALSE)
// are checked before the generic identifier pattern so they win ties.
var root = &symNode{
	edges: []symEdge{
		exact(" ", nil, func(t []token.Token) lexeme.Lexeme { return lexeme.NewSpace(joined(t)) }),
		exact("\n", nil, func(t []token.Token) lexeme.Lexeme { return lexeme.NewNewLine(joined(t)) }),
		exact(";", nil, func(t []token.Token) lexeme.Lexeme { return lexeme.NewNewLine(joined(t)) }),
		exact("\t", nil, func(t []token.Token) lexeme.Lexeme { return lexeme.NewTab(joined(t)) }),
		exact("[", nil, func(t []token.Token) lexeme.Lexeme { return lexeme.NewBracket(joined(t), true) }),
		exact("]", nil, func(t []token.Token) lexeme.Lexeme { return lexeme.NewBracket(joined(t), false) }),
		exact("\"", nil, func(t []token.Token) lexeme.Lexeme { return lexeme.NewDoubleQuote(joined(t)) }),
		exact("'", nil, func(t []token.Token) lexeme.Lexeme { return lexeme.NewSingleQuote(joined(t)) }),
		exact("(", nil, func(t []token.Token) lexeme.Lexeme { return lexeme.NewParentheses(joined(t), true) }),
		exact(")", nil, func(t []token.Token) lexeme.Lexeme { return lexeme.NewParentheses(joined(t), false) }),
		{exact: "/", next: slashNode},
		{exact: "*", next: asteriskNode},
		exact(",", nil, func(t []token.Token) lexeme.Lexeme { return lexeme.NewComma(joined(t)) }),
		{exact: "!", next: bangNode},
		{exact: "=", next: equalNode},
		{exact: "+", next: plusNode},
		pattern(floatRe, func(t []token.Token) lexeme.Lexeme { return lexeme.NewFloat(joined(t)) }),
		pattern(intRe, func(t []token.Token) lexeme.Lexeme { return lexeme.NewInteger(joined(t)) }),
		{exact: "-", next: dashNode},
		exact(">", nil, func(t []token.Token) lexeme.Lexeme { return lexeme.NewGreater(joined(t)) }),
		exact("<", nil, func(t []token.Token) lexeme.Lexeme { return lexeme.NewLesser(joined(t)) }),
		pattern(ciWord("OR"), func(t []token.Token) lexeme.Lexeme { return lexeme.NewOr(joined(t)) }),
		pattern(ciWord("NOR"), func(t []token.Token) lexeme.Lexeme { return lexeme.NewNor(joined(t)) }),
		pattern(ciWord("XOR"), func(t []token.Token) lexeme.Lexeme { return lexeme.NewXor(joined(t)) }),
		pattern(ciWord("AND"), func(t []token.Token) lexeme.Lexeme { return lexeme.NewAnd(joined(t)) }),
		pattern(ciWord("NAND"), func(t []token.Token) lexeme.Lexeme { return lexeme.NewNand(joined(t)) }),
		pattern(ciWord("NOT"), func(t []token.Token) lexeme.Lexeme { return lexeme.NewNot(joined(t)) }),
		pattern(ciWord("TRUE"), func(t []token.Token) lexeme.Lexeme { return lexeme.NewBool(joined(t)) }),
		pattern(ciWord("FALSE"), func(t []token.Token) lexeme.Lexeme { return lexeme.NewBool(joined(t)) }),
		pattern(identRe, identifierOrReserved),
	},
}
