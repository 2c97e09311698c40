/*
File    : dungeontalk/lexeme/lexeme.go
Package : lexeme
*/

// Package lexeme defines the tagged lexeme taxonomy the lexer's greedy
// symbol tree classifies raw tokens into. Every lexeme carries its source
// word and position plus a Tag — a small, grammar-facing type tag used
// only by package grammar to validate expressions incrementally. Keyword
// and expression dispatch in the parser and interpreter switch on the
// concrete Go type instead (e.g. *lexeme.If, *lexeme.Assign), following
// the capability-interface approach spec.md's design notes call for
// rather than walking a class hierarchy.
package lexeme

import "github.com/dungeontalk/dungeontalk/token"

// Tag is the coarse type-tag string a lexeme exposes to the grammar.
// These mirror spec.md section 3's "type tag string" column exactly.
type Tag string

const (
	TagSpace        Tag = "<space>"
	TagTab          Tag = "<tab>"
	TagNewline      Tag = "<newline>"
	TagDelimOpen    Tag = "<delim>"
	TagDelimClose   Tag = "</delim>"
	TagBracketOpen  Tag = "<bracket>"
	TagBracketClose Tag = "</bracket>"
	TagComma        Tag = "<comma>"
	TagConst        Tag = "<const>"
	TagIdent        Tag = "<ident>"
	TagOp           Tag = "<op>"
	TagUnaryOp      Tag = "<unary-op>"
	TagUnaryPostOp  Tag = "<unary-post-op>"
	TagKeyword      Tag = "<keyword>"
	TagParameter    Tag = "<parameter>"
	TagPreproc      Tag = "<preproc>"
)

// Lexeme is the interface every typed word in the language implements.
// It is deliberately small: position and a grammar tag are the only
// things every variant must supply, since behavior lives on the
// concrete types (constructor functions in this package, Eval methods on
// operators and constants, and type switches in parser/interp).
type Lexeme interface {
	Word() string
	Pos() token.Token
	Tag() Tag
}

// base is embedded by every concrete lexeme type. It stores the
// originating token and implements Word/Pos once for all of them.
type base struct {
	tok token.Token
}

func newBase(t token.Token) base { return base{tok: t} }

func (b base) Word() string     { return b.tok.Word }
func (b base) Pos() token.Token { return b.tok }
