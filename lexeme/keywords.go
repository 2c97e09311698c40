/*
File    : dungeontalk/lexeme/keywords.go
Package : lexeme
*/
package lexeme

import "github.com/dungeontalk/dungeontalk/token"

// keywordBase tags every reserved-word lexeme. The concrete reserved
// words below are deliberately thin — they only mark "this token is the
// keyword `if`/`for`/etc" at lex time. All of the state a keyword needs
// once it is actually parsed (condition, body length, signature,
// address...) lives on the corresponding node in package ast, built by
// the parser. This mirrors the capability-interface design note in
// spec.md: the lexeme layer classifies, the ast layer carries behavior.
type keywordBase struct{ base }

func (keywordBase) Tag() Tag { return TagKeyword }

type Prnt struct{ keywordBase }

func NewPrnt(t token.Token) *Prnt { return &Prnt{keywordBase{newBase(t)}} }

type If struct{ keywordBase }

func NewIf(t token.Token) *If { return &If{keywordBase{newBase(t)}} }

type Else struct{ keywordBase }

func NewElse(t token.Token) *Else { return &Else{keywordBase{newBase(t)}} }

type End struct{ keywordBase }

func NewEnd(t token.Token) *End { return &End{keywordBase{newBase(t)}} }

type For struct{ keywordBase }

func NewFor(t token.Token) *For { return &For{keywordBase{newBase(t)}} }

type Procedure struct{ keywordBase }

func NewProcedure(t token.Token) *Procedure { return &Procedure{keywordBase{newBase(t)}} }

type Def struct{ keywordBase }

func NewDef(t token.Token) *Def { return &Def{keywordBase{newBase(t)}} }

type Exec struct{ keywordBase }

func NewExec(t token.Token) *Exec { return &Exec{keywordBase{newBase(t)}} }

type Include struct{ keywordBase }

func NewInclude(t token.Token) *Include { return &Include{keywordBase{newBase(t)}} }

type Wait struct{ keywordBase }

func NewWait(t token.Token) *Wait { return &Wait{keywordBase{newBase(t)}} }

// parameterBase tags the two UNTIL/BY clause-introducing words. They sit
// in their own lexeme category (spec.md calls them "Parameter", distinct
// from Keyword) because the grammar only lets them appear at the head of
// a clause, never inside an expression.
type parameterBase struct{ base }

func (parameterBase) Tag() Tag { return TagParameter }

type Until struct{ parameterBase }

func NewUntil(t token.Token) *Until { return &Until{parameterBase{newBase(t)}} }

type By struct{ parameterBase }

func NewBy(t token.Token) *By { return &By{parameterBase{newBase(t)}} }

// Reserved looks up the keyword/parameter constructor for word, if any.
// It is used by the symbol tree's identifier leaf to reclassify what
// would otherwise be a plain Identifier.
func Reserved(t token.Token) (Lexeme, bool) {
	switch t.Word {
	case "prnt":
		return NewPrnt(t), true
	case "if":
		return NewIf(t), true
	case "else":
		return NewElse(t), true
	case "end":
		return NewEnd(t), true
	case "for":
		return NewFor(t), true
	case "procedure":
		return NewProcedure(t), true
	case "def":
		return NewDef(t), true
	case "exec":
		return NewExec(t), true
	case "include":
		return NewInclude(t), true
	case "WAIT":
		return NewWait(t), true
	case "UNTIL":
		return NewUntil(t), true
	case "BY":
		return NewBy(t), true
	default:
		return nil, false
	}
}
