/*
File    : dungeontalk/lexeme/whitespace.go
Package : lexeme
*/
package lexeme

import "github.com/dungeontalk/dungeontalk/token"

// Space is a single ' ' byte; a run of spaces lexes as one Space each.
// The parser's next() ignores Space and Tab by default.
type Space struct{ base }

func NewSpace(t token.Token) *Space { return &Space{newBase(t)} }
func (*Space) Tag() Tag             { return TagSpace }

// Tab is the single-'\t' counterpart to Space.
type Tab struct{ base }

func NewTab(t token.Token) *Tab { return &Tab{newBase(t)} }
func (*Tab) Tag() Tag           { return TagTab }

// NewLine marks a statement boundary. Both '\n' and ';' lex to NewLine,
// matching spec.md's "line terminators are interchangeable" rule.
type NewLine struct{ base }

func NewNewLine(t token.Token) *NewLine { return &NewLine{newBase(t)} }
func (*NewLine) Tag() Tag               { return TagNewline }
