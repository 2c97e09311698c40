/*
File    : dungeontalk/lexer/lexer.go
Package : lexer
*/

// Package lexer turns source bytes into lexemes in two stages: a raw
// byte scanner groups maximal runs of non-delimiter bytes (or a single
// delimiter byte) into plain tokens, and a greedy symbol tree then
// classifies one or more consecutive raw tokens into a typed lexeme.
// Built once per source and walked read-only afterward, matching the
// "construct once, treat as immutable" shape the grammar/lexeme layers
// expect.
package lexer

import (
	"os"
	"strings"

	"github.com/dungeontalk/dungeontalk/langerr"
	"github.com/dungeontalk/dungeontalk/lexeme"
	"github.com/dungeontalk/dungeontalk/token"
)

// delimiterBytes mirrors the original grammar's delimiter character
// class: quotes, statement/expression punctuation, brackets and
// parentheses. Whitespace is delimiting too but is checked separately.
const delimiterBytes = "\"':!,;+*^&@#$%&-\\/|=$()?<>[]"

func isDelimiterByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return strings.IndexByte(delimiterBytes, b) >= 0
}

// Lexer scans a fixed source buffer. It can be repositioned by absolute
// byte offset (Offset/Seek); the parser itself reads strictly forward,
// taking string-literal text through ReadRaw.
type Lexer struct {
	src     []byte
	pos     int
	line    int
	column  int
	pending *token.Token // one raw token of pushback, used by Next's backtrack
}

// New builds a Lexer over literal source text.
func New(source string) *Lexer {
	return &Lexer{src: []byte(source), line: 1, column: 0}
}

// NewFile builds a Lexer over a file's contents.
func NewFile(path string) (*Lexer, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Lexer{src: b, line: 1, column: 0}, nil
}

// Offset reports the current absolute byte position.
func (l *Lexer) Offset() int { return l.pos }

// Seek repositions the lexer to an absolute byte offset, discarding any
// pending pushback. Line and column are left as they were, so positions
// reported after a Seek are not adjusted to the new offset.
func (l *Lexer) Seek(offset int) {
	l.pos = offset
	l.pending = nil
}

// scanRaw reads the next maximal run of non-delimiter bytes, or a
// single delimiter byte if the run would otherwise be empty. It reports
// false once the buffer is exhausted and nothing was read.
func (l *Lexer) scanRaw() (token.Token, bool) {
	startLine, startCol, startByte := l.line, l.column, l.pos
	var buf []byte
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if !isDelimiterByte(c) {
			buf = append(buf, c)
			l.pos++
			continue
		}
		if len(buf) == 0 {
			buf = append(buf, c)
			l.pos++
		}
		break
	}
	if len(buf) == 0 {
		return token.Token{}, false
	}
	word := string(buf)
	tok := token.New(word, startLine, startCol, startByte)
	if word == "\n" || word == ";" {
		l.line++
		l.column = 0
	} else {
		l.column += len(word)
	}
	return tok, true
}

// nextRaw serves the pending pushback token first, if any.
func (l *Lexer) nextRaw() (token.Token, bool) {
	if l.pending != nil {
		t := *l.pending
		l.pending = nil
		return t, true
	}
	return l.scanRaw()
}

func (l *Lexer) pushbackRaw(t token.Token) {
	l.pending = &t
}

// ReadRaw exposes a single raw token read, used by the parser to pull
// verbatim bytes out of a string literal between matching quotes.
func (l *Lexer) ReadRaw() (token.Token, bool) {
	return l.nextRaw()
}

// PushbackRaw returns a raw token to the front of the stream.
func (l *Lexer) PushbackRaw(t token.Token) {
	l.pushbackRaw(t)
}

// Next classifies the next lexeme from the source. It returns
// langerr.ErrEOF at a clean end of input, or a *langerr.LexError if a
// byte sequence matches nothing in the symbol tree.
func (l *Lexer) Next() (lexeme.Lexeme, error) {
	cur := root
	var toks []token.Token
	for {
		t, ok := l.nextRaw()
		if !ok {
			if len(toks) == 0 {
				return nil, langerr.ErrEOF
			}
			if cur.fallback != nil {
				return cur.fallback(toks), nil
			}
			return nil, &langerr.LexError{Line: toks[0].Line, Column: toks[0].Column, ByteOffset: toks[0].ByteOffset, Fragment: joined(toks).Word}
		}

		if e, found := find(cur, t.Word); found {
			toks = append(toks, t)
			if e.leaf != nil {
				return e.leaf(toks), nil
			}
			cur = e.next
			continue
		}

		if len(toks) > 0 && cur.fallback != nil {
			l.pushbackRaw(t)
			return cur.fallback(toks), nil
		}
		if len(toks) == 0 {
			return nil, &langerr.LexError{Line: t.Line, Column: t.Column, ByteOffset: t.ByteOffset, Fragment: t.Word}
		}
		return nil, &langerr.LexError{Line: toks[0].Line, Column: toks[0].Column, ByteOffset: toks[0].ByteOffset, Fragment: joined(toks).Word}
	}
}

func find(n *symNode, word string) (symEdge, bool) {
	for _, e := range n.edges {
		if e.matches(word) {
			return e, true
		}
	}
	return symEdge{}, false
}
