/*
File    : dungeontalk/lexer/lexer_test.go
Package : lexer
*/
package lexer

import (
	"errors"
	"testing"

	"github.com/dungeontalk/dungeontalk/langerr"
	"github.com/dungeontalk/dungeontalk/lexeme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenize drains a Lexer to EOF, asserting no error occurs mid-stream.
func tokenize(t *testing.T, source string) []lexeme.Lexeme {
	t.Helper()
	l := New(source)
	var out []lexeme.Lexeme
	for {
		lx, err := l.Next()
		if errors.Is(err, langerr.ErrEOF) {
			return out
		}
		require.NoError(t, err)
		out = append(out, lx)
	}
}

func words(lxs []lexeme.Lexeme) []string {
	w := make([]string, len(lxs))
	for i, l := range lxs {
		w[i] = l.Word()
	}
	return w
}

func TestNextClassifiesIntegersAndOperators(t *testing.T) {
	lxs := tokenize(t, "1 + 23 - 4")
	assert.Equal(t, []string{"1", " ", "+", " ", "23", " ", "-", " ", "4"}, words(lxs))
	assert.IsType(t, &lexeme.Integer{}, lxs[0])
	assert.IsType(t, &lexeme.Add{}, lxs[2])
	assert.IsType(t, &lexeme.Subtract{}, lxs[6])
}

func TestNextClassifiesFloatsAndIdentifiers(t *testing.T) {
	lxs := tokenize(t, "x = 3.14")
	require.Len(t, lxs, 5)
	assert.IsType(t, &lexeme.Identifier{}, lxs[0])
	assert.IsType(t, &lexeme.Assign{}, lxs[2])
	assert.IsType(t, &lexeme.Float{}, lxs[4])
	assert.Equal(t, "3.14", lxs[4].Word())
}

func TestNextClassifiesMultiCharOperators(t *testing.T) {
	lxs := tokenize(t, "a++ b-- c==d c!=d")
	got := words(lxs)
	assert.Contains(t, got, "++")
	assert.Contains(t, got, "--")
	assert.Contains(t, got, "==")
	assert.Contains(t, got, "!=")
}

// '<' and '>' never combine with a following '=': there is no <=/>=
// operator, only strict Lesser/Greater, so "a<=b" lexes as four
// separate lexemes rather than one comparison operator.
func TestLesserGreaterDoNotCombineWithEquals(t *testing.T) {
	lxs := tokenize(t, "a<=b")
	require.Len(t, lxs, 4)
	assert.IsType(t, &lexeme.Identifier{}, lxs[0])
	assert.IsType(t, &lexeme.Lesser{}, lxs[1])
	assert.IsType(t, &lexeme.Assign{}, lxs[2])
	assert.IsType(t, &lexeme.Identifier{}, lxs[3])
}

// Statement keywords only match in their exact lowercase spelling: "IF"
// and "If" fall through Reserved's case-sensitive switch and come back
// as plain identifiers, unlike the logical-word keywords (OR/AND/TRUE/
// FALSE/...) which are matched case-insensitively further up the
// symbol tree.
func TestStatementKeywordsMatchOnlyExactLowercase(t *testing.T) {
	lxs := tokenize(t, "if\nIF\nIf")
	require.Len(t, lxs, 5)
	assert.IsType(t, &lexeme.If{}, lxs[0])
	assert.IsType(t, &lexeme.Identifier{}, lxs[2])
	assert.IsType(t, &lexeme.Identifier{}, lxs[4])
}

func TestLogicalKeywordsMatchCaseInsensitively(t *testing.T) {
	lxs := tokenize(t, "true\nTRUE\nTrue")
	require.Len(t, lxs, 5)
	assert.IsType(t, &lexeme.Bool{}, lxs[0])
	assert.IsType(t, &lexeme.Bool{}, lxs[2])
	assert.IsType(t, &lexeme.Bool{}, lxs[4])
}

func TestNextReportsNewlinesAndSemicolonsTheSame(t *testing.T) {
	lxs := tokenize(t, "a\nb;c")
	var newlineCount int
	for _, l := range lxs {
		if _, ok := l.(*lexeme.NewLine); ok {
			newlineCount++
		}
	}
	assert.Equal(t, 2, newlineCount)
}

func TestNextOnEmptySourceReturnsEOFImmediately(t *testing.T) {
	l := New("")
	_, err := l.Next()
	assert.True(t, errors.Is(err, langerr.ErrEOF))
}
