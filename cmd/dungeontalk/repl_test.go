/*
File    : dungeontalk/cmd/dungeontalk/repl_test.go
*/
package main

import (
	"bytes"
	"testing"

	"github.com/dungeontalk/dungeontalk/interp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) *interp.Interpreter {
	t.Helper()
	session, err := interp.New("")
	require.NoError(t, err)
	return session
}

func TestExecuteBindsAcrossCalls(t *testing.T) {
	r := newRepl("", "", "", "", "")
	session := newSession(t)
	var out bytes.Buffer

	r.execute(&out, "a = 1", session)
	r.execute(&out, "a + 1", session)

	a, ok := session.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(1), a)
}

func TestExecuteReportsParseErrorsWithoutStoppingTheSession(t *testing.T) {
	r := newRepl("", "", "", "", "")
	session := newSession(t)
	var out bytes.Buffer

	r.execute(&out, ")))", session)
	assert.NotEmpty(t, out.String(), "a parse error should be written to out")

	out.Reset()
	r.execute(&out, "a = 1", session)
	a, ok := session.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(1), a, "the session must still be usable after a prior line failed")
}

func TestPrintScopeListsBoundVariablesSorted(t *testing.T) {
	session := newSession(t)
	var out bytes.Buffer

	r := newRepl("", "", "", "", "")
	r.execute(&out, "b = 2", session)
	r.execute(&out, "a = 1", session)
	out.Reset()

	printScope(&out, session)
	assert.Equal(t, "a = 1\nb = 2\n", out.String())
}

func TestPrintBannerWritesEveryLine(t *testing.T) {
	r := newRepl("BANNER", "v1", "MIT", "---", "> ")
	var out bytes.Buffer

	r.printBanner(&out)

	s := out.String()
	assert.Contains(t, s, "BANNER")
	assert.Contains(t, s, "v1")
	assert.Contains(t, s, "MIT")
	assert.Contains(t, s, "---")
}
