/*
File    : dungeontalk/interp/interp_test.go
Package : interp
*/
package interp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run builds an Interpreter over source, drives it to completion, and
// returns it plus whatever it wrote to Out, for a test to inspect final
// scope bindings and emitted text in one place.
func run(t *testing.T, source string) (*Interpreter, string) {
	t.Helper()
	in, err := New(source)
	require.NoError(t, err)
	var out bytes.Buffer
	in.Out = &out
	_, err = in.Run()
	require.NoError(t, err)
	return in, out.String()
}

func TestIncrement(t *testing.T) {
	in, _ := run(t, "a = 1\nb = 2\na++\nb++\n")

	a, ok := in.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(2), a)

	b, ok := in.Get("b")
	require.True(t, ok)
	assert.Equal(t, int64(3), b)
}

func TestDecrement(t *testing.T) {
	in, _ := run(t, "a = 1\nb = 2\na--\nb--\n")

	a, ok := in.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(0), a)

	b, ok := in.Get("b")
	require.True(t, ok)
	assert.Equal(t, int64(1), b)
}

func TestArithmeticPrecedenceIsLiteralNesting(t *testing.T) {
	in, _ := run(t, "z = ((1+3) * 100) / 5\n")

	z, ok := in.Get("z")
	require.True(t, ok)
	assert.Equal(t, 80.0, z)
}

func TestPrntUnwrapsAndBindsString(t *testing.T) {
	in, out := run(t, `who = "World"
prnt who
`)

	who, ok := in.Get("who")
	require.True(t, ok)
	assert.Equal(t, "World", who)
	assert.Equal(t, "World\n", out)
}

func TestDefRunsSynchronouslyAndReturnsLastValue(t *testing.T) {
	in, _ := run(t, "def func(x)\nx + 5\nend\nr = exec func(1)\n")

	r, ok := in.Get("r")
	require.True(t, ok)
	assert.Equal(t, int64(6), r)

	f, ok := in.Get("func")
	require.True(t, ok)
	assert.NotNil(t, f)
}

func TestForLoopInitRunsOnceAndLoopsBackToBody(t *testing.T) {
	in, out := run(t, "for i=0; i<3; i++\nprnt i\nend\n")

	assert.Equal(t, "0\n1\n2\n", out)

	i, ok := in.Get("i")
	require.True(t, ok)
	assert.Equal(t, int64(3), i)
}

func TestIfElseTakesTheTrueBranch(t *testing.T) {
	in, _ := run(t, "if 1 == 1\na=1\nelse\na=2\nend\n")

	a, ok := in.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(1), a)
}

func TestIfElseTakesTheFalseBranch(t *testing.T) {
	in, _ := run(t, "if 1 == 2\na=1\nelse\na=2\nend\n")

	a, ok := in.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(2), a)
}

func TestProcedureCallJumpsAndReturns(t *testing.T) {
	in, out := run(t, "procedure p()\nprnt 9\nend\nexec p\n")

	assert.Equal(t, "9\n", out)
	assert.Equal(t, len(in.Program), in.PC)
}

func TestNestedProcedureCallInsideDef(t *testing.T) {
	in, out := run(t, "procedure p()\nprnt 1\nend\ndef func(x)\nexec p\nx + 1\nend\nr = exec func(9)\n")

	assert.Equal(t, "1\n", out)

	r, ok := in.Get("r")
	require.True(t, ok)
	assert.Equal(t, int64(10), r)
}

func TestArityErrorOnWrongArgumentCount(t *testing.T) {
	in, err := New("def func(x)\nx + 5\nend\nr = exec func()\n")
	require.NoError(t, err)
	var out bytes.Buffer
	in.Out = &out

	_, err = in.Run()
	assert.Error(t, err)
}

func TestSnapshotReportsScopeAndBlockStack(t *testing.T) {
	in, err := New("for i=0; i<3; i++\nprnt i\nend\n")
	require.NoError(t, err)
	var out bytes.Buffer
	in.Out = &out

	// Evaluate just the for header so its block/control frame is open,
	// then inspect the snapshot mid-run rather than after Run() has
	// unwound everything back to <MAIN>.
	_, err = in.execTop(in.Program[in.PC])
	require.NoError(t, err)
	in.PC++

	snap := in.Snapshot()
	assert.Len(t, snap.BlockStack, 2)
	assert.Len(t, snap.ControlStack, 2)
	assert.Equal(t, int64(0), snap.Scope["i"])
}
