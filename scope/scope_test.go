/*
File    : dungeontalk/scope/scope_test.go
Package : scope
*/
package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindFetch(t *testing.T) {
	s := newFrame()
	s.Bind("a", int64(1))

	v, ok := s.Fetch("a")
	require.True(t, ok)
	assert.Equal(t, int64(1), v)

	_, ok = s.Fetch("missing")
	assert.False(t, ok)
}

func TestCopyIsIndependent(t *testing.T) {
	s := newFrame()
	s.Bind("a", int64(1))

	cp := s.Copy()
	cp.Bind("a", int64(99))
	cp.Bind("b", int64(2))

	v, _ := s.Fetch("a")
	assert.Equal(t, int64(1), v, "mutating the copy must not affect the original")

	_, ok := s.Fetch("b")
	assert.False(t, ok, "a binding added only to the copy must not leak back")
}

func TestSnapshotIsASnapshot(t *testing.T) {
	s := newFrame()
	s.Bind("a", int64(1))

	snap := s.Snapshot()
	s.Bind("a", int64(2))

	assert.Equal(t, int64(1), snap["a"], "snapshot must not track later mutation")
}

func TestStackPushCopiesCurrentTop(t *testing.T) {
	st := NewStack()
	st.Top().Bind("a", int64(1))

	st.Push(map[string]any{"x": int64(5)})
	assert.Equal(t, 2, st.Depth())

	a, ok := st.Top().Fetch("a")
	require.True(t, ok, "pushed frame must see a copy of the caller's globals")
	assert.Equal(t, int64(1), a)

	x, ok := st.Top().Fetch("x")
	require.True(t, ok)
	assert.Equal(t, int64(5), x)
}

func TestStackPushExtraNeverShadowsExistingKey(t *testing.T) {
	st := NewStack()
	st.Top().Bind("x", int64(1))

	st.Push(map[string]any{"x": int64(999)})

	x, _ := st.Top().Fetch("x")
	assert.Equal(t, int64(1), x, "current-scope keys win over the pushed namespace argument")
}

func TestStackPullClosesTopFrame(t *testing.T) {
	st := NewStack()
	st.Push(nil)
	require.Equal(t, 2, st.Depth())

	st.Pull()
	assert.Equal(t, 1, st.Depth())
}
