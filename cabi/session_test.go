package cabi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanbridge/scanbridge/abstract"
)

type stubSession struct{ closed bool }

func (s *stubSession) NextEvent(context.Context) (abstract.ScanEvent, error) {
	return abstract.JobComplete(), nil
}

func (s *stubSession) Close() error {
	s.closed = true
	return nil
}

func TestSessionTableIDsStartAtOneAndIncrease(t *testing.T) {
	tbl := newSessionTable()

	first := tbl.add(&stubSession{})
	second := tbl.add(&stubSession{})

	assert.Equal(t, uint32(1), first)
	assert.Equal(t, uint32(2), second)
}

func TestSessionTableGetUnknownOrZero(t *testing.T) {
	tbl := newSessionTable()
	tbl.add(&stubSession{})

	_, ok := tbl.get(0)
	assert.False(t, ok)

	_, ok = tbl.get(999)
	assert.False(t, ok)
}

func TestSessionTableRemoveClosesSession(t *testing.T) {
	tbl := newSessionTable()
	s := &stubSession{}
	id := tbl.add(s)

	tbl.remove(id)

	assert.True(t, s.closed)
	_, ok := tbl.get(id)
	assert.False(t, ok)
}

func TestSessionTableRemoveUnknownIsNoop(t *testing.T) {
	tbl := newSessionTable()
	tbl.remove(42) // must not panic
}

func TestSessionTableResetClosesAllAndRestartsCounter(t *testing.T) {
	tbl := newSessionTable()
	a := &stubSession{}
	b := &stubSession{}
	tbl.add(a)
	tbl.add(b)

	tbl.reset()

	assert.True(t, a.closed)
	assert.True(t, b.closed)

	next := tbl.add(&stubSession{})
	require.Equal(t, uint32(1), next)
}
