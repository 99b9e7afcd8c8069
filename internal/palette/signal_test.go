package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalFiresOnce(t *testing.T) {
	sig := NewSignal()
	var got []Ended
	sig.OnEnd(func(e Ended) { got = append(got, e) })

	require.NoError(t, sig.Commit("head"))
	require.ErrorIs(t, sig.Abort(), ErrAlreadyEnded)
	require.ErrorIs(t, sig.Commit("other"), ErrAlreadyEnded)

	assert.Equal(t, []Ended{{Kind: Committed, Search: "head"}}, got)
	res, ok := sig.Result()
	require.True(t, ok)
	assert.Equal(t, Committed, res.Kind)
}

func TestSignalAbortHasNoPayload(t *testing.T) {
	sig := NewSignal()
	assert.False(t, sig.Fired())

	require.NoError(t, sig.Abort())

	res, ok := sig.Result()
	require.True(t, ok)
	assert.Equal(t, Ended{Kind: Aborted}, res)
	assert.Equal(t, "aborted", res.Kind.String())
}

func TestSignalOnEndAfterFireRunsImmediately(t *testing.T) {
	sig := NewSignal()
	require.NoError(t, sig.Abort())

	called := false
	sig.OnEnd(func(e Ended) {
		called = true
		assert.Equal(t, Aborted, e.Kind)
	})
	assert.True(t, called)
}

func TestSignalListenersRunInOrder(t *testing.T) {
	sig := NewSignal()
	var order []int
	sig.OnEnd(func(Ended) { order = append(order, 1) })
	sig.OnEnd(func(Ended) { order = append(order, 2) })

	require.NoError(t, sig.Abort())
	assert.Equal(t, []int{1, 2}, order)
}
