package document

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockslash/internal/config"
)

func TestTaskQueueRunsInOrder(t *testing.T) {
	q := NewTaskQueue()
	var got []int
	q.Defer(func() { got = append(got, 1) })
	q.Defer(func() { got = append(got, 2) })

	assert.Equal(t, 2, q.Flush())
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 0, q.Len())
}

func TestTaskQueueDefersNestedTasksToNextFlush(t *testing.T) {
	q := NewTaskQueue()
	ran := 0
	q.Defer(func() {
		ran++
		q.Defer(func() { ran++ })
	})

	assert.Equal(t, 1, q.Flush())
	assert.Equal(t, 1, ran)
	assert.Equal(t, 1, q.Len())

	q.Flush()
	assert.Equal(t, 2, ran)
}

func TestIDGenerators(t *testing.T) {
	auto, err := NewIDGenerator(config.IDGeneratorAutoIncrement)
	require.NoError(t, err)
	assert.Equal(t, "0", auto.NextID())
	assert.Equal(t, "1", auto.NextID())

	gen, err := NewIDGenerator(config.IDGeneratorUUID)
	require.NoError(t, err)
	id := gen.NextID()
	_, err = uuid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, gen.NextID())

	_, err = NewIDGenerator("nope")
	require.ErrorIs(t, err, config.ErrUnknownIDGenerator)
}
