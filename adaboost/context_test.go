package adaboost

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHandles(t *testing.T) {
	ctx := NewContext()
	defer ctx.Dispose()

	seen := make(map[Handle]bool)
	for i := 0; i < 10; i++ {
		h, err := ctx.register(i)
		require.NoError(t, err)
		assert.NotZero(t, h)
		assert.False(t, seen[h])
		seen[h] = true
	}

	assert.True(t, IsInvalidHandle(ctx.with(0, func(interface{}) error { return nil })))
	assert.True(t, IsInvalidHandle(ctx.with(Handle(999), func(interface{}) error { return nil })))
}

func TestContextDispose(t *testing.T) {
	ctx := NewContext()
	h, err := ctx.register("state")
	require.NoError(t, err)

	assert.False(t, ctx.Disposed())
	ctx.Dispose()
	ctx.Dispose()
	assert.True(t, ctx.Disposed())

	assert.True(t, IsInvalidHandle(ctx.with(h, func(interface{}) error { return nil })))

	_, err = ctx.register("late")
	assert.True(t, IsInvalidHandle(err))

	_, err = NewParameter(ctx)
	assert.True(t, IsInvalidHandle(err))
	_, err = NewTrainingBatch(ctx)
	assert.True(t, IsInvalidHandle(err))
	_, err = NewPredictionBatch(ctx)
	assert.True(t, IsInvalidHandle(err))
}

func TestHandleFromOtherKind(t *testing.T) {
	ctx := NewContext()
	defer ctx.Dispose()

	h, err := ctx.register("not a parameter")
	require.NoError(t, err)

	param := &Parameter{ctx: ctx, handle: h}
	assert.True(t, IsInvalidHandle(param.SetMaxIterations(4)))
}

func TestConcurrentParameterAccess(t *testing.T) {
	_, param := newTestParameter(t)

	var wg sync.WaitGroup
	for i := 1; i <= 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, param.SetMaxIterations(i))
			assert.Positive(t, param.MaxIterations())
		}(i)
	}
	wg.Wait()

	assert.GreaterOrEqual(t, param.MaxIterations(), 1)
	assert.LessOrEqual(t, param.MaxIterations(), 16)
}
