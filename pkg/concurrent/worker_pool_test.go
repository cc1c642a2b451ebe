package concurrent

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAll(t *testing.T) {
	testCases := []struct {
		name       string
		numWorkers int
		inputs     []int
	}{
		{name: "single worker", numWorkers: 1, inputs: []int{1, 2, 3, 4, 5}},
		{name: "more workers than jobs", numWorkers: 16, inputs: []int{7, 8, 9}},
		{name: "zero workers falls back to one", numWorkers: 0, inputs: []int{3, 1, 2}},
		{name: "no jobs", numWorkers: 4, inputs: []int{}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RunAll(context.Background(), tt.numWorkers, tt.inputs, func(ctx context.Context, x int) (string, error) {
				return fmt.Sprintf("job-%d", x*x), nil
			})
			require.NoError(t, err)
			require.Len(t, got, len(tt.inputs))
			for i, x := range tt.inputs {
				assert.Equal(t, fmt.Sprintf("job-%d", x*x), got[i])
			}
		})
	}
}

func TestRunAllReturnsLowestFailingError(t *testing.T) {
	errOdd := errors.New("odd input")
	inputs := []int{0, 2, 3, 4, 5, 6}

	got, err := RunAll(context.Background(), 3, inputs, func(ctx context.Context, x int) (int, error) {
		if x%2 == 1 {
			return 0, fmt.Errorf("input %d: %w", x, errOdd)
		}
		return x * 10, nil
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errOdd))
	assert.EqualError(t, err, "input 3: odd input")
	assert.Equal(t, []int{0, 20, 0, 40, 0, 60}, got)
}

func TestRunAllCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	_, err := RunAll(ctx, 2, []int{1, 2, 3}, func(ctx context.Context, x int) (int, error) {
		calls.Add(1)
		return x, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), calls.Load())
}

func TestWorkerPool(t *testing.T) {
	wp := NewWorkerPool[int, int](3, 10)
	wp.Start(context.Background(), func(ctx context.Context, x int) (int, error) {
		return x + 100, nil
	})
	for i := 0; i < 10; i++ {
		wp.AddJob(i, i)
	}
	wp.Close()
	go wp.Wait()

	seen := make(map[int]int)
	for res := range wp.CollectResults() {
		require.NoError(t, res.Err)
		seen[res.ID] = res.Value
	}
	require.Len(t, seen, 10)
	for i := 0; i < 10; i++ {
		assert.Equal(t, i+100, seen[i])
	}
}
