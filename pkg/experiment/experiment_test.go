package experiment

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	da "github.com/lintang-b-s/frustration-ig/pkg/datastructure"
	"github.com/lintang-b-s/frustration-ig/pkg/generator"
	"github.com/lintang-b-s/frustration-ig/pkg/ig"
	"github.com/lintang-b-s/frustration-ig/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestEndPosition(t *testing.T) {
	testCases := []struct {
		name   string
		values []int
		want   int
	}{
		{name: "empty", values: nil, want: 0},
		{name: "single", values: []int{4}, want: 1},
		{name: "reached late", values: []int{9, 7, 7, 5}, want: 4},
		{name: "reached early", values: []int{9, 5, 5, 5}, want: 2},
		{name: "revisited value", values: []int{5, 6, 5}, want: 1},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EndPosition(tt.values))
		})
	}
}

func TestSummarize(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		s := Summarize(nil)
		assert.Equal(t, 0, s.Trials)
		assert.Equal(t, -1, s.BestTrial)
	})

	t.Run("population statistics", func(t *testing.T) {
		trials := []Trial{
			{Index: 0, FinalValue: 4, EndPosition: 10},
			{Index: 1, FinalValue: 2, EndPosition: 20},
			{Index: 2, FinalValue: 6, EndPosition: 30},
			{Index: 3, FinalValue: 2, EndPosition: 40},
		}
		s := Summarize(trials)

		assert.Equal(t, 4, s.Trials)
		assert.Equal(t, []float64{4, 2, 6, 2}, s.FinalValues)
		assert.InDelta(t, 3.5, s.MeanFinalValue, 1e-9)
		// population std of {4,2,6,2}: sqrt(11/4)
		assert.InDelta(t, 1.6583123951777, s.StdFinalValue, 1e-9)
		assert.InDelta(t, 25.0, s.MeanEndPosition, 1e-9)
		assert.InDelta(t, 11.180339887499, s.StdEndPosition, 1e-9)
		assert.Equal(t, 2.0, s.MedianFinal)
		assert.Equal(t, 1, s.BestTrial)
		assert.Equal(t, 2, s.BestValue)
	})

	t.Run("odd number of trials", func(t *testing.T) {
		s := Summarize([]Trial{{Index: 0, FinalValue: 9}, {Index: 1, FinalValue: 3}, {Index: 2, FinalValue: 5}})
		assert.Equal(t, 5.0, s.MedianFinal)
		assert.Equal(t, 1, s.BestTrial)
	})
}

func TestDeriveSeed(t *testing.T) {
	assert.Equal(t, uint64(42), DeriveSeed(42, 0))

	seen := map[uint64]bool{42: true}
	for i := 1; i < 64; i++ {
		s := DeriveSeed(42, i)
		assert.False(t, seen[s], "seed of trial %d collides", i)
		seen[s] = true
		assert.Equal(t, s, DeriveSeed(42, i))
	}
	assert.NotEqual(t, DeriveSeed(1, 1), DeriveSeed(2, 1))
}

func plantedGraph(t *testing.T) *da.SignedGraph {
	t.Helper()
	g, _, err := generator.PlantedPartition(60, 4, 0.4, 0.08, 0.1, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	return g
}

func TestRunTrials(t *testing.T) {
	g := plantedGraph(t)
	cfg := ig.DefaultConfig()
	cfg.MaxIter = 40
	cfg.Seed = 9

	sequential, err := NewRunner(1, nil).RunTrials(context.Background(), g, cfg, 4)
	require.NoError(t, err)
	parallel, err := NewRunner(4, nil).RunTrials(context.Background(), g, cfg, 4)
	require.NoError(t, err)

	require.Len(t, sequential, 4)
	for i := range sequential {
		assert.Equal(t, i, sequential[i].Index)
		assert.Equal(t, DeriveSeed(9, i), sequential[i].Seed)
		assert.Len(t, sequential[i].Trajectory, 40)
		assert.Equal(t, sequential[i].Trajectory[39], sequential[i].FinalValue)
		assert.Equal(t, EndPosition(sequential[i].Trajectory), sequential[i].EndPosition)
		assert.Len(t, sequential[i].Solution, g.NumberOfVertices())

		assert.Equal(t, sequential[i].Trajectory, parallel[i].Trajectory)
		assert.Equal(t, sequential[i].Solution, parallel[i].Solution)
	}

	s := Summarize(sequential)
	assert.Equal(t, 4, s.Trials)
	assert.Equal(t, sequential[s.BestTrial].FinalValue, s.BestValue)
}

func TestRunTrialsErrors(t *testing.T) {
	g := plantedGraph(t)

	_, err := NewRunner(2, nil).RunTrials(context.Background(), g, ig.DefaultConfig(), 0)
	assert.True(t, errors.Is(err, util.ErrBadParamInput))

	cfg := ig.DefaultConfig()
	cfg.Beta = 2
	_, err = NewRunner(2, nil).RunTrials(context.Background(), g, cfg, 2)
	assert.True(t, errors.Is(err, util.ErrConfig))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewRunner(2, nil).RunTrials(ctx, g, ig.DefaultConfig(), 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadDatasets(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt.bz2")
	require.NoError(t, os.WriteFile(first, []byte("3 2\n0 1 1\n1 2 -1\n"), 0o644))

	g, _, err := generator.PlantedPartition(12, 3, 1, 0.5, 0, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.NoError(t, g.WriteGraph(second))

	graphs, err := LoadDatasets(context.Background(), []string{first, second}, da.SIGNED_NETWORK, false)
	require.NoError(t, err)
	require.Len(t, graphs, 2)
	assert.Equal(t, 3, graphs[0].NumberOfVertices())
	assert.Equal(t, 2, graphs[0].NumberOfEdges())
	assert.Equal(t, g.NumberOfEdges(), graphs[1].NumberOfEdges())

	_, err = LoadDatasets(context.Background(), []string{first, filepath.Join(dir, "missing.txt")}, da.SIGNED_NETWORK, false)
	assert.Error(t, err)
}
