package objective

import (
	"errors"
	"testing"

	da "github.com/lintang-b-s/frustration-ig/pkg/datastructure"
	"github.com/lintang-b-s/frustration-ig/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func buildGraph(t *testing.T, n int, edges [][3]int) *da.SignedGraph {
	t.Helper()
	b := da.NewSignedGraphBuilder(n)
	for _, e := range edges {
		require.NoError(t, b.AddEdge(da.Index(e[0]), da.Index(e[1]), da.Sign(e[2])))
	}
	return b.Build()
}

func randomGraph(t *testing.T, rng *rand.Rand, n, m int, positiveRatio float64) *da.SignedGraph {
	t.Helper()
	b := da.NewSignedGraphBuilder(n)
	for i := 0; i < m; i++ {
		u, v := da.Index(rng.Intn(n)), da.Index(rng.Intn(n))
		if u == v {
			continue
		}
		sign := da.NEGATIVE
		if rng.Float64() < positiveRatio {
			sign = da.POSITIVE
		}
		require.NoError(t, b.AddEdge(u, v, sign))
	}
	return b.Build()
}

func fourCycle(t *testing.T) *da.SignedGraph {
	return buildGraph(t, 4, [][3]int{{0, 1, 1}, {1, 2, 1}, {2, 3, -1}, {3, 0, 1}})
}

func newFrustration(t *testing.T, g *da.SignedGraph, solution []da.ClusterID) *Frustration {
	t.Helper()
	var state *da.PartitionState
	if solution != nil {
		state = da.NewPartitionStateFromSolution(solution)
	}
	fr, err := NewFrustration(g, da.NewNeighborhoodIndex(g), state)
	require.NoError(t, err)
	return fr
}

// assertExact. the incrementally maintained value must match both from-scratch evaluations.
func assertExact(t *testing.T, fr *Frustration) {
	t.Helper()
	full, err := fr.FullRecompute()
	require.NoError(t, err)
	byCluster, err := fr.PartitionRecompute()
	require.NoError(t, err)
	assert.Equal(t, full, fr.Value())
	assert.Equal(t, full, byCluster)
	require.NoError(t, fr.State().CheckConsistency())
}

func TestFullRecompute(t *testing.T) {
	g := fourCycle(t)

	testCases := []struct {
		name     string
		solution []da.ClusterID
		want     int
	}{
		{name: "singletons", solution: nil, want: 3},
		{name: "one cluster", solution: []da.ClusterID{0, 0, 0, 0}, want: 1},
		{name: "negative edge cut", solution: []da.ClusterID{0, 0, 0, 3}, want: 1},
		{name: "two pairs", solution: []da.ClusterID{0, 0, 2, 2}, want: 3},
		{name: "every edge frustrated", solution: []da.ClusterID{0, 1, 2, 2}, want: 4},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			fr := newFrustration(t, g, tt.solution)
			assert.Equal(t, tt.want, fr.Value())
			assertExact(t, fr)
		})
	}
}

func TestNewFrustrationSizeMismatch(t *testing.T) {
	g := fourCycle(t)
	_, err := NewFrustration(g, da.NewNeighborhoodIndex(g), da.NewSingletonPartitionState(3))
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrBadParamInput))
}

func TestDeltaForMove(t *testing.T) {
	g := fourCycle(t)

	testCases := []struct {
		name     string
		solution []da.ClusterID
		u        da.Index
		dst      da.ClusterID
		want     int
	}{
		{name: "join positive neighbor", solution: []da.ClusterID{0, 1, 2, 3}, u: 0, dst: 1, want: -1},
		{name: "join mixed cluster", solution: []da.ClusterID{0, 1, 1, 3}, u: 3, dst: 1, want: 1},
		{name: "leave positive neighbor", solution: []da.ClusterID{0, 0, 2, 3}, u: 0, dst: 2, want: 1},
		{name: "leave negative neighbor", solution: []da.ClusterID{0, 1, 2, 2}, u: 3, dst: 0, want: -2},
		{name: "stay", solution: []da.ClusterID{0, 0, 2, 3}, u: 1, dst: 0, want: 0},
		{name: "into new cluster", solution: []da.ClusterID{0, 0, 0, 0}, u: 3, dst: 9, want: 0},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			fr := newFrustration(t, g, tt.solution)
			before := fr.Value()
			delta := fr.DeltaForMove(tt.u, tt.dst)
			assert.Equal(t, tt.want, delta)

			fr.ApplyMove(tt.u, tt.dst, delta)
			assert.Equal(t, before+tt.want, fr.Value())
			assertExact(t, fr)
		})
	}
}

func TestMoveThenReverse(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := randomGraph(t, rng, 40, 160, 0.6)
	fr := newFrustration(t, g, nil)

	for step := 0; step < 200; step++ {
		u := da.Index(rng.Intn(g.NumberOfVertices()))
		clusters := fr.State().ClusterIDs()
		dst := clusters[rng.Intn(len(clusters))]

		beforeValue := fr.Value()
		beforeSolution := append([]da.ClusterID(nil), fr.State().Solution()...)
		original := fr.State().ClusterOf(u)

		delta := fr.DeltaForMove(u, dst)
		fr.ApplyMove(u, dst, delta)
		assertExact(t, fr)

		back := fr.DeltaForMove(u, original)
		assert.Equal(t, -delta, back)
		fr.ApplyMove(u, original, back)

		assert.Equal(t, beforeValue, fr.Value())
		assert.Equal(t, beforeSolution, fr.State().Solution())
		assertExact(t, fr)

		// keep some structure for the next step
		if delta < 0 {
			fr.ApplyMove(u, dst, delta)
		}
	}
}

func TestDeltaForMerge(t *testing.T) {
	g := fourCycle(t)

	testCases := []struct {
		name     string
		solution []da.ClusterID
		c1, c2   da.ClusterID
		want     int
	}{
		{name: "positive cross edges", solution: []da.ClusterID{0, 0, 2, 3}, c1: 0, c2: 2, want: -1},
		{name: "mixed cross edges", solution: []da.ClusterID{0, 0, 0, 3}, c1: 0, c2: 3, want: 0},
		{name: "negative cross edge only", solution: []da.ClusterID{0, 1, 2, 3}, c1: 2, c2: 3, want: 1},
		{name: "same cluster", solution: []da.ClusterID{0, 0, 2, 3}, c1: 0, c2: 0, want: 0},
		{name: "not adjacent", solution: []da.ClusterID{0, 1, 2, 3}, c1: 0, c2: 2, want: 0},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			fr := newFrustration(t, g, tt.solution)
			before := fr.Value()
			delta := fr.DeltaForMerge(tt.c1, tt.c2)
			assert.Equal(t, tt.want, delta)
			assert.Equal(t, delta, fr.DeltaForMerge(tt.c2, tt.c1), "merge delta is symmetric")

			fr.ApplyMerge(tt.c1, tt.c2, delta)
			assert.Equal(t, before+tt.want, fr.Value())
			if tt.c1 != tt.c2 {
				assert.False(t, fr.State().HasCluster(tt.c2))
			}
			assertExact(t, fr)
		})
	}
}

func TestDecompose(t *testing.T) {
	g := fourCycle(t)

	testCases := []struct {
		name      string
		solution  []da.ClusterID
		u         da.Index
		want      int
		wantMoved bool
	}{
		{name: "singleton", solution: []da.ClusterID{0, 1, 2, 3}, u: 2, want: 0},
		{name: "positive ties", solution: []da.ClusterID{0, 0, 0, 3}, u: 1, want: 2, wantMoved: true},
		{name: "negative tie", solution: []da.ClusterID{0, 1, 1, 1}, u: 3, want: -1, wantMoved: true},
		{name: "balanced stays", solution: []da.ClusterID{0, 0, 0, 0}, u: 2, want: 0},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			fr := newFrustration(t, g, tt.solution)
			before := fr.Value()
			original := fr.State().ClusterOf(tt.u)
			numClusters := fr.State().NumberOfClusters()

			delta := fr.DeltaForDecompose(tt.u)
			assert.Equal(t, tt.want, delta)
			fr.ApplyDecompose(tt.u, delta)
			assertExact(t, fr)

			if !tt.wantMoved {
				assert.Equal(t, original, fr.State().ClusterOf(tt.u))
				assert.Equal(t, numClusters, fr.State().NumberOfClusters())
				return
			}
			assert.NotEqual(t, original, fr.State().ClusterOf(tt.u))
			assert.Equal(t, 1, fr.State().ClusterSize(fr.State().ClusterOf(tt.u)))
			assert.Equal(t, before+tt.want, fr.Value())

			back := fr.DeltaForMove(tt.u, original)
			fr.ApplyMove(tt.u, original, back)
			assert.Equal(t, before, fr.Value())
			assertExact(t, fr)
		})
	}
}

func TestRandomOperationSequences(t *testing.T) {
	testCases := []struct {
		name          string
		seed          uint64
		n, m          int
		positiveRatio float64
		prune         bool
	}{
		{name: "sparse mostly positive", seed: 1, n: 60, m: 150, positiveRatio: 0.8},
		{name: "dense balanced", seed: 2, n: 30, m: 300, positiveRatio: 0.5},
		{name: "mostly negative", seed: 3, n: 50, m: 200, positiveRatio: 0.2},
		{name: "mostly negative pruned", seed: 4, n: 50, m: 120, positiveRatio: 0.3, prune: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(tt.seed))
			g := randomGraph(t, rng, tt.n, tt.m, tt.positiveRatio)
			nbr := da.NewNeighborhoodIndex(g)

			candidates := make([]da.Index, g.NumberOfVertices())
			for u := range candidates {
				candidates[u] = da.Index(u)
			}
			if tt.prune {
				nbr.PruneIsolated()
				_, candidates = nbr.AvailableNodes()
				require.NotEmpty(t, candidates)
			}
			movable := make(map[da.Index]bool, len(candidates))
			for _, u := range candidates {
				movable[u] = true
			}

			fr, err := NewFrustration(g, nbr, nil)
			require.NoError(t, err)

			for step := 0; step < 500; step++ {
				state := fr.State()
				u := candidates[rng.Intn(len(candidates))]

				switch rng.Intn(3) {
				case 0:
					// move into a cluster holding a movable vertex or into a fresh one
					dst := state.AllocateClusterID()
					if rng.Intn(4) > 0 {
						dst = state.ClusterOf(candidates[rng.Intn(len(candidates))])
					}
					fr.ApplyMove(u, dst, fr.DeltaForMove(u, dst))
				case 1:
					c1 := state.ClusterOf(u)
					c2 := state.ClusterOf(candidates[rng.Intn(len(candidates))])
					if !onlyMovable(state.Members(c1), movable) || !onlyMovable(state.Members(c2), movable) {
						continue
					}
					fr.ApplyMerge(c1, c2, fr.DeltaForMerge(c1, c2))
				case 2:
					fr.ApplyDecompose(u, fr.DeltaForDecompose(u))
				}

				assertExact(t, fr)
				assert.GreaterOrEqual(t, fr.Value(), 0)
			}
		})
	}
}

func onlyMovable(members da.NodeSet, movable map[da.Index]bool) bool {
	for u := range members {
		if !movable[u] {
			return false
		}
	}
	return true
}
