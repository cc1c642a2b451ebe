package initialization

import (
	"testing"

	da "github.com/lintang-b-s/frustration-ig/pkg/datastructure"
	"github.com/lintang-b-s/frustration-ig/pkg/localsearch"
	"github.com/lintang-b-s/frustration-ig/pkg/objective"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestGreedyInitialization(t *testing.T) {
	// 0-1-2 positive triangle, 3-4 positive pair, negative bridges, 5 alone, 6 only negative
	b := da.NewSignedGraphBuilder(7)
	for _, e := range [][3]int{{0, 1, 1}, {1, 2, 1}, {0, 2, 1}, {3, 4, 1}, {2, 3, -1}, {0, 4, -1}, {6, 1, -1}} {
		require.NoError(t, b.AddEdge(da.Index(e[0]), da.Index(e[1]), da.Sign(e[2])))
	}
	g := b.Build()

	testCases := []struct {
		name  string
		order localsearch.NodeOrder
		seed  uint64
	}{
		{name: "random order", order: localsearch.RANDOM_ORDER, seed: 5},
		{name: "degree order", order: localsearch.DEGREE_ORDER, seed: 5},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			nbr := da.NewNeighborhoodIndex(g)
			nbr.PruneIsolated()

			// start away from the singleton partition, initialization must reset it
			fr, err := objective.NewFrustration(g, nbr, da.NewPartitionStateFromSolution(make([]da.ClusterID, 7)))
			require.NoError(t, err)
			assert.Equal(t, 3, fr.Value())

			initializer := NewInitialization(nbr, tt.order, rand.New(rand.NewSource(tt.seed)))
			state, err := initializer.GreedyInitialization(fr)
			require.NoError(t, err)
			assert.Same(t, fr.State(), state)

			assert.Equal(t, 0, fr.Value())
			full, err := fr.FullRecompute()
			require.NoError(t, err)
			assert.Equal(t, full, fr.Value())
			require.NoError(t, state.CheckConsistency())

			sol := state.Solution()
			assert.Equal(t, sol[0], sol[1])
			assert.Equal(t, sol[0], sol[2])
			assert.Equal(t, sol[3], sol[4])
			assert.NotEqual(t, sol[0], sol[3])
			assert.Equal(t, da.ClusterID(5), sol[5])
			assert.Equal(t, da.ClusterID(6), sol[6])
		})
	}
}

func TestDefaultInitialization(t *testing.T) {
	initializer := NewInitialization(nil, localsearch.RANDOM_ORDER, nil)
	state := initializer.DefaultInitialization(3)
	assert.Equal(t, []da.ClusterID{0, 1, 2}, state.Solution())
	assert.Equal(t, 3, state.NumberOfClusters())
}
