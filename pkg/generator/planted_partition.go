package generator

import (
	da "github.com/lintang-b-s/frustration-ig/pkg/datastructure"
	"github.com/lintang-b-s/frustration-ig/pkg/util"
	"golang.org/x/exp/rand"
)

/*
PlantedPartition. signed planted-partition graph with n vertices split round-robin into k groups (vertex u belongs to
group u mod k). every intra-group pair gets a positive edge with probability pIn, every inter-group pair a negative
edge with probability pOut, and each generated edge has its sign flipped with probability noise. returns the graph
and the planted group of every vertex.
*/
func PlantedPartition(n, k int, pIn, pOut, noise float64, rng *rand.Rand) (*da.SignedGraph, []da.ClusterID, error) {
	if n < 0 || k < 1 {
		return nil, nil, util.NewErrorf(util.ErrBadParamInput, "invalid planted partition size n=%d k=%d", n, k)
	}
	for _, p := range []float64{pIn, pOut, noise} {
		if p < 0 || p > 1 {
			return nil, nil, util.NewErrorf(util.ErrBadParamInput, "probability %v outside [0,1]", p)
		}
	}

	groups := make([]da.ClusterID, n)
	for u := 0; u < n; u++ {
		groups[u] = da.ClusterID(u % k)
	}

	builder := da.NewSignedGraphBuilder(n)
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			sign := da.NEGATIVE
			p := pOut
			if groups[u] == groups[v] {
				sign = da.POSITIVE
				p = pIn
			}
			if rng.Float64() >= p {
				continue
			}
			if noise > 0 && rng.Float64() < noise {
				sign = -sign
			}
			if err := builder.AddEdge(da.Index(u), da.Index(v), sign); err != nil {
				return nil, nil, err
			}
		}
	}
	return builder.Build(), groups, nil
}

// WriteGroups. planted groups in the partition file format.
func WriteGroups(filename string, groups []da.ClusterID) error {
	return da.WritePartitionFile(filename, groups)
}
