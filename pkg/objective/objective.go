package objective

import (
	da "github.com/lintang-b-s/frustration-ig/pkg/datastructure"
)

/*
ObjectiveFunction. a cluster-quality objective that is minimized. the value is computed from scratch once and
afterwards maintained incrementally: every mutation is first priced with a Delta* call and then applied with the
matching Apply* call, which adds the delta to the value held by the partition state.
*/
type ObjectiveFunction interface {
	// FullRecompute. O(edges) evaluation of the current solution, does not touch the stored value.
	FullRecompute() (int, error)
	// Update. FullRecompute and store the result as the current value.
	Update() (int, error)
	Value() int

	State() *da.PartitionState
	// SetSolution. replace the partition state with the given solution vector, the stored value is not recomputed.
	SetSolution(solution []da.ClusterID)
	NumberOfVertices() int

	DeltaForMove(u da.Index, dst da.ClusterID) int
	ApplyMove(u da.Index, dst da.ClusterID, delta int)

	DeltaForMerge(c1, c2 da.ClusterID) int
	ApplyMerge(c1, c2 da.ClusterID, delta int)

	DeltaForDecompose(u da.Index) int
	ApplyDecompose(u da.Index, delta int)
}
