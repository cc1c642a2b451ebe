package objective

import (
	da "github.com/lintang-b-s/frustration-ig/pkg/datastructure"
	"github.com/lintang-b-s/frustration-ig/pkg/util"
)

/*
Frustration. number of frustrated edges of a signed graph under a partition: positive edges between clusters
plus negative edges inside clusters.

deltas are computed from the neighborhood index, so after PruneIsolated the negative edges of pruned vertices are
not priced. this is exact as long as pruned vertices stay in their own singleton clusters, which holds because no
search move can reach them.
*/
type Frustration struct {
	graph *da.SignedGraph
	nbr   *da.NeighborhoodIndex
	state *da.PartitionState
}

// NewFrustration. state nil means the all-singleton partition. the value is computed from scratch.
func NewFrustration(graph *da.SignedGraph, nbr *da.NeighborhoodIndex, state *da.PartitionState) (*Frustration, error) {
	if state == nil {
		state = da.NewSingletonPartitionState(graph.NumberOfVertices())
	}
	if state.NumberOfVertices() != graph.NumberOfVertices() {
		return nil, util.NewErrorf(util.ErrBadParamInput, "solution covers %d vertices, graph has %d",
			state.NumberOfVertices(), graph.NumberOfVertices())
	}
	fr := &Frustration{
		graph: graph,
		nbr:   nbr,
		state: state,
	}
	if _, err := fr.Update(); err != nil {
		return nil, err
	}
	return fr, nil
}

func (fr *Frustration) State() *da.PartitionState {
	return fr.state
}

func (fr *Frustration) Neighborhood() *da.NeighborhoodIndex {
	return fr.nbr
}

func (fr *Frustration) Graph() *da.SignedGraph {
	return fr.graph
}

func (fr *Frustration) Value() int {
	return fr.state.Value()
}

func (fr *Frustration) NumberOfVertices() int {
	return fr.graph.NumberOfVertices()
}

func (fr *Frustration) SetSolution(solution []da.ClusterID) {
	fr.state.SetSolution(solution)
}

func (fr *Frustration) Update() (int, error) {
	value, err := fr.FullRecompute()
	if err != nil {
		return 0, err
	}
	fr.state.SetValue(value)
	return value, nil
}

/*
FullRecompute. every edge is seen from both endpoints, so the raw count of violations must be even before it is
halved. O(edges).
*/
func (fr *Frustration) FullRecompute() (int, error) {
	sol := fr.state.Solution()
	frustration := 0
	for u := 0; u < fr.graph.NumberOfVertices(); u++ {
		cid := sol[u]
		fr.graph.ForNeighborsOfVertex(da.Index(u), func(v da.Index, sign da.Sign) {
			same := sol[v] == cid
			if (same && sign.IsNegative()) || (!same && sign.IsPositive()) {
				frustration++
			}
		})
	}
	if frustration%2 != 0 {
		return 0, util.NewErrorf(util.ErrInvariant, "double counted frustration %d is odd", frustration)
	}
	return frustration / 2, nil
}

/*
PartitionRecompute. cluster by cluster evaluation with the neighborhood index: positive neighbors outside plus
negative neighbors inside each cluster, halved.
*/
func (fr *Frustration) PartitionRecompute() (int, error) {
	sol := fr.state.Solution()
	total := 0
	for cid, members := range fr.state.Partition() {
		posOut, negIn := 0, 0
		for u := range members {
			for _, v := range fr.nbr.PositiveNeighbors(u) {
				if sol[v] != cid {
					posOut++
				}
			}
			for _, v := range fr.nbr.NegativeNeighbors(u) {
				if sol[v] == cid {
					negIn++
				}
			}
		}
		total += posOut + negIn
	}
	if total%2 != 0 {
		return 0, util.NewErrorf(util.ErrInvariant, "double counted frustration %d is odd", total)
	}
	return total / 2, nil
}

// DeltaForMove. change of frustration if u moves from its cluster into dst, negative is better. O(degree(u)).
func (fr *Frustration) DeltaForMove(u da.Index, dst da.ClusterID) int {
	sol := fr.state.Solution()
	cur := sol[u]
	if cur == dst {
		return 0
	}

	delta := 0
	for _, v := range fr.nbr.PositiveNeighbors(u) {
		switch sol[v] {
		case dst:
			// positive edge pulled inside a cluster
			delta--
		case cur:
			delta++
		}
	}
	for _, v := range fr.nbr.NegativeNeighbors(u) {
		switch sol[v] {
		case dst:
			delta++
		case cur:
			// negative edge pushed between clusters
			delta--
		}
	}
	return delta
}

func (fr *Frustration) ApplyMove(u da.Index, dst da.ClusterID, delta int) {
	fr.state.MoveNode(u, dst)
	fr.state.AddValue(delta)
}

// DeltaForMerge. change of frustration if clusters c1 and c2 are merged. O(|c1| * average degree).
func (fr *Frustration) DeltaForMerge(c1, c2 da.ClusterID) int {
	if c1 == c2 {
		return 0
	}
	sol := fr.state.Solution()
	delta := 0
	for u := range fr.state.Members(c1) {
		for _, v := range fr.nbr.PositiveNeighbors(u) {
			if sol[v] == c2 {
				delta--
			}
		}
		for _, v := range fr.nbr.NegativeNeighbors(u) {
			if sol[v] == c2 {
				delta++
			}
		}
	}
	return delta
}

// ApplyMerge. merge c2 into c1, c2 is deleted.
func (fr *Frustration) ApplyMerge(c1, c2 da.ClusterID, delta int) {
	fr.state.MergeClusters(c1, c2)
	fr.state.AddValue(delta)
}

/*
DeltaForDecompose. change of frustration if u is moved out into a new singleton cluster: every positive edge to
its cluster becomes frustrated, every negative one is satisfied. 0 if u is already alone. O(degree(u)).
*/
func (fr *Frustration) DeltaForDecompose(u da.Index) int {
	sol := fr.state.Solution()
	cid := sol[u]
	if fr.state.ClusterSize(cid) == 1 {
		return 0
	}

	delta := 0
	for _, v := range fr.nbr.PositiveNeighbors(u) {
		if sol[v] == cid {
			delta++
		}
	}
	for _, v := range fr.nbr.NegativeNeighbors(u) {
		if sol[v] == cid {
			delta--
		}
	}
	return delta
}

// ApplyDecompose. a zero delta leaves u where it is, even when u shares its cluster with others.
func (fr *Frustration) ApplyDecompose(u da.Index, delta int) {
	if delta == 0 {
		return
	}
	fr.state.IsolateNode(u)
	fr.state.AddValue(delta)
}
