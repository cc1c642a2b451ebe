package datastructure

import (
	"slices"
	"sort"
)

// NeighborhoodEntry. positive and negative neighbors of one vertex, both sorted by id and disjoint.
type NeighborhoodEntry struct {
	positive []Index
	negative []Index
}

func (ne *NeighborhoodEntry) GetPositive() []Index {
	return ne.positive
}

func (ne *NeighborhoodEntry) GetNegative() []Index {
	return ne.negative
}

func (ne *NeighborhoodEntry) Degree() int {
	return len(ne.positive) + len(ne.negative)
}

/*
NeighborhoodIndex. per-vertex positive/negative neighbor sets derived once from the signed graph.
vertices without any edge have no entry ("alone"). the only mutation after construction is PruneIsolated,
which runs once before any search.
*/
type NeighborhoodIndex struct {
	entries  []*NeighborhoodEntry
	isolated []Index
	pruned   bool
}

func NewNeighborhoodIndex(g *SignedGraph) *NeighborhoodIndex {
	entries := make([]*NeighborhoodEntry, g.NumberOfVertices())
	for u := 0; u < g.NumberOfVertices(); u++ {
		adj := g.GetNeighbors(Index(u))
		if len(adj) == 0 {
			continue
		}
		entries[u] = collectNeighbors(adj)
	}
	return &NeighborhoodIndex{entries: entries}
}

/*
collectNeighbors. count both signs in one pass, then only the minority sign is materialized by a scan that
stops as soon as its count is exhausted. the majority set is the complement of the minority set within adj.
O(degree).
*/
func collectNeighbors(adj []SignedEdge) *NeighborhoodEntry {
	numPos := 0
	for _, e := range adj {
		if e.sign.IsPositive() {
			numPos++
		}
	}
	numNeg := len(adj) - numPos

	minoritySign, remaining := POSITIVE, numPos
	if numPos > numNeg {
		minoritySign, remaining = NEGATIVE, numNeg
	}

	minority := make([]Index, 0, remaining)
	for _, e := range adj {
		if remaining == 0 {
			break
		}
		if e.sign == minoritySign {
			minority = append(minority, e.head)
			remaining--
		}
	}

	majority := complement(adj, minority)
	if minoritySign == NEGATIVE {
		return &NeighborhoodEntry{positive: majority, negative: minority}
	}
	return &NeighborhoodEntry{positive: minority, negative: majority}
}

// complement. heads of adj not in sub. both sorted by id.
func complement(adj []SignedEdge, sub []Index) []Index {
	res := make([]Index, 0, len(adj)-len(sub))
	j := 0
	for _, e := range adj {
		if j < len(sub) && sub[j] == e.head {
			j++
			continue
		}
		res = append(res, e.head)
	}
	return res
}

func (nb *NeighborhoodIndex) NumberOfVertices() int {
	return len(nb.entries)
}

// Has. false for vertices without edges and for pruned isolated vertices.
func (nb *NeighborhoodIndex) Has(u Index) bool {
	return nb.entries[u] != nil
}

func (nb *NeighborhoodIndex) GetEntry(u Index) *NeighborhoodEntry {
	return nb.entries[u]
}

func (nb *NeighborhoodIndex) PositiveNeighbors(u Index) []Index {
	if nb.entries[u] == nil {
		return nil
	}
	return nb.entries[u].positive
}

func (nb *NeighborhoodIndex) NegativeNeighbors(u Index) []Index {
	if nb.entries[u] == nil {
		return nil
	}
	return nb.entries[u].negative
}

func (nb *NeighborhoodIndex) Degree(u Index) int {
	if nb.entries[u] == nil {
		return 0
	}
	return nb.entries[u].Degree()
}

func (nb *NeighborhoodIndex) ForNeighbors(u Index, handle func(v Index, sign Sign)) {
	e := nb.entries[u]
	if e == nil {
		return
	}
	for _, v := range e.positive {
		handle(v, POSITIVE)
	}
	for _, v := range e.negative {
		handle(v, NEGATIVE)
	}
}

// AdjacentClusters. clusters of u's neighbors, excluding u's own cluster. sorted ascending.
func (nb *NeighborhoodIndex) AdjacentClusters(u Index, solution []ClusterID) []ClusterID {
	own := solution[u]
	clusters := make([]ClusterID, 0, nb.Degree(u))
	nb.ForNeighbors(u, func(v Index, _ Sign) {
		if c := solution[v]; c != own {
			clusters = append(clusters, c)
		}
	})
	slices.Sort(clusters)
	return slices.Compact(clusters)
}

/*
AdjacentClustersOfCluster. union over the members of cluster cid of their adjacent clusters, excluding cid.
O(|cid| * average degree). sorted ascending.
*/
func (nb *NeighborhoodIndex) AdjacentClustersOfCluster(cid ClusterID, solution []ClusterID, partition Partition) []ClusterID {
	clusters := make([]ClusterID, 0)
	for u := range partition[cid] {
		nb.ForNeighbors(u, func(v Index, _ Sign) {
			if c := solution[v]; c != cid {
				clusters = append(clusters, c)
			}
		})
	}
	slices.Sort(clusters)
	return slices.Compact(clusters)
}

/*
PruneIsolated. delete every vertex that has edges but no positive neighbor, and remove the back references
from its negative neighbors. such vertices can never take part in an improving move. runs once, later calls
return the vertices pruned by the first call.
*/
func (nb *NeighborhoodIndex) PruneIsolated() []Index {
	if nb.pruned {
		return nb.isolated
	}
	nb.pruned = true

	isolated := make([]Index, 0)
	for u, e := range nb.entries {
		if e != nil && len(e.positive) == 0 {
			isolated = append(isolated, Index(u))
		}
	}

	for _, u := range isolated {
		for _, v := range nb.entries[u].negative {
			// v may be isolated too and already deleted.
			if nb.entries[v] == nil {
				continue
			}
			nb.entries[v].negative = removeSorted(nb.entries[v].negative, u)
		}
		nb.entries[u] = nil
	}

	nb.isolated = isolated
	return isolated
}

func (nb *NeighborhoodIndex) IsPruned() bool {
	return nb.pruned
}

/*
AvailableNodes. split vertices into excluded ("alone": no entry, "isolated": no positive neighbor) and
available ones. both sorted ascending.
*/
func (nb *NeighborhoodIndex) AvailableNodes() (excluded []Index, available []Index) {
	excluded = make([]Index, 0)
	available = make([]Index, 0, len(nb.entries))
	for u, e := range nb.entries {
		if e == nil || len(e.positive) == 0 {
			excluded = append(excluded, Index(u))
			continue
		}
		available = append(available, Index(u))
	}
	return excluded, available
}

func removeSorted(ids []Index, x Index) []Index {
	i := sort.Search(len(ids), func(i int) bool {
		return ids[i] >= x
	})
	if i < len(ids) && ids[i] == x {
		return append(ids[:i], ids[i+1:]...)
	}
	return ids
}
