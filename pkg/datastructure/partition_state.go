package datastructure

import (
	"fmt"
	"slices"
)

type ClusterID int

const INVALID_CLUSTER_ID ClusterID = -1

type NodeSet map[Index]struct{}

// Sorted. members in ascending order.
func (ns NodeSet) Sorted() []Index {
	nodes := make([]Index, 0, len(ns))
	for u := range ns {
		nodes = append(nodes, u)
	}
	slices.Sort(nodes)
	return nodes
}

// Partition. cluster id -> non-empty member set.
type Partition map[ClusterID]NodeSet

// SortedIDs. cluster ids in ascending order.
func (p Partition) SortedIDs() []ClusterID {
	ids := make([]ClusterID, 0, len(p))
	for c := range p {
		ids = append(ids, c)
	}
	slices.Sort(ids)
	return ids
}

/*
PartitionState. the solution vector (vertex -> cluster) and the partition (cluster -> members) kept as mutual
inverses, plus the objective value maintained by the objective function.

cluster ids handed out by AllocateClusterID grow monotonically, so an allocated id is never shared with a
live cluster, even after Restore brings old ids back.
*/
type PartitionState struct {
	solution      []ClusterID
	partition     Partition
	value         int
	nextClusterID ClusterID
}

// NewSingletonPartitionState. every vertex in its own cluster, cluster id == vertex id.
func NewSingletonPartitionState(numVertices int) *PartitionState {
	solution := make([]ClusterID, numVertices)
	partition := make(Partition, numVertices)
	for u := 0; u < numVertices; u++ {
		solution[u] = ClusterID(u)
		partition[ClusterID(u)] = NodeSet{Index(u): {}}
	}
	return &PartitionState{
		solution:      solution,
		partition:     partition,
		nextClusterID: ClusterID(numVertices),
	}
}

func NewPartitionStateFromSolution(solution []ClusterID) *PartitionState {
	ps := &PartitionState{}
	ps.SetSolution(solution)
	return ps
}

func (ps *PartitionState) NumberOfVertices() int {
	return len(ps.solution)
}

// Solution. the live solution vector, callers must not modify it.
func (ps *PartitionState) Solution() []ClusterID {
	return ps.solution
}

// Partition. the live partition, callers must not modify it.
func (ps *PartitionState) Partition() Partition {
	return ps.partition
}

func (ps *PartitionState) ClusterOf(u Index) ClusterID {
	return ps.solution[u]
}

func (ps *PartitionState) Members(c ClusterID) NodeSet {
	return ps.partition[c]
}

func (ps *PartitionState) ClusterSize(c ClusterID) int {
	return len(ps.partition[c])
}

func (ps *PartitionState) HasCluster(c ClusterID) bool {
	_, ok := ps.partition[c]
	return ok
}

func (ps *PartitionState) NumberOfClusters() int {
	return len(ps.partition)
}

func (ps *PartitionState) ClusterIDs() []ClusterID {
	return ps.partition.SortedIDs()
}

func (ps *PartitionState) Value() int {
	return ps.value
}

func (ps *PartitionState) SetValue(value int) {
	ps.value = value
}

func (ps *PartitionState) AddValue(delta int) {
	ps.value += delta
}

// AllocateClusterID. a cluster id that has never been live in this state.
func (ps *PartitionState) AllocateClusterID() ClusterID {
	c := ps.nextClusterID
	ps.nextClusterID++
	return c
}

func (ps *PartitionState) reserve(c ClusterID) {
	if c >= ps.nextClusterID {
		ps.nextClusterID = c + 1
	}
}

// MoveNode. move u into cluster dst, creating dst if it does not exist and deleting u's old cluster if it becomes empty.
func (ps *PartitionState) MoveNode(u Index, dst ClusterID) {
	src := ps.solution[u]
	if src == dst {
		return
	}

	members := ps.partition[src]
	delete(members, u)
	if len(members) == 0 {
		delete(ps.partition, src)
	}

	if _, ok := ps.partition[dst]; !ok {
		ps.partition[dst] = make(NodeSet)
		ps.reserve(dst)
	}
	ps.partition[dst][u] = struct{}{}
	ps.solution[u] = dst
}

// MergeClusters. move every member of c2 into c1, c2 ceases to exist.
func (ps *PartitionState) MergeClusters(c1, c2 ClusterID) {
	if c1 == c2 {
		return
	}
	dst, ok := ps.partition[c1]
	if !ok {
		dst = make(NodeSet, len(ps.partition[c2]))
		ps.partition[c1] = dst
		ps.reserve(c1)
	}
	for u := range ps.partition[c2] {
		ps.solution[u] = c1
		dst[u] = struct{}{}
	}
	delete(ps.partition, c2)
}

// IsolateNode. move u into a freshly allocated singleton cluster and return its id.
func (ps *PartitionState) IsolateNode(u Index) ClusterID {
	c := ps.AllocateClusterID()
	ps.MoveNode(u, c)
	return c
}

// SetSolution. replace the state with a copy of solution and rebuild the partition. the value is left untouched.
func (ps *PartitionState) SetSolution(solution []ClusterID) {
	ps.solution = slices.Clone(solution)
	ps.partition = SolutionToPartition(ps.solution)
	for c := range ps.partition {
		ps.reserve(c)
	}
}

// Status. a copy of the solution vector and the value, taken for rollback.
type Status struct {
	solution []ClusterID
	value    int
}

func (s Status) GetSolution() []ClusterID {
	return s.solution
}

func (s Status) GetValue() int {
	return s.value
}

func (ps *PartitionState) Snapshot() Status {
	return Status{
		solution: slices.Clone(ps.solution),
		value:    ps.value,
	}
}

func (ps *PartitionState) Restore(status Status) {
	ps.SetSolution(status.solution)
	ps.value = status.value
}

func (ps *PartitionState) Clone() *PartitionState {
	partition := make(Partition, len(ps.partition))
	for c, members := range ps.partition {
		cp := make(NodeSet, len(members))
		for u := range members {
			cp[u] = struct{}{}
		}
		partition[c] = cp
	}
	return &PartitionState{
		solution:      slices.Clone(ps.solution),
		partition:     partition,
		value:         ps.value,
		nextClusterID: ps.nextClusterID,
	}
}

// CheckConsistency. verify that solution and partition are mutual inverses and that no cluster is empty.
func (ps *PartitionState) CheckConsistency() error {
	count := 0
	for c, members := range ps.partition {
		if len(members) == 0 {
			return fmt.Errorf("cluster %d is empty", c)
		}
		for u := range members {
			if int(u) >= len(ps.solution) {
				return fmt.Errorf("cluster %d contains unknown vertex %d", c, u)
			}
			if ps.solution[u] != c {
				return fmt.Errorf("vertex %d is in cluster %d but solution says %d", u, c, ps.solution[u])
			}
			count++
		}
		if c >= ps.nextClusterID {
			return fmt.Errorf("cluster id %d not below next allocated id %d", c, ps.nextClusterID)
		}
	}
	if count != len(ps.solution) {
		return fmt.Errorf("partition covers %d vertices, solution has %d", count, len(ps.solution))
	}
	return nil
}

func SolutionToPartition(solution []ClusterID) Partition {
	partition := make(Partition)
	for u, c := range solution {
		members, ok := partition[c]
		if !ok {
			members = make(NodeSet)
			partition[c] = members
		}
		members[Index(u)] = struct{}{}
	}
	return partition
}

func PartitionToSolution(partition Partition, numVertices int) []ClusterID {
	solution := make([]ClusterID, numVertices)
	for c, members := range partition {
		for u := range members {
			solution[u] = c
		}
	}
	return solution
}

// ReformPartition. relabel clusters to 0..k-1 following ascending original ids.
func ReformPartition(partition Partition) Partition {
	reformed := make(Partition, len(partition))
	for i, c := range partition.SortedIDs() {
		reformed[ClusterID(i)] = partition[c]
	}
	return reformed
}
