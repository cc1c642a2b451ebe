package datastructure

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingletonPartitionState(t *testing.T) {
	ps := NewSingletonPartitionState(4)
	assert.Equal(t, []ClusterID{0, 1, 2, 3}, ps.Solution())
	assert.Equal(t, 4, ps.NumberOfClusters())
	assert.Equal(t, []ClusterID{0, 1, 2, 3}, ps.ClusterIDs())
	require.NoError(t, ps.CheckConsistency())
	assert.Equal(t, ClusterID(4), ps.AllocateClusterID())
}

func TestMoveNode(t *testing.T) {
	ps := NewSingletonPartitionState(4)

	ps.MoveNode(0, 1)
	assert.False(t, ps.HasCluster(0), "empty cluster must disappear")
	assert.Equal(t, ClusterID(1), ps.ClusterOf(0))
	assert.Equal(t, []Index{0, 1}, ps.Members(1).Sorted())
	require.NoError(t, ps.CheckConsistency())

	ps.MoveNode(1, 9)
	assert.True(t, ps.HasCluster(9))
	assert.Equal(t, 1, ps.ClusterSize(9))
	assert.Equal(t, 1, ps.ClusterSize(1))
	require.NoError(t, ps.CheckConsistency())
	assert.Equal(t, ClusterID(10), ps.AllocateClusterID(), "ids below a live cluster are never handed out")

	ps.MoveNode(2, 2)
	assert.Equal(t, []Index{2}, ps.Members(2).Sorted())
	require.NoError(t, ps.CheckConsistency())
}

func TestMergeClusters(t *testing.T) {
	ps := NewPartitionStateFromSolution([]ClusterID{0, 0, 3, 3, 5})

	ps.MergeClusters(0, 3)
	assert.Equal(t, []ClusterID{0, 0, 0, 0, 5}, ps.Solution())
	assert.False(t, ps.HasCluster(3))
	assert.Equal(t, 2, ps.NumberOfClusters())
	require.NoError(t, ps.CheckConsistency())

	ps.MergeClusters(5, 5)
	assert.Equal(t, 2, ps.NumberOfClusters())
}

func TestIsolateNode(t *testing.T) {
	ps := NewPartitionStateFromSolution([]ClusterID{0, 0, 0})

	seen := map[ClusterID]bool{0: true}
	for round := 0; round < 3; round++ {
		for u := Index(0); u < 3; u++ {
			c := ps.IsolateNode(u)
			assert.False(t, seen[c], "cluster id %d handed out twice", c)
			seen[c] = true
			require.NoError(t, ps.CheckConsistency())
		}
		// bring everything back together under an old id
		ps.MoveNode(1, ps.ClusterOf(0))
		ps.MoveNode(2, ps.ClusterOf(0))
	}
}

func TestSnapshotRestore(t *testing.T) {
	ps := NewPartitionStateFromSolution([]ClusterID{0, 0, 1, 2})
	ps.SetValue(3)

	status := ps.Snapshot()
	ps.MoveNode(2, 0)
	ps.IsolateNode(0)
	ps.AddValue(-2)

	assert.Equal(t, 1, ps.Value())
	assert.Equal(t, []ClusterID{0, 0, 1, 2}, status.GetSolution())
	assert.Equal(t, 3, status.GetValue())

	next := ps.AllocateClusterID()
	ps.Restore(status)
	assert.Equal(t, []ClusterID{0, 0, 1, 2}, ps.Solution())
	assert.Equal(t, 3, ps.Value())
	require.NoError(t, ps.CheckConsistency())
	assert.Greater(t, ps.AllocateClusterID(), next)

	clone := ps.Clone()
	clone.MoveNode(3, 0)
	assert.Equal(t, ClusterID(2), ps.ClusterOf(3))
	assert.True(t, ps.HasCluster(2))
}

func TestCheckConsistencyDetectsCorruption(t *testing.T) {
	ps := NewPartitionStateFromSolution([]ClusterID{0, 1})
	ps.solution[1] = 0
	assert.Error(t, ps.CheckConsistency())

	ps = NewPartitionStateFromSolution([]ClusterID{0, 1})
	ps.partition[4] = NodeSet{}
	assert.Error(t, ps.CheckConsistency())
}

func TestConversions(t *testing.T) {
	solution := []ClusterID{7, 3, 7, 12, 3}
	partition := SolutionToPartition(solution)
	assert.Equal(t, []ClusterID{3, 7, 12}, partition.SortedIDs())
	assert.Equal(t, []Index{0, 2}, partition[7].Sorted())
	assert.Equal(t, solution, PartitionToSolution(partition, len(solution)))

	reformed := ReformPartition(partition)
	assert.Equal(t, []ClusterID{0, 1, 2}, reformed.SortedIDs())
	assert.Equal(t, []ClusterID{1, 0, 1, 2, 0}, PartitionToSolution(reformed, len(solution)))
}

func TestWritePartition(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePartition(&buf, []ClusterID{7, 3, 7, 12}))
	assert.Equal(t, "0 1\n1 0\n2 1\n3 2\n", buf.String())

	path := filepath.Join(t.TempDir(), "partition.txt.bz2")
	require.NoError(t, WritePartitionFile(path, []ClusterID{0, 0, 1}))
}
