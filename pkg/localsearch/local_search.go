package localsearch

import (
	"fmt"
	"slices"
	"strings"

	da "github.com/lintang-b-s/frustration-ig/pkg/datastructure"
	"github.com/lintang-b-s/frustration-ig/pkg/objective"
	"github.com/lintang-b-s/frustration-ig/pkg/util"
	"golang.org/x/exp/rand"
)

type NodeOrder uint8

const (
	RANDOM_ORDER NodeOrder = iota
	DEGREE_ORDER
)

func (o NodeOrder) String() string {
	switch o {
	case RANDOM_ORDER:
		return "random"
	case DEGREE_ORDER:
		return "degree"
	default:
		return fmt.Sprintf("NodeOrder(%d)", o)
	}
}

func ParseNodeOrder(s string) (NodeOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "random":
		return RANDOM_ORDER, nil
	case "degree":
		return DEGREE_ORDER, nil
	default:
		return 0, util.NewErrorf(util.ErrConfig, "unknown node order %q", s)
	}
}

// DEFAULT_MAX_PASSES. cap on localMove passes, guards against moves oscillating between clusters.
const DEFAULT_MAX_PASSES = 100

type LocalSearch struct {
	obj       objective.ObjectiveFunction
	nbr       *da.NeighborhoodIndex
	nodeList  []da.Index
	available []bool
	maxPasses int
}

/*
NewLocalSearch. only the available vertices are moved. with RANDOM_ORDER they are shuffled once with rng, with
DEGREE_ORDER they are sorted by descending degree (ties by id). a nil rng keeps the given order.
clusters without any available member are abandoned and never merged.
*/
func NewLocalSearch(obj objective.ObjectiveFunction, nbr *da.NeighborhoodIndex, nodeAvailable []da.Index,
	order NodeOrder, rng *rand.Rand) *LocalSearch {
	nodeList := slices.Clone(nodeAvailable)
	available := make([]bool, obj.NumberOfVertices())
	for _, u := range nodeList {
		available[u] = true
	}

	switch order {
	case DEGREE_ORDER:
		slices.SortStableFunc(nodeList, func(a, b da.Index) int {
			if degA, degB := nbr.Degree(a), nbr.Degree(b); degA != degB {
				return degB - degA
			}
			return int(a) - int(b)
		})
	default:
		if rng == nil {
			break
		}
		rng.Shuffle(len(nodeList), func(i, j int) {
			nodeList[i], nodeList[j] = nodeList[j], nodeList[i]
		})
	}

	return &LocalSearch{
		obj:       obj,
		nbr:       nbr,
		nodeList:  nodeList,
		available: available,
		maxPasses: DEFAULT_MAX_PASSES,
	}
}

func (ls *LocalSearch) SetMaxPasses(maxPasses int) {
	if maxPasses > 0 {
		ls.maxPasses = maxPasses
	}
}

func (ls *LocalSearch) GetNodeList() []da.Index {
	return ls.nodeList
}

func (ls *LocalSearch) GetObjectiveFunction() objective.ObjectiveFunction {
	return ls.obj
}

// BestMove. the adjacent cluster with the most negative move delta for u, INVALID_CLUSTER_ID if none improves.
func (ls *LocalSearch) BestMove(u da.Index) (da.ClusterID, int) {
	minDelta := 0
	candidate := da.INVALID_CLUSTER_ID
	for _, c := range ls.nbr.AdjacentClusters(u, ls.obj.State().Solution()) {
		delta := ls.obj.DeltaForMove(u, c)
		if delta < minDelta {
			minDelta = delta
			candidate = c
		}
	}
	return candidate, minDelta
}

/*
LocalMove. full passes over the node list; each vertex is moved at once to its best improving adjacent cluster.
stops after a pass without any move or after maxPasses passes. returns the number of passes and moves.
the value never increases.
*/
func (ls *LocalSearch) LocalMove() (int, int) {
	passes, moves := 0, 0
	improvement := true

	for improvement && passes < ls.maxPasses {
		improvement = false
		passes++

		for _, u := range ls.nodeList {
			candidate, minDelta := ls.BestMove(u)
			if candidate != da.INVALID_CLUSTER_ID {
				ls.obj.ApplyMove(u, candidate, minDelta)
				moves++
				improvement = true
			}
		}
	}
	return passes, moves
}

func (ls *LocalSearch) isAbandoned(members da.NodeSet) bool {
	for u := range members {
		if ls.available[u] {
			return false
		}
	}
	return true
}

/*
CommunityMerge. one pass over the live, non-abandoned clusters in ascending id order. each cluster is merged with
its best improving adjacent cluster; both are then marked used so that every cluster takes part in at most one
merge per call. returns the number of merges. the value never increases.
*/
func (ls *LocalSearch) CommunityMerge() int {
	state := ls.obj.State()

	clusterList := make([]da.ClusterID, 0, state.NumberOfClusters())
	for _, c := range state.ClusterIDs() {
		if !ls.isAbandoned(state.Members(c)) {
			clusterList = append(clusterList, c)
		}
	}

	used := make(map[da.ClusterID]struct{})
	merges := 0
	for _, c1 := range clusterList {
		if _, ok := used[c1]; ok {
			continue
		}

		minDelta := 0
		candidate := da.INVALID_CLUSTER_ID
		for _, c2 := range ls.nbr.AdjacentClustersOfCluster(c1, state.Solution(), state.Partition()) {
			if _, ok := used[c2]; ok {
				continue
			}
			delta := ls.obj.DeltaForMerge(c1, c2)
			if delta < minDelta {
				minDelta = delta
				candidate = c2
			}
		}

		if candidate != da.INVALID_CLUSTER_ID {
			ls.obj.ApplyMerge(c1, candidate, minDelta)
			used[c1] = struct{}{}
			used[candidate] = struct{}{}
			merges++
		}
	}
	return merges
}

// CommunityDecompose. splitting a cluster is not part of the search yet.
func (ls *LocalSearch) CommunityDecompose(cid da.ClusterID) {}
