package initialization

import (
	da "github.com/lintang-b-s/frustration-ig/pkg/datastructure"
	"github.com/lintang-b-s/frustration-ig/pkg/localsearch"
	"github.com/lintang-b-s/frustration-ig/pkg/objective"
	"golang.org/x/exp/rand"
)

type Initialization struct {
	nbr       *da.NeighborhoodIndex
	order     localsearch.NodeOrder
	maxPasses int
	rng       *rand.Rand
}

func NewInitialization(nbr *da.NeighborhoodIndex, order localsearch.NodeOrder, rng *rand.Rand) *Initialization {
	return &Initialization{
		nbr:       nbr,
		order:     order,
		maxPasses: localsearch.DEFAULT_MAX_PASSES,
		rng:       rng,
	}
}

func (in *Initialization) SetMaxPasses(maxPasses int) {
	in.maxPasses = maxPasses
}

// DefaultInitialization. every vertex in its own cluster.
func (in *Initialization) DefaultInitialization(numVertices int) *da.PartitionState {
	return da.NewSingletonPartitionState(numVertices)
}

/*
GreedyInitialization. reset obj to the all-singleton partition and run LocalMove over the available vertices until
no vertex improves. the value is recomputed from scratch at the end. returns the resulting state, which is the
state held by obj.
*/
func (in *Initialization) GreedyInitialization(obj objective.ObjectiveFunction) (*da.PartitionState, error) {
	singleton := in.DefaultInitialization(obj.NumberOfVertices())
	obj.SetSolution(singleton.Solution())
	if _, err := obj.Update(); err != nil {
		return nil, err
	}

	_, nodeAvailable := in.nbr.AvailableNodes()
	ls := localsearch.NewLocalSearch(obj, in.nbr, nodeAvailable, in.order, in.rng)
	ls.SetMaxPasses(in.maxPasses)
	ls.LocalMove()

	if _, err := obj.Update(); err != nil {
		return nil, err
	}
	return obj.State(), nil
}
