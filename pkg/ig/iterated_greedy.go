package ig

import (
	"context"
	"time"

	da "github.com/lintang-b-s/frustration-ig/pkg/datastructure"
	"github.com/lintang-b-s/frustration-ig/pkg/initialization"
	"github.com/lintang-b-s/frustration-ig/pkg/localsearch"
	"github.com/lintang-b-s/frustration-ig/pkg/objective"
	"github.com/lintang-b-s/frustration-ig/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// NewRand. the seedable random stream shared by every component of one run.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

type IterationReport struct {
	Iteration   int           `json:"iteration"`
	Value       int           `json:"value"`
	NumClusters int           `json:"num_clusters"`
	Accepted    bool          `json:"accepted"`
	Destructed  int           `json:"destructed"`
	Elapsed     time.Duration `json:"elapsed_ns"`
}

// IterationHook. called synchronously after the acceptance step of every iteration.
type IterationHook func(report IterationReport)

/*
IteratedGreedy. minimizes the frustration index of a signed graph:

 1. s <- greedy initialization (local moves from the all-singleton partition)
 2. s <- local search (local moves, then cluster merges)
 3. for maxIter iterations:
    destroy a random beta fraction of the available vertices into singletons,
    reinsert them greedily, polish with local search,
    keep or revert according to the acceptance criterion.

every component mutates the single partition state held by the frustration objective. not safe for concurrent use.
*/
type IteratedGreedy struct {
	graph       *da.SignedGraph
	nbr         *da.NeighborhoodIndex
	obj         *objective.Frustration
	ls          *localsearch.LocalSearch
	initializer *initialization.Initialization
	rng         *rand.Rand

	beta        float64
	alpha       float64
	maxIter     int
	acceptance  Acceptance
	temperature float64

	nodeAvailable []da.Index
	numAlone      int
	numIsolated   int
	initialized   bool

	hook   IterationHook
	logger *zap.Logger
}

func NewIteratedGreedy(graph *da.SignedGraph, cfg Config, rng *rand.Rand, logger *zap.Logger) (*IteratedGreedy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	acceptance, err := ParseAcceptance(cfg.Acceptance)
	if err != nil {
		return nil, err
	}
	order, err := localsearch.ParseNodeOrder(cfg.NodeOrder)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ig := &IteratedGreedy{
		graph:       graph,
		nbr:         da.NewNeighborhoodIndex(graph),
		rng:         rng,
		beta:        cfg.Beta,
		alpha:       cfg.Alpha,
		maxIter:     cfg.MaxIter,
		acceptance:  acceptance,
		temperature: -1,
		logger:      logger,
	}
	ig.nodeAvailable = ig.pretreatment()

	ig.obj, err = objective.NewFrustration(graph, ig.nbr, nil)
	if err != nil {
		return nil, err
	}
	ig.ls = localsearch.NewLocalSearch(ig.obj, ig.nbr, ig.nodeAvailable, order, rng)
	ig.ls.SetMaxPasses(cfg.MaxPasses)
	ig.initializer = initialization.NewInitialization(ig.nbr, order, rng)
	ig.initializer.SetMaxPasses(cfg.MaxPasses)

	return ig, nil
}

/*
pretreatment. vertices without edges ("alone") and vertices without positive neighbors ("isolated") can never
improve the objective by moving; the isolated ones are pruned from the neighborhood index. returns the remaining
vertices in ascending order.
*/
func (ig *IteratedGreedy) pretreatment() []da.Index {
	for u := 0; u < ig.graph.NumberOfVertices(); u++ {
		if !ig.nbr.Has(da.Index(u)) {
			ig.numAlone++
		}
	}
	ig.numIsolated = len(ig.nbr.PruneIsolated())

	_, available := ig.nbr.AvailableNodes()
	return available
}

func (ig *IteratedGreedy) SetIterationHook(hook IterationHook) {
	ig.hook = hook
}

// Initialization. greedy construction; the temperature starts at the resulting value.
func (ig *IteratedGreedy) Initialization() error {
	if _, err := ig.initializer.GreedyInitialization(ig.obj); err != nil {
		return err
	}
	ig.temperature = float64(ig.obj.Value())
	ig.initialized = true

	ig.logger.Info("initialization complete",
		zap.Int("initial_value", ig.obj.Value()),
		zap.Int("num_initial_clusters", ig.obj.State().NumberOfClusters()),
		zap.Int("alone", ig.numAlone),
		zap.Int("isolated", ig.numIsolated))
	return nil
}

// Run. run maxIter iterations and return the value after each of them. the last element is the final result.
func (ig *IteratedGreedy) Run() ([]int, error) {
	return ig.RunContext(context.Background())
}

/*
RunContext. like Run, but ctx is checked between iterations. on cancellation the values of the completed iterations
are returned together with ctx.Err(); the partition state stays consistent.
*/
func (ig *IteratedGreedy) RunContext(ctx context.Context) ([]int, error) {
	start := time.Now()
	if !ig.initialized {
		if err := ig.Initialization(); err != nil {
			return nil, err
		}
	}

	ig.ls.LocalMove()
	ig.ls.CommunityMerge()

	bestValues := make([]int, 0, ig.maxIter)
	for it := 1; it <= ig.maxIter; it++ {
		if util.StopConcurrentOperation(ctx) {
			ig.logger.Info("iterated greedy canceled",
				zap.Int("completed_iterations", len(bestValues)),
				zap.Int("value", ig.obj.Value()))
			return bestValues, ctx.Err()
		}
		status := ig.RecordStatus()
		destructed := ig.DestructionAndReconstruction()
		ig.ls.LocalMove()
		ig.ls.CommunityMerge()

		accepted := ig.AcceptanceCriterion(status)
		bestValues = append(bestValues, ig.obj.Value())

		report := IterationReport{
			Iteration:   it,
			Value:       ig.obj.Value(),
			NumClusters: ig.NumberOfClusters(),
			Accepted:    accepted,
			Destructed:  destructed,
			Elapsed:     time.Since(start),
		}
		ig.logger.Debug("iteration",
			zap.Int("iteration", it),
			zap.Int("max_iter", ig.maxIter),
			zap.Int("value", report.Value),
			zap.Int("num_clusters", report.NumClusters),
			zap.Bool("accepted", accepted))
		if ig.hook != nil {
			ig.hook(report)
		}
	}

	if len(bestValues) > 0 {
		ig.logger.Info("iterated greedy complete",
			zap.Int("best_value", bestValues[len(bestValues)-1]),
			zap.Int("num_clusters", ig.NumberOfClusters()),
			zap.Duration("elapsed", time.Since(start)))
	}
	return bestValues, nil
}

// DestructionAndReconstruction. returns the number of destructed vertices.
func (ig *IteratedGreedy) DestructionAndReconstruction() int {
	destructed := ig.Destruction()
	ig.Reconstruction(destructed)
	return len(destructed)
}

/*
Destruction. draw floor(beta * |available|) distinct available vertices uniformly without replacement and
decompose each of them into its own singleton cluster. vertices whose decompose delta is 0 (already alone, or
balanced) stay where they are. returns the drawn vertices in draw order.
*/
func (ig *IteratedGreedy) Destruction() []da.Index {
	k := int(ig.beta * float64(len(ig.nodeAvailable)))
	removed := sample(ig.rng, ig.nodeAvailable, k)

	for _, u := range removed {
		delta := ig.obj.DeltaForDecompose(u)
		ig.obj.ApplyDecompose(u, delta)
	}
	return removed
}

// Reconstruction. move each destructed vertex, in draw order, to its best improving adjacent cluster if one exists.
func (ig *IteratedGreedy) Reconstruction(isolated []da.Index) {
	for _, u := range isolated {
		candidate, minDelta := ig.ls.BestMove(u)
		if candidate != da.INVALID_CLUSTER_ID {
			ig.obj.ApplyMove(u, candidate, minDelta)
		}
	}
}

// sample. k distinct elements of population, partial fisher-yates over a copy.
func sample(rng *rand.Rand, population []da.Index, k int) []da.Index {
	if k > len(population) {
		k = len(population)
	}
	if k <= 0 {
		return []da.Index{}
	}
	pool := make([]da.Index, len(population))
	copy(pool, population)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

func (ig *IteratedGreedy) Value() int {
	return ig.obj.Value()
}

func (ig *IteratedGreedy) Temperature() float64 {
	return ig.temperature
}

// NumberOfClusters. live clusters, not counting the singleton clusters of alone and isolated vertices.
func (ig *IteratedGreedy) NumberOfClusters() int {
	return ig.obj.State().NumberOfClusters() - (ig.graph.NumberOfVertices() - len(ig.nodeAvailable))
}

func (ig *IteratedGreedy) Solution() []da.ClusterID {
	return ig.obj.State().Solution()
}

func (ig *IteratedGreedy) Partition() da.Partition {
	return ig.obj.State().Partition()
}

func (ig *IteratedGreedy) GetNodeAvailable() []da.Index {
	return ig.nodeAvailable
}

func (ig *IteratedGreedy) GetObjectiveFunction() *objective.Frustration {
	return ig.obj
}

func (ig *IteratedGreedy) GetLocalSearch() *localsearch.LocalSearch {
	return ig.ls
}

func (ig *IteratedGreedy) GetNeighborhood() *da.NeighborhoodIndex {
	return ig.nbr
}
