package usecases

import (
	"context"
	"time"

	da "github.com/lintang-b-s/frustration-ig/pkg/datastructure"
	"github.com/lintang-b-s/frustration-ig/pkg/ig"
	"github.com/lintang-b-s/frustration-ig/pkg/util"
	"go.uber.org/zap"
)

type Edge struct {
	U    int
	V    int
	Sign int
}

type ClusteringRequest struct {
	VertexCount int
	Edges       []Edge
	Config      ig.Config
}

type ClusteringResult struct {
	Frustration int
	NumClusters int
	Trajectory  []int
	Partition   [][]da.Index
	Elapsed     time.Duration
}

type ClusteringService struct {
	log         *zap.Logger
	maxVertices int
	maxIter     int
}

// NewClusteringService. maxVertices and maxIter bound the size of a single request, 0 means unbounded.
func NewClusteringService(log *zap.Logger, maxVertices, maxIter int) *ClusteringService {
	return &ClusteringService{
		log:         log,
		maxVertices: maxVertices,
		maxIter:     maxIter,
	}
}

func (cs *ClusteringService) BuildGraph(vertexCount int, edges []Edge) (*da.SignedGraph, error) {
	if cs.maxVertices > 0 && vertexCount > cs.maxVertices {
		return nil, util.NewErrorf(util.ErrBadParamInput, "vertex_count %d exceeds the limit of %d", vertexCount, cs.maxVertices)
	}
	builder := da.NewSignedGraphBuilder(vertexCount)
	for i, e := range edges {
		if e.U < 0 || e.V < 0 {
			return nil, util.NewErrorf(util.ErrBadParamInput, "edge %d: negative vertex id", i)
		}
		if err := builder.AddEdge(da.Index(e.U), da.Index(e.V), da.Sign(e.Sign)); err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "edge %d", i)
		}
	}
	return builder.Build(), nil
}

/*
Cluster. run one iterated greedy search over the request graph. hook, if not nil, receives a report after every
iteration. a canceled ctx stops the search between iterations and its error is returned as is.
*/
func (cs *ClusteringService) Cluster(ctx context.Context, req ClusteringRequest, hook ig.IterationHook) (ClusteringResult, error) {
	if cs.maxIter > 0 && req.Config.MaxIter > cs.maxIter {
		return ClusteringResult{}, util.NewErrorf(util.ErrBadParamInput, "max_iter %d exceeds the limit of %d", req.Config.MaxIter, cs.maxIter)
	}
	graph, err := cs.BuildGraph(req.VertexCount, req.Edges)
	if err != nil {
		return ClusteringResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return ClusteringResult{}, err
	}

	start := time.Now()
	search, err := ig.NewIteratedGreedy(graph, req.Config, ig.NewRand(req.Config.Seed), cs.log)
	if err != nil {
		return ClusteringResult{}, util.WrapErrorf(err, util.ErrBadParamInput, "invalid clustering parameters")
	}
	search.SetIterationHook(hook)

	trajectory, err := search.RunContext(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ClusteringResult{}, ctxErr
		}
		return ClusteringResult{}, util.WrapErrorf(err, util.ErrInternalServerError, "iterated greedy failed")
	}

	reformed := da.ReformPartition(search.Partition())
	partition := make([][]da.Index, len(reformed))
	for cid, members := range reformed {
		partition[cid] = members.Sorted()
	}

	return ClusteringResult{
		Frustration: search.Value(),
		NumClusters: search.NumberOfClusters(),
		Trajectory:  trajectory,
		Partition:   partition,
		Elapsed:     time.Since(start),
	}, nil
}
