package controllers

import (
	da "github.com/lintang-b-s/frustration-ig/pkg/datastructure"
	"github.com/lintang-b-s/frustration-ig/pkg/http/usecases"
	"github.com/lintang-b-s/frustration-ig/pkg/ig"
)

// clusterRequest. edges are [u, v, sign] triples with 0-based vertex ids and sign 1 or -1.
type clusterRequest struct {
	VertexCount int      `json:"vertex_count" validate:"required,min=1"`
	Edges       [][3]int `json:"edges"`
	Beta        float64  `json:"beta" validate:"gt=0,lte=1"`
	MaxIter     int      `json:"max_iter" validate:"min=1"`
	Acceptance  string   `json:"acceptance" validate:"oneof=better metropolis"`
	Alpha       float64  `json:"alpha" validate:"gt=0,lte=1"`
	Seed        uint64   `json:"seed"`
	NodeOrder   string   `json:"node_order" validate:"oneof=random degree"`
}

// newClusterRequest. fields absent from the request body keep the iterated greedy defaults.
func newClusterRequest() clusterRequest {
	cfg := ig.DefaultConfig()
	return clusterRequest{
		Beta:       cfg.Beta,
		MaxIter:    cfg.MaxIter,
		Acceptance: cfg.Acceptance,
		Alpha:      cfg.Alpha,
		Seed:       cfg.Seed,
		NodeOrder:  cfg.NodeOrder,
	}
}

func (req clusterRequest) toClusteringRequest() usecases.ClusteringRequest {
	cfg := ig.DefaultConfig()
	cfg.Beta = req.Beta
	cfg.MaxIter = req.MaxIter
	cfg.Acceptance = req.Acceptance
	cfg.Alpha = req.Alpha
	cfg.Seed = req.Seed
	cfg.NodeOrder = req.NodeOrder

	edges := make([]usecases.Edge, len(req.Edges))
	for i, e := range req.Edges {
		edges[i] = usecases.Edge{U: e[0], V: e[1], Sign: e[2]}
	}
	return usecases.ClusteringRequest{
		VertexCount: req.VertexCount,
		Edges:       edges,
		Config:      cfg,
	}
}

type clusterResponse struct {
	Frustration int          `json:"frustration"`
	NumClusters int          `json:"num_clusters"`
	Trajectory  []int        `json:"trajectory"`
	Partition   [][]da.Index `json:"partition"`
	ElapsedMs   float64      `json:"elapsed_ms"`
}

func NewClusterResponse(res usecases.ClusteringResult) clusterResponse {
	return clusterResponse{
		Frustration: res.Frustration,
		NumClusters: res.NumClusters,
		Trajectory:  res.Trajectory,
		Partition:   res.Partition,
		ElapsedMs:   float64(res.Elapsed.Microseconds()) / 1000,
	}
}

type iterationResponse struct {
	Iteration   int  `json:"iteration"`
	Value       int  `json:"value"`
	NumClusters int  `json:"num_clusters"`
	Accepted    bool `json:"accepted"`
}

func NewIterationResponse(report ig.IterationReport) iterationResponse {
	return iterationResponse{
		Iteration:   report.Iteration,
		Value:       report.Value,
		NumClusters: report.NumClusters,
		Accepted:    report.Accepted,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
