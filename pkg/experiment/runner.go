package experiment

import (
	"context"
	"runtime"
	"time"

	"github.com/lintang-b-s/frustration-ig/pkg/concurrent"
	da "github.com/lintang-b-s/frustration-ig/pkg/datastructure"
	"github.com/lintang-b-s/frustration-ig/pkg/ig"
	"github.com/lintang-b-s/frustration-ig/pkg/util"
	"go.uber.org/zap"
)

type Trial struct {
	Index       int            `json:"index"`
	Seed        uint64         `json:"seed"`
	Trajectory  []int          `json:"trajectory"`
	FinalValue  int            `json:"final_value"`
	EndPosition int            `json:"end_position"`
	NumClusters int            `json:"num_clusters"`
	Solution    []da.ClusterID `json:"-"`
	Elapsed     time.Duration  `json:"elapsed_ns"`
}

type Runner struct {
	numWorkers int
	logger     *zap.Logger
}

// NewRunner. numWorkers <= 0 means one worker per cpu.
func NewRunner(numWorkers int, logger *zap.Logger) *Runner {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{numWorkers: numWorkers, logger: logger}
}

/*
RunTrials. run `trials` independent iterated greedy searches on graph. trial i uses DeriveSeed(cfg.Seed, i), so the
result of every trial is reproducible regardless of the number of workers. every trial owns its neighborhood index,
partition state and random stream; only the read-only graph is shared.
*/
func (r *Runner) RunTrials(ctx context.Context, graph *da.SignedGraph, cfg ig.Config, trials int) ([]Trial, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if trials < 1 {
		return nil, util.NewErrorf(util.ErrBadParamInput, "number of trials must be positive, got %d", trials)
	}
	inputs := make([]int, trials)
	for i := range inputs {
		inputs[i] = i
	}

	r.logger.Info("running trials",
		zap.Int("trials", trials),
		zap.Int("workers", r.numWorkers),
		zap.Int("num_vertices", graph.NumberOfVertices()),
		zap.Int("num_edges", graph.NumberOfEdges()))

	return concurrent.RunAll(ctx, r.numWorkers, inputs, func(ctx context.Context, idx int) (Trial, error) {
		return r.runTrial(ctx, graph, cfg, idx)
	})
}

func (r *Runner) runTrial(ctx context.Context, graph *da.SignedGraph, cfg ig.Config, idx int) (Trial, error) {
	start := time.Now()
	seed := DeriveSeed(cfg.Seed, idx)
	trialCfg := cfg
	trialCfg.Seed = seed

	search, err := ig.NewIteratedGreedy(graph, trialCfg, ig.NewRand(seed), r.logger.With(zap.Int("trial", idx)))
	if err != nil {
		return Trial{}, err
	}
	trajectory, err := search.RunContext(ctx)
	if err != nil {
		return Trial{}, err
	}

	trial := Trial{
		Index:       idx,
		Seed:        seed,
		Trajectory:  trajectory,
		FinalValue:  search.Value(),
		EndPosition: EndPosition(trajectory),
		NumClusters: search.NumberOfClusters(),
		Solution:    search.Solution(),
		Elapsed:     time.Since(start),
	}
	r.logger.Info("trial complete",
		zap.Int("trial", idx),
		zap.Uint64("seed", seed),
		zap.Int("final_value", trial.FinalValue),
		zap.Int("end_position", trial.EndPosition),
		zap.Duration("elapsed", trial.Elapsed))
	return trial, nil
}

// DeriveSeed. splitmix64 step over base and the trial index; trial 0 keeps the base seed.
func DeriveSeed(base uint64, idx int) uint64 {
	if idx == 0 {
		return base
	}
	z := base + uint64(idx)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
