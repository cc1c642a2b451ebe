package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	da "github.com/lintang-b-s/frustration-ig/pkg/datastructure"
	"github.com/lintang-b-s/frustration-ig/pkg/experiment"
	"github.com/lintang-b-s/frustration-ig/pkg/ig"
	"github.com/lintang-b-s/frustration-ig/pkg/logger"
	"github.com/lintang-b-s/frustration-ig/pkg/util"
	"go.uber.org/zap"
)

var (
	configName  = flag.String("config", "config", "config file name (yaml) searched in ./data/")
	graphPath   = flag.String("graph", "./data/graph.g", "graph file, .bz2 is decompressed")
	networkType = flag.String("type", "signed", "network type: signed or unsigned")
	oneIndexed  = flag.Bool("one-indexed", false, "node ids in the graph file start at 1")
	trials      = flag.Int("trials", 1, "number of independent runs")
	workers     = flag.Int("workers", 0, "concurrent runs, 0 = number of cpus")
	beta        = flag.Float64("beta", ig.DEFAULT_BETA, "destruction ratio")
	maxIter     = flag.Int("max-iter", ig.DEFAULT_MAX_ITER, "iterations per run")
	acceptance  = flag.String("acceptance", ig.DEFAULT_ACCEPTANCE, "acceptance criterion: better or metropolis")
	alpha       = flag.Float64("alpha", ig.DEFAULT_ALPHA, "temperature decay of the metropolis criterion")
	seed        = flag.Uint64("seed", ig.DEFAULT_SEED, "base random seed")
	nodeOrder   = flag.String("node-order", ig.DEFAULT_NODE_ORDER, "local search visiting order: random or degree")
	output      = flag.String("output", "", "write the best partition as \"node cluster\" lines")
	verbose     = flag.Bool("verbose", false, "log every iteration")
)

func main() {
	flag.Parse()

	var (
		log *zap.Logger
		err error
	)
	if *verbose {
		log, err = logger.NewDevelopment()
	} else {
		log, err = logger.New()
	}
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := util.ReadConfig(*configName); err != nil {
		log.Fatal("read config", zap.Error(err))
	}
	cfg := overrideFromFlags(ig.ConfigFromViper())
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}

	nt, err := da.ParseNetworkType(*networkType)
	if err != nil {
		log.Fatal("invalid network type", zap.Error(err))
	}

	graph, err := da.ReadSignedGraph(*graphPath, nt, *oneIndexed)
	if err != nil {
		log.Fatal("read graph", zap.Error(err), zap.String("path", *graphPath))
	}
	log.Info("graph loaded",
		zap.String("path", *graphPath),
		zap.String("config", util.ConfigFileUsed()),
		zap.Int("num_vertices", graph.NumberOfVertices()),
		zap.Int("num_edges", graph.NumberOfEdges()),
		zap.Int("positive_edges", graph.NumberOfPositiveEdges()),
		zap.Int("negative_edges", graph.NumberOfNegativeEdges()),
		zap.Float64("estimated_clusters", da.EstimateCommunityNumbers(graph.NumberOfVertices())))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := experiment.NewRunner(*workers, log)
	results, err := runner.RunTrials(ctx, graph, cfg, *trials)
	if err != nil {
		log.Fatal("run trials", zap.Error(err))
	}

	summary := experiment.Summarize(results)
	log.Info("summary",
		zap.Int("trials", summary.Trials),
		zap.Int("best_trial", summary.BestTrial),
		zap.Int("best_value", summary.BestValue),
		zap.Float64("mean_final_value", summary.MeanFinalValue),
		zap.Float64("std_final_value", summary.StdFinalValue),
		zap.Float64("median_final_value", summary.MedianFinal),
		zap.Float64("mean_end_position", summary.MeanEndPosition),
		zap.Float64("std_end_position", summary.StdEndPosition))

	if *output != "" {
		best := results[summary.BestTrial]
		if err := da.WritePartitionFile(*output, best.Solution); err != nil {
			log.Fatal("write partition", zap.Error(err), zap.String("path", *output))
		}
		log.Info("partition written", zap.String("path", *output), zap.Int("num_clusters", best.NumClusters))
	}
}

// overrideFromFlags. flags given on the command line win over the config file.
func overrideFromFlags(cfg ig.Config) ig.Config {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "beta":
			cfg.Beta = *beta
		case "max-iter":
			cfg.MaxIter = *maxIter
		case "acceptance":
			cfg.Acceptance = *acceptance
		case "alpha":
			cfg.Alpha = *alpha
		case "seed":
			cfg.Seed = *seed
		case "node-order":
			cfg.NodeOrder = *nodeOrder
		}
	})
	return cfg
}
