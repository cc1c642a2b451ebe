package main

import (
	"flag"

	"github.com/lintang-b-s/frustration-ig/pkg/generator"
	"github.com/lintang-b-s/frustration-ig/pkg/ig"
	"github.com/lintang-b-s/frustration-ig/pkg/logger"
	"go.uber.org/zap"
)

var (
	n      = flag.Int("n", 1000, "number of vertices")
	k      = flag.Int("k", 10, "number of planted groups")
	pIn    = flag.Float64("p-in", 0.1, "edge probability inside a group")
	pOut   = flag.Float64("p-out", 0.01, "edge probability between groups")
	noise  = flag.Float64("noise", 0.05, "sign flip probability")
	seed   = flag.Uint64("seed", 1, "random seed")
	output = flag.String("output", "./data/planted.g", "graph file, .bz2 is compressed")
	truth  = flag.String("truth", "", "write the planted groups as \"node cluster\" lines")
)

func main() {
	flag.Parse()
	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	graph, groups, err := generator.PlantedPartition(*n, *k, *pIn, *pOut, *noise, ig.NewRand(*seed))
	if err != nil {
		log.Fatal("generate graph", zap.Error(err))
	}
	if err := graph.WriteGraph(*output); err != nil {
		log.Fatal("write graph", zap.Error(err), zap.String("path", *output))
	}
	log.Info("planted partition graph written",
		zap.String("path", *output),
		zap.Int("num_vertices", graph.NumberOfVertices()),
		zap.Int("num_edges", graph.NumberOfEdges()),
		zap.Int("positive_edges", graph.NumberOfPositiveEdges()),
		zap.Int("negative_edges", graph.NumberOfNegativeEdges()))

	if *truth != "" {
		if err := generator.WriteGroups(*truth, groups); err != nil {
			log.Fatal("write planted groups", zap.Error(err), zap.String("path", *truth))
		}
	}
}
