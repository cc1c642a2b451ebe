package experiment

import (
	"context"

	da "github.com/lintang-b-s/frustration-ig/pkg/datastructure"
	"golang.org/x/sync/errgroup"
)

// LoadDatasets. read every graph file concurrently; graphs are returned in the order of paths.
func LoadDatasets(ctx context.Context, paths []string, networkType da.NetworkType, oneIndexed bool) ([]*da.SignedGraph, error) {
	graphs := make([]*da.SignedGraph, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			graph, err := da.ReadSignedGraph(path, networkType, oneIndexed)
			if err != nil {
				return err
			}
			graphs[i] = graph
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return graphs, nil
}
