package controllers

import (
	"context"

	"github.com/lintang-b-s/frustration-ig/pkg/http/usecases"
	"github.com/lintang-b-s/frustration-ig/pkg/ig"
)

type ClusteringService interface {
	Cluster(ctx context.Context, req usecases.ClusteringRequest, hook ig.IterationHook) (usecases.ClusteringResult, error)
}
