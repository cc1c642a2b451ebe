package http

import (
	"context"

	http_router "github.com/lintang-b-s/frustration-ig/pkg/http/router"
	"github.com/lintang-b-s/frustration-ig/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/frustration-ig/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use. serve the API until ctx is canceled or the server fails.
func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	useRateLimit bool,
	clusteringService controllers.ClusteringService,
) error {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "300s")
	viper.SetDefault("RATE_LIMIT_RPS", 2)
	viper.SetDefault("RATE_LIMIT_BURST", 4)
	viper.SetDefault("RATE_LIMIT_TTL", "3m")

	config := http_server.Config{
		Port:    viper.GetInt("API_PORT"),
		Timeout: viper.GetDuration("API_TIMEOUT"),
	}
	rateLimit := http_router.RateLimitConfig{
		RPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
		Burst: viper.GetInt("RATE_LIMIT_BURST"),
		TTL:   viper.GetDuration("RATE_LIMIT_TTL"),
	}

	server := http_router.NewAPI(log)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(
			ctx, config,
			useRateLimit, rateLimit, clusteringService,
		)
	})

	return g.Wait()
}
