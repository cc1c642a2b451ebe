package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/lintang-b-s/frustration-ig/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/frustration-ig/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/frustration-ig/pkg/http/server"
	"github.com/rs/cors"
	"go.uber.org/zap"

	httpSwagger "github.com/swaggo/http-swagger"
)

type API struct {
	log *zap.Logger
	hub *controllers.Hub
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

//	@title			frustration-ig API
//	@version		1.0
//	@description	signed graph clustering by frustration minimization with an iterated greedy search.

//	@license.name	BSD License
//	@license.url	https://opensource.org/license/bsd-2-clause

// @host		localhost
// @BasePath	/api
func (api *API) Handler(useRateLimit bool, rateLimit RateLimitConfig, clusteringService controllers.ClusteringService) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	router.GET("/doc/*any", swaggerHandler)

	group := router_helper.NewRouteGroup(router, "/api")

	api.hub = controllers.NewHub(clusteringService)
	clusteringRoutes := controllers.New(clusteringService, api.hub, api.log)
	clusteringRoutes.Routes(group)

	mwChain := []alice.Constructor{corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(api.log)}
	if useRateLimit {
		mwChain = append(mwChain, NewLimiter(rateLimit).Limit)
	}
	return alice.New(mwChain...).Then(router)
}

func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	useRateLimit bool,
	rateLimit RateLimitConfig,
	clusteringService controllers.ClusteringService,
) error {
	api.log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(useRateLimit, rateLimit, clusteringService), config)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		api.log.Info("HTTP server stopped", zap.Error(err))
		api.hub.RemoveAllUser()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		api.log.Info("Context canceled, shutting down server")
		api.hub.RemoveAllUser()
		_ = srv.Shutdown(context.Background())
		return ctx.Err()
	}
}

func swaggerHandler(res http.ResponseWriter, req *http.Request, p httprouter.Params) {
	httpSwagger.WrapHandler(res, req)
}
