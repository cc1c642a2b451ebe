package main

import (
	"context"
	"errors"
	"flag"
	"os/signal"
	"syscall"

	"github.com/lintang-b-s/frustration-ig/pkg/http"
	"github.com/lintang-b-s/frustration-ig/pkg/http/usecases"
	"github.com/lintang-b-s/frustration-ig/pkg/logger"
	"github.com/lintang-b-s/frustration-ig/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configName   = flag.String("config", "config", "config file name (yaml) searched in ./data/")
	useRateLimit = flag.Bool("rate-limit", false, "per client ip token bucket rate limiting")
)

func main() {
	flag.Parse()
	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := util.ReadConfig(*configName); err != nil {
		log.Fatal("read config", zap.Error(err))
	}
	viper.SetDefault("MAX_VERTICES", 200000)
	viper.SetDefault("MAX_ITER", 20000)

	clusteringService := usecases.NewClusteringService(log, viper.GetInt("MAX_VERTICES"), viper.GetInt("MAX_ITER"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api := http.NewServer(log)
	if err := api.Use(ctx, log, *useRateLimit, clusteringService); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server stopped", zap.Error(err))
		return
	}
	log.Info("frustration-ig server stopped", zap.String("config", util.ConfigFileUsed()))
}
