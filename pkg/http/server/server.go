package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port    int
	Timeout time.Duration
}

// New. http.Server bound to ctx. the write timeout covers the whole request budget, a clustering run included.
func New(ctx context.Context, handler http.Handler, config Config) *http.Server {
	viper.SetDefault("HTTP_SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_WRITE_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", "60s")
	viper.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", "5s")

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Port),
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
		ReadTimeout:       viper.GetDuration("HTTP_SERVER_READ_TIMEOUT"),
		WriteTimeout:      config.Timeout + viper.GetDuration("HTTP_SERVER_WRITE_TIMEOUT"),
		IdleTimeout:       viper.GetDuration("HTTP_SERVER_IDLE_TIMEOUT"),
		ReadHeaderTimeout: viper.GetDuration("HTTP_SERVER_READ_HEADER_TIMEOUT"),
	}
}
