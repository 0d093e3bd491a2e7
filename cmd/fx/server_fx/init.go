package server_fx

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"facturo/internal/api"
	"facturo/internal/config"
	"facturo/pkg/middleware"
	"facturo/pkg/validation"
)

const limiterSweepEvery = 5 * time.Minute

var Module = fx.Options(
	fx.Provide(provideRateLimiter, api.NewRouter),
	fx.Invoke(StartServer),
)

func provideRateLimiter(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) *middleware.RateLimiter {
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, log)

	stop := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				ticker := time.NewTicker(limiterSweepEvery)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						if n := limiter.Cleanup(); n > 0 {
							log.Debug("rate limiter entries evicted", zap.Int("count", n))
						}
					case <-stop:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			close(stop)
			return nil
		},
	})
	return limiter
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log *zap.Logger) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validation.Setup(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("http server listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping http server")
			return srv.Shutdown(ctx)
		},
	})
	return nil
}
