package memcache_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"facturo/internal/config"
	"facturo/internal/infra"
	mem "facturo/pkg/memcache"
)

var Module = fx.Provide(provideRevocationStore)

// provideRevocationStore uses Redis when REDIS_ADDR is set so that logouts
// are shared between API replicas, and process memory otherwise.
func provideRevocationStore(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (mem.RevocationStore, error) {
	if cfg.RedisAddr == "" {
		log.Info("token revocation kept in memory")
		return mem.NewRevokedTokens(), nil
	}

	client, err := infra.InitRedis(context.Background(), cfg.RedisAddr)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	log.Info("token revocation backed by redis", zap.String("addr", cfg.RedisAddr))
	return mem.NewRedisRevocationStore(client), nil
}
