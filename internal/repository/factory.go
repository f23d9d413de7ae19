package repository

import (
	"fmt"

	"github.com/ekko-ai/agentgate/internal/cache"
	"github.com/ekko-ai/agentgate/internal/clickhouse"
	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/domain/dispatch"
	"github.com/ekko-ai/agentgate/internal/domain/requestlog"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/redis"
	cacheRepo "github.com/ekko-ai/agentgate/internal/repository/cache"
	clickhouseRepo "github.com/ekko-ai/agentgate/internal/repository/clickhouse"
	redisRepo "github.com/ekko-ai/agentgate/internal/repository/redis"
	"github.com/ekko-ai/agentgate/internal/types"
)

func NewRequestLogRepository(store *clickhouse.ClickHouseStore, logger *logger.Logger) requestlog.Repository {
	return clickhouseRepo.NewRequestLogRepository(store, logger)
}

// NewSessionRepository selects the session store backend from config
func NewSessionRepository(
	cfg *config.Configuration,
	inMemoryCache *cache.InMemoryCache,
	redisClient *redis.Client,
	logger *logger.Logger,
) (dispatch.SessionRepository, error) {
	switch cfg.Sessions.Store {
	case types.SessionStoreMemory:
		return cacheRepo.NewSessionRepository(inMemoryCache, logger), nil
	case types.SessionStoreRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("redis client is not initialized but it is the session store")
		}
		return redisRepo.NewSessionRepository(redisClient, cfg, logger), nil
	}
	return nil, fmt.Errorf("unsupported session store: %s", cfg.Sessions.Store)
}
