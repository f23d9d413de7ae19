package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/types"
)

// Client wraps the go-redis client used by the redis session store
type Client struct {
	rdb    *goredis.Client
	logger *logger.Logger
}

// NewClient connects to redis when the session store is configured to use
// it, otherwise it returns nil so memory-only deployments skip the
// connection entirely
func NewClient(cfg *config.Configuration, log *logger.Logger) (*Client, error) {
	if cfg.Sessions.Store != types.SessionStoreRedis {
		return nil, nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("init redis client: %w", err)
	}

	log.Infow("connected to redis", "address", cfg.Redis.Address, "db", cfg.Redis.DB)

	return &Client{
		rdb:    rdb,
		logger: log,
	}, nil
}

// DB returns the underlying go-redis client
func (c *Client) DB() *goredis.Client {
	return c.rdb
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
