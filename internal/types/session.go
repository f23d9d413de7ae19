package types

// SessionStoreType selects the backend that holds dispatch sessions
type SessionStoreType string

const (
	// SessionStoreMemory keeps sessions in the in-process TTL cache
	SessionStoreMemory SessionStoreType = "memory"
	// SessionStoreRedis keeps sessions in Redis so they survive restarts
	// and are shared across gateway replicas
	SessionStoreRedis SessionStoreType = "redis"
)
