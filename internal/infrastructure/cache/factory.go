package cache

import (
	"fmt"

	"github.com/pharmacare/backend/internal/infrastructure/config"
)

// NewStore creates the cache store named by the configuration.
// Falls back to nothing: an unknown backend is an error.
func NewStore(cfg *config.Config, keyPrefix string) (Store, error) {
	switch cfg.Cache.Backend {
	case "redis":
		return NewRedisStore(cfg.Redis, keyPrefix)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
