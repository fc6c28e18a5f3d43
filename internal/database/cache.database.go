package database

import (
	"context"
	"fmt"
	"time"

	"raftwatch/config"

	"github.com/valkey-io/valkey-go"
)

// Valkey database index organization
const (
	// GENERAL_CACHE_INDEX (DB 0) - short-lived read caches such as the
	// dashboard alert summary
	GENERAL_CACHE_INDEX = iota

	// EVENTS_CACHE_INDEX (DB 1) - pub/sub backing for the event bus
	EVENTS_CACHE_INDEX
)

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")
	log.Info("initializing cache database")

	address := config.DatabaseCacheAddress
	port := config.DatabaseCachePort
	if address == "" || port == 0 {
		return log.Error("cache address or port is empty")
	}

	var cacheDB Cache

	var err error
	cacheDB.General, err = valkey.NewClient(
		valkey.ClientOption{
			InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
			SelectDB:    GENERAL_CACHE_INDEX,
		},
	)
	if err != nil {
		return log.Err("failed to create general valkey client", err)
	}

	cacheDB.Events, err = valkey.NewClient(
		valkey.ClientOption{
			InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
			SelectDB:    EVENTS_CACHE_INDEX,
		},
	)
	if err != nil {
		return log.Err("failed to create events valkey client", err)
	}

	s.Cache = cacheDB

	log.Info("cache database initialized")
	return nil
}

// CacheGet reads a key from the general cache. A missing key returns an
// empty string and no error.
func (s *DB) CacheGet(ctx context.Context, key string) (string, error) {
	resp := s.Cache.General.Do(ctx, s.Cache.General.B().Get().Key(key).Build())
	if err := resp.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return "", nil
		}
		return "", err
	}
	return resp.ToString()
}

// CacheSet writes a key to the general cache with a TTL.
func (s *DB) CacheSet(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.Cache.General.Do(
		ctx,
		s.Cache.General.B().Set().Key(key).Value(value).Ex(ttl).Build(),
	).Error()
}

// CacheDelete removes a key from the general cache.
func (s *DB) CacheDelete(ctx context.Context, key string) error {
	return s.Cache.General.Do(
		ctx,
		s.Cache.General.B().Del().Key(key).Build(),
	).Error()
}
