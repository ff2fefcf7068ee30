package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/rs/zerolog/log"
)

// sessionSetAttempts bounds retries of writes the store refused to admit.
const sessionSetAttempts = 3

// SessionStorage keeps fiber sessions and csrf tokens inside the shared
// in-memory store. Keys are scoped by namespace.
type SessionStorage struct {
	namespace string
	manager   *cache.Cache[[]byte]
}

func NewSessionStorage(namespace string) *SessionStorage {
	return newSessionStorage(namespace, S)
}

func newSessionStorage(namespace string, source store.StoreInterface) *SessionStorage {
	return &SessionStorage{
		namespace: namespace,
		manager:   cache.New[[]byte](source),
	}
}

func (v *SessionStorage) key(key string) string {
	return fmt.Sprintf("%s#%s", v.namespace, key)
}

func (v *SessionStorage) Get(key string) ([]byte, error) {
	if len(key) == 0 {
		return nil, nil
	}
	val, err := v.manager.Get(context.Background(), v.key(key))
	if err != nil {
		return nil, nil
	}
	return val, nil
}

func (v *SessionStorage) Set(key string, val []byte, exp time.Duration) error {
	if len(key) == 0 || len(val) == 0 {
		return nil
	}

	data := make([]byte, len(val))
	copy(data, val)

	options := []store.Option{store.WithCost(1)}
	if exp > 0 {
		options = append(options, store.WithExpiration(exp))
	}

	// Ristretto drops sets under buffer contention, the write is tried again
	// after the pending ones are flushed.
	var err error
	for attempt := 1; attempt <= sessionSetAttempts; attempt++ {
		if err = v.manager.Set(context.Background(), v.key(key), data, options...); err == nil {
			Sync()
			return nil
		}
		log.Debug().Err(err).Str("namespace", v.namespace).Int("attempt", attempt).Msg("Session write was dropped, retrying...")
		Sync()
	}

	log.Warn().Err(err).Str("namespace", v.namespace).Msg("Unable to store session data.")
	return err
}

func (v *SessionStorage) Delete(key string) error {
	if len(key) == 0 {
		return nil
	}
	return v.manager.Delete(context.Background(), v.key(key))
}

func (v *SessionStorage) Reset() error {
	return v.manager.Clear(context.Background())
}

func (v *SessionStorage) Close() error {
	return nil
}
