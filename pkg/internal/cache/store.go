package cache

import (
	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/store"
	ristrettoCache "github.com/eko/gocache/store/ristretto/v4"
)

var (
	S      store.StoreInterface
	client *ristretto.Cache
)

func NewStore() error {
	rs, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e7,
		MaxCost:     1 << 30,
		BufferItems: 64,
	})
	if err != nil {
		return err
	}

	client = rs
	S = ristrettoCache.NewRistretto(rs)

	return nil
}

// Sync blocks until every pending write has been applied to the store.
func Sync() {
	if client != nil {
		client.Wait()
	}
}
