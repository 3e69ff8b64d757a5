package storage

import (
	"context"

	"github.com/GevorkovG/go-shortener-digest/internal/objects"
	"github.com/dgraph-io/ristretto"
	"go.uber.org/zap"
)

// CachedStorage кэширует найденные ссылки перед другим хранилищем.
// В кэш попадает только то, что прочитано из next. Ссылки неизменяемы,
// поэтому инвалидация не нужна. Промахи не кэшируются.
type CachedStorage struct {
	next  objects.Storage
	cache *ristretto.Cache
}

// NewCachedStorage оборачивает next кэшем на size записей.
func NewCachedStorage(next objects.Storage, size int64) (*CachedStorage, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: size * 10,
		MaxCost:     size,
		BufferItems: 64,

		// стоимость записи - 1, MaxCost считается в записях
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("Link cache enabled", zap.Int64("size", size))
	return &CachedStorage{next: next, cache: cache}, nil
}

func (c *CachedStorage) Put(ctx context.Context, link *objects.Link) error {
	return c.next.Put(ctx, link)
}

func (c *CachedStorage) Get(ctx context.Context, path string) (*objects.Link, bool, error) {
	if v, ok := c.cache.Get(path); ok {
		return &objects.Link{Path: path, Destination: v.(string)}, true, nil
	}

	link, ok, err := c.next.Get(ctx, path)
	if err != nil || !ok {
		return link, ok, err
	}
	c.cache.Set(path, link.Destination, 1)
	return link, true, nil
}

// Wait дожидается применения отложенных записей в кэш.
func (c *CachedStorage) Wait() {
	c.cache.Wait()
}

func (c *CachedStorage) Ping(ctx context.Context) error {
	return c.next.Ping(ctx)
}

func (c *CachedStorage) Close() error {
	c.cache.Close()
	return c.next.Close()
}
