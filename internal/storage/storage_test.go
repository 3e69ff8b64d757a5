package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/GevorkovG/go-shortener-digest/internal/objects"
	"github.com/GevorkovG/go-shortener-digest/internal/shortener"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger, _ := zap.NewDevelopment()
	zap.ReplaceGlobals(logger)

	os.Exit(m.Run())
}

func newLink(destination string) *objects.Link {
	return &objects.Link{
		Path:        shortener.Digest(destination),
		Destination: destination,
	}
}

var unusedPath = strings.Repeat("0", shortener.PathLength)

// checkStorage прогоняет общий контракт objects.Storage.
func checkStorage(t *testing.T, s objects.Storage) {
	t.Helper()
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		link := newLink("https://example.com/page")
		require.NoError(t, s.Put(ctx, link))

		got, ok, err := s.Get(ctx, link.Path)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, link.Destination, got.Destination)
		assert.Equal(t, link.Path, got.Path)
	})

	t.Run("put is idempotent", func(t *testing.T) {
		link := newLink("https://example.com/twice")
		require.NoError(t, s.Put(ctx, link))
		require.NoError(t, s.Put(ctx, link))

		got, ok, err := s.Get(ctx, link.Path)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, link.Destination, got.Destination)
	})

	t.Run("existing record is not overwritten", func(t *testing.T) {
		link := newLink("https://example.com/first")
		require.NoError(t, s.Put(ctx, link))
		require.NoError(t, s.Put(ctx, &objects.Link{Path: link.Path, Destination: "https://example.com/second"}))

		got, ok, err := s.Get(ctx, link.Path)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "https://example.com/first", got.Destination)
	})

	t.Run("miss is not an error", func(t *testing.T) {
		got, ok, err := s.Get(ctx, unusedPath)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("exact match only", func(t *testing.T) {
		link := newLink("https://example.com/exact")
		require.NoError(t, s.Put(ctx, link))

		for _, p := range []string{strings.ToUpper(link.Path), link.Path[:64], link.Path + "0"} {
			_, ok, err := s.Get(ctx, p)
			require.NoError(t, err)
			assert.False(t, ok, p)
		}
	})

	t.Run("concurrent puts of same link", func(t *testing.T) {
		link := newLink("https://example.com/concurrent")

		var wg sync.WaitGroup
		errs := make(chan error, 16)
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- s.Put(ctx, newLink(link.Destination))
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		got, ok, err := s.Get(ctx, link.Path)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, link.Destination, got.Destination)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, s.Ping(ctx))
	})
}

func TestInMemoryStorage(t *testing.T) {
	s := NewInMemoryStorage()
	checkStorage(t, s)
	assert.NoError(t, s.Close())
}

func TestSQLStorage(t *testing.T) {
	s, err := NewSQLStorage(context.Background(), "file:"+filepath.Join(t.TempDir(), "links.db"))
	require.NoError(t, err)
	defer s.Close()

	checkStorage(t, s)

	link := newLink("https://example.com/page")
	got, ok, err := s.Get(context.Background(), link.Path)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotZero(t, got.ID)
}

func TestSQLStorage_ClosedDB(t *testing.T) {
	s, err := NewSQLStorage(context.Background(), "file:"+filepath.Join(t.TempDir(), "links.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, _, err = s.Get(context.Background(), unusedPath)
	assert.ErrorIs(t, err, ErrStorage)
}

func TestDriverFor(t *testing.T) {
	assert.Equal(t, "libsql", driverFor("libsql://db.turso.io?authToken=x"))
	assert.Equal(t, "libsql", driverFor("wss://db.turso.io"))
	assert.Equal(t, "sqlite", driverFor("file:links.db"))
}

func TestRedisStorage(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := NewRedisStorage(context.Background(), mr.Addr())
	require.NoError(t, err)
	defer s.Close()

	checkStorage(t, s)

	link := newLink("https://example.com/page")
	v, err := mr.Get(redisKeyPrefix + link.Path)
	require.NoError(t, err)
	assert.Equal(t, link.Destination, v)
}

func TestRedisStorage_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := NewRedisStorage(context.Background(), mr.Addr())
	require.NoError(t, err)
	defer s.Close()

	mr.Close()

	_, _, err = s.Get(context.Background(), unusedPath)
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, s.Put(context.Background(), newLink("https://example.com")), ErrStorage)
}

// countingStorage считает обращения к нижележащему хранилищу.
type countingStorage struct {
	*InMemoryStorage
	mu   sync.Mutex
	gets int
}

func (c *countingStorage) Get(ctx context.Context, path string) (*objects.Link, bool, error) {
	c.mu.Lock()
	c.gets++
	c.mu.Unlock()
	return c.InMemoryStorage.Get(ctx, path)
}

func TestCachedStorage(t *testing.T) {
	s, err := NewCachedStorage(NewInMemoryStorage(), 100)
	require.NoError(t, err)
	defer s.Close()

	checkStorage(t, s)
}

func TestCachedStorage_ServesFromCache(t *testing.T) {
	ctx := context.Background()
	backend := &countingStorage{InMemoryStorage: NewInMemoryStorage()}

	s, err := NewCachedStorage(backend, 100)
	require.NoError(t, err)
	defer s.Close()

	link := newLink("https://example.com/cached")
	require.NoError(t, s.Put(ctx, link))

	_, ok, err := s.Get(ctx, link.Path)
	require.NoError(t, err)
	require.True(t, ok)
	s.Wait()

	for i := 0; i < 3; i++ {
		got, ok, err := s.Get(ctx, link.Path)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, link.Destination, got.Destination)
	}
	assert.Equal(t, 1, backend.gets)

	_, ok, err = s.Get(ctx, unusedPath)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, backend.gets)
}

func TestError(t *testing.T) {
	cause := errors.New("connection refused")
	err := wrap("get", cause)

	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "storage get: connection refused", err.Error())
	assert.Same(t, err, wrap("again", err))
	assert.NoError(t, wrap("noop", nil))
}
