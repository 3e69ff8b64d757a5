package storage

import (
	"context"
	"errors"

	"github.com/GevorkovG/go-shortener-digest/internal/objects"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const redisKeyPrefix = "link:"

// RedisStorage хранит ссылки в Redis под ключами link:<path>.
type RedisStorage struct {
	client *redis.Client
}

// NewRedisStorage подключается к Redis и проверяет соединение.
func NewRedisStorage(ctx context.Context, addr string) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, wrap("ping", err)
	}

	zap.L().Info("Connected to Redis", zap.String("addr", addr))
	return &RedisStorage{client: client}, nil
}

// Put выполняет SETNX: существующий ключ не перезаписывается.
func (r *RedisStorage) Put(ctx context.Context, link *objects.Link) error {
	created, err := r.client.SetNX(ctx, redisKeyPrefix+link.Path, link.Destination, 0).Result()
	if err != nil {
		zap.L().Error("Failed to insert link", zap.String("path", link.Path), zap.Error(err))
		return wrap("put", err)
	}

	if !created {
		zap.L().Debug("REDIS link already stored", zap.String("path", link.Path))
		return nil
	}
	zap.L().Info("REDIS link inserted", zap.String("path", link.Path), zap.String("destination", link.Destination))
	return nil
}

func (r *RedisStorage) Get(ctx context.Context, path string) (*objects.Link, bool, error) {
	destination, err := r.client.Get(ctx, redisKeyPrefix+path).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, false, nil
	case err != nil:
		zap.L().Error("Failed to get link", zap.String("path", path), zap.Error(err))
		return nil, false, wrap("get", err)
	}
	return &objects.Link{Path: path, Destination: destination}, true, nil
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	return wrap("ping", r.client.Ping(ctx).Err())
}

func (r *RedisStorage) Close() error {
	return wrap("close", r.client.Close())
}
