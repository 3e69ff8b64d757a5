// Package database управляет пулом соединений с PostgreSQL.
// Пул создаётся явно и передаётся в хранилище; глобального состояния нет.
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const createLinksTable = `CREATE TABLE IF NOT EXISTS links (
	id SERIAL PRIMARY KEY,
	path VARCHAR(128) NOT NULL UNIQUE,
	destination TEXT NOT NULL
)`

type DBStore struct {
	DatabaseConf string
	Pool         *pgxpool.Pool
}

func NewDB(conf string) *DBStore {
	return &DBStore{
		DatabaseConf: conf,
	}
}

// InitDB открывает пул, проверяет соединение и создаёт таблицу links.
func InitDB(ctx context.Context, conn string) (*DBStore, error) {
	db := NewDB(conn)
	if err := db.Open(ctx); err != nil {
		return nil, err
	}
	if err := db.CreateTable(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (store *DBStore) Open(ctx context.Context) error {
	pool, err := pgxpool.New(ctx, store.DatabaseConf)
	if err != nil {
		return fmt.Errorf("open pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("ping database: %w", err)
	}

	store.Pool = pool
	zap.L().Info("Connected to PostgreSQL", zap.Int32("max_conns", pool.Config().MaxConns))
	return nil
}

// CreateTable создаёт таблицу links, если её нет.
func (store *DBStore) CreateTable(ctx context.Context) error {
	if _, err := store.Pool.Exec(ctx, createLinksTable); err != nil {
		zap.L().Error("Failed to create table", zap.Error(err))
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

func (store *DBStore) Close() {
	if store.Pool != nil {
		store.Pool.Close()
	}
}

func (store *DBStore) PingDB(ctx context.Context) error {
	if err := store.Pool.Ping(ctx); err != nil {
		zap.L().Warn("don't ping Database", zap.Error(err))
		return err
	}
	return nil
}
