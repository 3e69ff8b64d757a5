package storage

import (
	"context"
	"errors"

	"github.com/GevorkovG/go-shortener-digest/internal/database"
	"github.com/GevorkovG/go-shortener-digest/internal/objects"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// PostgresStorage хранит ссылки в таблице links.
// Каждая операция берёт из пула одно соединение и возвращает его на любом
// пути выхода.
type PostgresStorage struct {
	Store *database.DBStore
}

func NewPostgresStorage(db *database.DBStore) *PostgresStorage {
	return &PostgresStorage{
		Store: db,
	}
}

func (l *PostgresStorage) Put(ctx context.Context, link *objects.Link) error {
	conn, err := l.Store.Pool.Acquire(ctx)
	if err != nil {
		zap.L().Error("Failed to acquire connection", zap.Error(err))
		return wrap("acquire", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx,
		"INSERT INTO links (path, destination) VALUES ($1, $2)",
		link.Path, link.Destination); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			// путь однозначно задаёт destination, запись уже та же самая
			zap.L().Debug("DB link already stored", zap.String("path", link.Path))
			return nil
		}
		zap.L().Error("Failed to insert link", zap.String("path", link.Path), zap.Error(err))
		return wrap("put", err)
	}

	zap.L().Info("DB link inserted", zap.String("path", link.Path), zap.String("destination", link.Destination))
	return nil
}

func (l *PostgresStorage) Get(ctx context.Context, path string) (*objects.Link, bool, error) {
	conn, err := l.Store.Pool.Acquire(ctx)
	if err != nil {
		zap.L().Error("Failed to acquire connection", zap.Error(err))
		return nil, false, wrap("acquire", err)
	}
	defer conn.Release()

	link := &objects.Link{Path: path}
	err = conn.QueryRow(ctx,
		"SELECT id, destination FROM links WHERE path = $1 LIMIT 1", path).
		Scan(&link.ID, &link.Destination)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, false, nil
	case err != nil:
		zap.L().Error("Failed to get link", zap.String("path", path), zap.Error(err))
		return nil, false, wrap("get", err)
	}
	return link, true, nil
}

func (l *PostgresStorage) Ping(ctx context.Context) error {
	return wrap("ping", l.Store.PingDB(ctx))
}

func (l *PostgresStorage) Close() error {
	l.Store.Close()
	return nil
}
