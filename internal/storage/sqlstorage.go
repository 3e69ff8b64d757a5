package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/GevorkovG/go-shortener-digest/internal/objects"
	_ "github.com/tursodatabase/libsql-client-go/libsql" // удалённый libSQL/Turso
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // локальный SQLite
)

const createSQLiteLinksTable = `CREATE TABLE IF NOT EXISTS links (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	path TEXT NOT NULL UNIQUE,
	destination TEXT NOT NULL
)`

// SQLStorage хранит ссылки в SQLite-совместимой базе через database/sql.
type SQLStorage struct {
	db *sql.DB
}

// driverFor выбирает драйвер по DSN: libsql:// и wss:// уходят в libSQL,
// остальное открывается локальным SQLite.
func driverFor(dsn string) string {
	if strings.HasPrefix(dsn, "libsql://") || strings.HasPrefix(dsn, "wss://") {
		return "libsql"
	}
	return "sqlite"
}

func NewSQLStorage(ctx context.Context, dsn string) (*SQLStorage, error) {
	driver := driverFor(dsn)

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, wrap("open", err)
	}
	if driver == "sqlite" {
		// SQLite допускает одного писателя
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, wrap("ping", err)
	}
	if _, err := db.ExecContext(ctx, createSQLiteLinksTable); err != nil {
		db.Close()
		return nil, wrap("migrate", err)
	}

	zap.L().Info("SQL storage opened", zap.String("driver", driver))
	return &SQLStorage{db: db}, nil
}

func (s *SQLStorage) Put(ctx context.Context, link *objects.Link) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO links (path, destination) VALUES (?, ?) ON CONFLICT(path) DO NOTHING",
		link.Path, link.Destination)
	if err != nil {
		zap.L().Error("Failed to insert link", zap.String("path", link.Path), zap.Error(err))
		return wrap("put", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		zap.L().Debug("SQL link already stored", zap.String("path", link.Path))
		return nil
	}
	zap.L().Info("SQL link inserted", zap.String("path", link.Path), zap.String("destination", link.Destination))
	return nil
}

func (s *SQLStorage) Get(ctx context.Context, path string) (*objects.Link, bool, error) {
	link := &objects.Link{Path: path}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, destination FROM links WHERE path = ? LIMIT 1", path).
		Scan(&link.ID, &link.Destination)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, false, nil
	case err != nil:
		zap.L().Error("Failed to get link", zap.String("path", path), zap.Error(err))
		return nil, false, wrap("get", err)
	}
	return link, true, nil
}

func (s *SQLStorage) Ping(ctx context.Context) error {
	return wrap("ping", s.db.PingContext(ctx))
}

func (s *SQLStorage) Close() error {
	return wrap("close", s.db.Close())
}
