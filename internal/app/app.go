package app

import (
	"context"
	"fmt"

	"github.com/GevorkovG/go-shortener-digest/config"
	"github.com/GevorkovG/go-shortener-digest/internal/database"
	"github.com/GevorkovG/go-shortener-digest/internal/objects"
	"github.com/GevorkovG/go-shortener-digest/internal/storage"
	"go.uber.org/zap"
)

// App связывает конфигурацию, хранилище и HTTP-обработчики.
type App struct {
	cfg     *config.AppConfig
	Storage objects.Storage
}

func NewApp(cfg *config.AppConfig) *App {
	return &App{
		cfg: cfg,
	}
}

func (a *App) GetConfig() *config.AppConfig {
	return a.cfg
}

// ConfigureStorage выбирает хранилище по конфигурации:
// PostgreSQL, затем SQLite/libSQL, Redis, файл, иначе память.
// При CacheSize > 0 хранилище оборачивается кэшем.
func (a *App) ConfigureStorage(ctx context.Context) error {
	var (
		s   objects.Storage
		err error
	)

	switch {
	case a.cfg.DataBaseString != "":
		var db *database.DBStore
		db, err = database.InitDB(ctx, a.cfg.DataBaseString)
		if err == nil {
			s = storage.NewPostgresStorage(db)
		}
	case a.cfg.SQLiteDSN != "":
		s, err = storage.NewSQLStorage(ctx, a.cfg.SQLiteDSN)
	case a.cfg.RedisAddress != "":
		s, err = storage.NewRedisStorage(ctx, a.cfg.RedisAddress)
	case a.cfg.FilePATH != "":
		s, err = storage.NewFileStorage(a.cfg.FilePATH)
	default:
		s = storage.NewInMemoryStorage()
	}
	if err != nil {
		return fmt.Errorf("configure storage: %w", err)
	}

	if a.cfg.CacheSize > 0 {
		cached, err := storage.NewCachedStorage(s, int64(a.cfg.CacheSize))
		if err != nil {
			s.Close()
			return fmt.Errorf("configure cache: %w", err)
		}
		s = cached
	}

	zap.L().Info("Storage configured", zap.String("type", fmt.Sprintf("%T", s)))
	a.Storage = s
	return nil
}

// Close освобождает ресурсы хранилища.
func (a *App) Close() error {
	if a.Storage == nil {
		return nil
	}
	return a.Storage.Close()
}
