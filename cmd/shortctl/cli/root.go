// Package cli содержит команды shortctl: создание, поиск и вычисление
// короткого пути без запуска HTTP-сервера.
package cli

import (
	"context"

	"github.com/GevorkovG/go-shortener-digest/config"
	"github.com/GevorkovG/go-shortener-digest/internal/app"
	"github.com/spf13/cobra"
)

// Opener открывает приложение с настроенным хранилищем.
type Opener func(ctx context.Context) (*app.App, error)

// OpenFromEnv настраивает хранилище по окружению и .env, как сервер.
func OpenFromEnv(ctx context.Context) (*app.App, error) {
	conf, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}

	a := app.NewApp(conf)
	if err := a.ConfigureStorage(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// NewRootCmd собирает дерево команд shortctl.
func NewRootCmd(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:   "shortctl",
		Short: "Command line client for the digest URL shortener",
		Long: `shortctl creates and resolves short links directly in the configured
storage (DATABASE_DSN, SQLITE_DSN, REDIS_ADDRESS or FILE_STORAGE_PATH).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newCreateCmd(open),
		newResolveCmd(open),
		newDigestCmd(),
	)
	return root
}
