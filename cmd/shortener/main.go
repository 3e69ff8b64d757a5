package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/GevorkovG/go-shortener-digest/config"
	"github.com/GevorkovG/go-shortener-digest/internal/app"
	"github.com/GevorkovG/go-shortener-digest/internal/logger"
	"github.com/GevorkovG/go-shortener-digest/internal/routes"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	conf, err := config.NewCfg()
	if err != nil {
		log.Fatal(err)
	}

	if err := serve(conf); err != nil {
		log.Fatal(err)
	}
}

// serve настраивает логгер и обработку сигналов и запускает сервер.
// Отложенные вызовы выполняются до выхода из main.
func serve(conf *config.AppConfig) error {
	if err := logger.Initialize(conf.LogLevel); err != nil {
		return err
	}
	defer func() { _ = zap.L().Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, conf); err != nil {
		zap.L().Error("Server stopped with error", zap.Error(err))
		return err
	}
	return nil
}

func newHTTPServer(conf *config.AppConfig, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              conf.Host,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// run поднимает сервер и ждёт отмены ctx, после чего корректно его
// останавливает и закрывает хранилище.
func run(ctx context.Context, conf *config.AppConfig) error {
	a := app.NewApp(conf)
	if err := a.ConfigureStorage(ctx); err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			zap.L().Warn("Failed to close storage", zap.Error(err))
		}
	}()

	srv := newHTTPServer(conf, routes.Router(a))

	errc := make(chan error, 1)
	go func() {
		zap.L().Info("Server started", zap.String("addr", conf.Host), zap.Bool("https", conf.EnableHTTPS))
		var err error
		if conf.EnableHTTPS {
			err = srv.ListenAndServeTLS(conf.CertFile, conf.KeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		errc <- err
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	zap.L().Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
