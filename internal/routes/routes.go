package routes

import (
	"net/http"

	"github.com/GevorkovG/go-shortener-digest/internal/app"
	"github.com/GevorkovG/go-shortener-digest/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router - http роутер
func Router(app *app.App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID,
		logger.LoggerMiddleware,
		middleware.Recoverer,
		middleware.Compress(5, "text/html", "application/json"),
	)

	r.Get("/", app.Index)
	r.Post("/", app.GetShortURL)
	r.Post("/api/shorten", app.JSONGetShortURL)
	r.Get("/ping", app.Ping)
	r.Get("/{path}", app.GetOriginalURL)
	r.Head("/{path}", app.GetOriginalURL)

	return r
}
