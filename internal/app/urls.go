package app

import (
	"context"
	"net/http"

	"github.com/GevorkovG/go-shortener-digest/internal/objects"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Resolve ищет ссылку по пути. Отсутствие ссылки - не ошибка.
func (a *App) Resolve(ctx context.Context, path string) (*objects.Link, bool, error) {
	return a.Storage.Get(ctx, path)
}

// GetOriginalURL перенаправляет на сохранённый URL назначения.
//
// Метод: GET, HEAD
// Путь: /{path}
//
// Возвращаемые статусы:
//   - 303 See Other: Location - URL назначения как есть
//   - 404 Not Found: пути нет в хранилище
//   - 500 Internal Server Error: ошибка хранилища
func (a *App) GetOriginalURL(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "path")

	link, ok, err := a.Resolve(r.Context(), path)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		zap.L().Debug("Link not found", zap.String("path", path))
		http.NotFound(w, r)
		return
	}

	// URL проверен при создании, повторная проверка не нужна
	w.Header().Set("Location", link.Destination)
	w.WriteHeader(http.StatusSeeOther)
}

// Ping проверяет доступность хранилища
func (a *App) Ping(w http.ResponseWriter, r *http.Request) {
	if err := a.Storage.Ping(r.Context()); err != nil {
		zap.L().Error("Storage ping failed", zap.Error(err))
		http.Error(w, "storage unavailable", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
