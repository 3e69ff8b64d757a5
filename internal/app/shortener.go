package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/GevorkovG/go-shortener-digest/internal/objects"
	"github.com/GevorkovG/go-shortener-digest/internal/shortener"
)

// Shorten проверяет URL назначения, вычисляет путь и сохраняет ссылку.
// Повторный вызов с тем же URL возвращает тот же путь без ошибки.
func (a *App) Shorten(ctx context.Context, destination string) (*objects.Link, error) {
	dst, err := shortener.Normalize(destination)
	if err != nil {
		return nil, err
	}
	return a.save(ctx, dst)
}

// save сохраняет уже проверенный URL назначения.
func (a *App) save(ctx context.Context, destination string) (*objects.Link, error) {
	link := &objects.Link{
		Path:        shortener.Digest(destination),
		Destination: destination,
	}
	if err := a.Storage.Put(ctx, link); err != nil {
		return nil, fmt.Errorf("save link: %w", err)
	}
	return link, nil
}

// Index отдаёт стартовую страницу с формой.
//
// Метод: GET
// Путь: /
func (a *App) Index(w http.ResponseWriter, _ *http.Request) {
	render(w, "index.html", nil)
}

// GetShortURL создаёт короткую ссылку из поля формы url.
//
// Метод: POST
// Путь: /
// Content-Type: application/x-www-form-urlencoded
//
// Возвращаемые статусы:
//   - 200 OK: страница с путём, URL назначения и полным коротким URL
//   - 400 Bad Request: форма не разбирается, нет поля url или заголовка Host
//   - 422 Unprocessable Entity: URL не https (после замены http:// на https://)
//   - 500 Internal Server Error: ошибка хранилища
func (a *App) GetShortURL(w http.ResponseWriter, r *http.Request) {
	req, err := parseCreateRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	link, err := a.save(r.Context(), req.Destination)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render(w, "result.html", resultPage{
		Host:        req.Host,
		Path:        link.Path,
		Destination: link.Destination,
		ShortURL:    shortURL(r, req.Host, link.Path),
	})
}

// JSONGetShortURL - JSON-вариант GetShortURL.
//
// Метод: POST
// Путь: /api/shorten
//
// Пример запроса:
//
//	{"url": "http://example.com/page"}
//
// Пример ответа (201 Created):
//
//	{"path": "ce6bee13...", "destination": "https://example.com/page", "short_url": "http://localhost:8080/ce6bee13..."}
func (a *App) JSONGetShortURL(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSONCreateRequest(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	link, err := a.save(r.Context(), req.Destination)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response, err := json.Marshal(ShortenResponse{
		Path:        link.Path,
		Destination: link.Destination,
		ShortURL:    shortURL(r, req.Host, link.Path),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(response)
}
