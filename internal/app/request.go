package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/GevorkovG/go-shortener-digest/internal/shortener"
	"go.uber.org/zap"
)

// createRequest - проверенный запрос на создание ссылки.
type createRequest struct {
	Destination string
	Host        string
}

// requestHost возвращает Host запроса или ErrMissingHost.
func requestHost(r *http.Request) (string, error) {
	if r.Host == "" {
		return "", shortener.ErrMissingHost
	}
	return r.Host, nil
}

// parseCreateRequest разбирает форму POST / и проверяет поле url.
func parseCreateRequest(r *http.Request) (createRequest, error) {
	host, err := requestHost(r)
	if err != nil {
		return createRequest{}, err
	}

	if err := r.ParseForm(); err != nil {
		return createRequest{}, fmt.Errorf("%w: %w", shortener.ErrDecode, err)
	}

	raw, ok := r.PostForm["url"]
	if !ok || len(raw) == 0 {
		return createRequest{}, fmt.Errorf("%w: missing url field", shortener.ErrDecode)
	}

	destination, err := shortener.Normalize(raw[0])
	if err != nil {
		return createRequest{}, err
	}

	return createRequest{Destination: destination, Host: host}, nil
}

// maxJSONBodySize совпадает с лимитом ParseForm для формы.
const maxJSONBodySize = 10 << 20

// ShortenRequest - тело POST /api/shorten.
type ShortenRequest struct {
	URL *string `json:"url"`
}

// ShortenResponse - ответ POST /api/shorten.
type ShortenResponse struct {
	Path        string `json:"path"`
	Destination string `json:"destination"`
	ShortURL    string `json:"short_url"`
}

func parseJSONCreateRequest(w http.ResponseWriter, r *http.Request) (createRequest, error) {
	host, err := requestHost(r)
	if err != nil {
		return createRequest{}, err
	}

	var req ShortenRequest
	body := http.MaxBytesReader(w, r.Body, maxJSONBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return createRequest{}, fmt.Errorf("%w: %w", shortener.ErrDecode, err)
	}
	if req.URL == nil {
		return createRequest{}, fmt.Errorf("%w: missing url field", shortener.ErrDecode)
	}

	destination, err := shortener.Normalize(*req.URL)
	if err != nil {
		return createRequest{}, err
	}

	return createRequest{Destination: destination, Host: host}, nil
}

// shortURL собирает полный короткий URL для показа пользователю.
func shortURL(r *http.Request, host, path string) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + host + "/" + path
}

// statusFor сопоставляет ошибку с кодом ответа.
func statusFor(err error) int {
	switch {
	case errors.Is(err, shortener.ErrDecode), errors.Is(err, shortener.ErrMissingHost):
		return http.StatusBadRequest
	case errors.Is(err, shortener.ErrNotHTTPS):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeError отвечает клиенту по ошибке. Внутренние ошибки логируются,
// а их текст клиенту не отдаётся.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		zap.L().Error("Request failed",
			zap.String("method", r.Method),
			zap.String("uri", r.RequestURI),
			zap.Error(err))
		http.Error(w, http.StatusText(code), code)
		return
	}

	zap.L().Debug("Rejected request", zap.String("uri", r.RequestURI), zap.Error(err))
	http.Error(w, err.Error(), code)
}
