// Package shortener содержит чистую логику сервиса: проверку и нормализацию
// URL назначения и вычисление короткого пути по его хешу.
//
// Функции пакета не хранят состояния и безопасны для конкурентного вызова.
package shortener

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	insecurePrefix = "http://"
	securePrefix   = "https://"

	// PathLength - длина пути: SHA-512 в шестнадцатеричном виде.
	PathLength = sha512.Size * 2
)

var (
	// ErrDecode - значение формы не удалось декодировать.
	ErrDecode = errors.New("decode error")
	// ErrNotHTTPS - URL назначения не начинается с https:// после нормализации.
	ErrNotHTTPS = errors.New("not HTTPS")
	// ErrMissingHost - во входящем запросе нет заголовка Host.
	ErrMissingHost = errors.New("no host header")
)

// Normalize приводит URL к https и отклоняет всё остальное.
//
// Ведущий префикс http:// превращается в https:// вставкой "s"; прочие
// вхождения http:// в строке не трогаются. Если после этого строка не
// начинается с https://, возвращается ErrNotHTTPS. Больше никаких проверок
// структуры URL не выполняется.
func Normalize(raw string) (string, error) {
	if strings.HasPrefix(raw, insecurePrefix) {
		raw = "https" + raw[len("http"):]
	}

	if !strings.HasPrefix(raw, securePrefix) {
		return "", fmt.Errorf("%q: %w", raw, ErrNotHTTPS)
	}

	return raw, nil
}

// DecodeFormValue декодирует значение в формате application/x-www-form-urlencoded.
func DecodeFormValue(raw string) (string, error) {
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return decoded, nil
}

// ParseDestination декодирует сырое значение и нормализует его.
func ParseDestination(raw string) (string, error) {
	decoded, err := DecodeFormValue(raw)
	if err != nil {
		return "", err
	}
	return Normalize(decoded)
}

// Digest возвращает путь для URL назначения: SHA-512 от байтов строки
// в нижнем регистре hex.
func Digest(destination string) string {
	sum := sha512.Sum512([]byte(destination))
	return hex.EncodeToString(sum[:])
}

// IsPath сообщает, похожа ли строка на путь, выданный Digest.
func IsPath(s string) bool {
	if len(s) != PathLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
