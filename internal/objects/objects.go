// Package objects определяет основные структуры данных и интерфейс хранилища
// для сервиса сокращения URL
package objects

import "context"

// Link - сохранённая связка пути и URL назначения.
// Path всегда равен shortener.Digest(Destination), Destination всегда
// начинается с https://. После создания запись не меняется.
type Link struct {
	ID          int64  `json:"-"`           //Суррогатный ключ БД, в поиске не участвует
	Path        string `json:"path"`        //Короткий путь (hex SHA-512)
	Destination string `json:"destination"` //URL назначения
}

// Storage определяет интерфейс для работы с хранилищем ссылок.
//
// Put вставляет запись, если такого пути ещё нет; повторная вставка того же
// пути - успешная операция, не меняющая запись.
// Get ищет запись строго по совпадению пути. Отсутствие записи - не ошибка:
// возвращается (nil, false, nil).
type Storage interface {
	Put(ctx context.Context, link *Link) error
	Get(ctx context.Context, path string) (*Link, bool, error)
	Ping(ctx context.Context) error
	Close() error
}
