package storage

import (
	"context"
	"sync"

	"github.com/GevorkovG/go-shortener-digest/internal/objects"
)

// InMemoryStorage хранит ссылки в памяти процесса.
type InMemoryStorage struct {
	mu   sync.RWMutex
	urls map[string]string
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{
		urls: make(map[string]string),
	}
}

// Load заменяет содержимое хранилища готовым набором path→destination.
func (s *InMemoryStorage) Load(data map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.urls = data
}

// Put сохраняет ссылку, если пути ещё нет.
func (s *InMemoryStorage) Put(_ context.Context, link *objects.Link) error {
	s.insert(link)
	return nil
}

// insert возвращает true, если запись действительно добавлена.
func (s *InMemoryStorage) insert(link *objects.Link) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.urls[link.Path]; ok {
		return false
	}
	s.urls[link.Path] = link.Destination
	return true
}

func (s *InMemoryStorage) Get(_ context.Context, path string) (*objects.Link, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	destination, ok := s.urls[path]
	if !ok {
		return nil, false, nil
	}
	return &objects.Link{Path: path, Destination: destination}, true, nil
}

// Len возвращает число сохранённых ссылок.
func (s *InMemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.urls)
}

func (s *InMemoryStorage) Ping(context.Context) error {
	return nil
}

func (s *InMemoryStorage) Close() error {
	return nil
}
