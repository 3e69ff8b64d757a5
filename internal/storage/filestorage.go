package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/GevorkovG/go-shortener-digest/internal/objects"
	"go.uber.org/zap"
)

const maxLineSize = 1 << 20

// FileStorage реализует хранилище ссылок с сохранением в файл.
// Данные держатся в памяти, каждая новая ссылка дописывается в файл
// отдельной JSON-строкой.
type FileStorage struct {
	mu         sync.Mutex
	memStorage *InMemoryStorage
	filePATH   string
}

// NewFileStorage создает новое файловое хранилище
//
// Параметры:
//   - path: путь к файлу для хранения данных
//
// Особенности:
//   - Автоматически загружает данные из файла при создании
//   - Создает файл если он не существует
func NewFileStorage(path string) (*FileStorage, error) {
	fs := FileStorage{
		memStorage: NewInMemoryStorage(),
		filePATH:   path,
	}

	data, err := LoadFromFile(path)
	if err != nil {
		return nil, wrap("load", err)
	}
	fs.memStorage.Load(data)

	zap.L().Info("File storage loaded", zap.String("path", path), zap.Int("links", len(data)))
	return &fs, nil
}

// SaveToFile дописывает одну ссылку в конец файла
func SaveToFile(link *objects.Link, fileName string) error {
	file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := json.NewEncoder(file).Encode(link); err != nil {
		return err
	}
	return file.Sync()
}

// LoadFromFile загружает данные из файла
//
// Возвращает:
//   - map[string]string: маппинг path→destination
//   - error: ошибка при открытии или чтении файла
//
// Особенности:
//   - Создает файл если он не существует
//   - Пропускает некорректные записи с логированием ошибок
//   - При повторе пути побеждает первая запись
func LoadFromFile(fileName string) (map[string]string, error) {
	file, err := os.OpenFile(fileName, os.O_RDONLY|os.O_CREATE, 0o600)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	data := make(map[string]string)

	for scanner.Scan() {
		var d objects.Link
		if err := json.Unmarshal(scanner.Bytes(), &d); err != nil {
			zap.L().Error("Skipping corrupt line", zap.String("file", fileName), zap.Error(err))
			continue
		}
		if d.Path == "" {
			continue
		}
		if _, ok := data[d.Path]; !ok {
			data[d.Path] = d.Destination
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return data, nil
}

// Put добавляет ссылку в память и в файл. Уже известный путь в файл
// повторно не пишется.
func (fs *FileStorage) Put(ctx context.Context, link *objects.Link) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, ok, _ := fs.memStorage.Get(ctx, link.Path); ok {
		zap.L().Debug("FILE link already stored", zap.String("path", link.Path))
		return nil
	}

	if err := SaveToFile(link, fs.filePATH); err != nil {
		zap.L().Error("Failed to append link to file", zap.String("path", link.Path), zap.Error(err))
		return wrap("put", err)
	}
	fs.memStorage.insert(link)

	zap.L().Info("FILE link inserted", zap.String("path", link.Path), zap.String("destination", link.Destination))
	return nil
}

func (fs *FileStorage) Get(ctx context.Context, path string) (*objects.Link, bool, error) {
	return fs.memStorage.Get(ctx, path)
}

// Ping проверяет, что файл по-прежнему доступен.
func (fs *FileStorage) Ping(context.Context) error {
	if _, err := os.Stat(fs.filePATH); err != nil {
		return wrap("ping", err)
	}
	return nil
}

func (fs *FileStorage) Close() error {
	return nil
}
