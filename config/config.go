// Package config содержит конфигурацию приложения
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// AppConfig содержит конфигурационные параметры приложения.
// Поля структуры:
//   - Host: адрес сервера (env:"SERVER_ADDRESS")
//   - FilePATH: путь к файлу хранилища (env:"FILE_STORAGE_PATH")
//   - DataBaseString: строка подключения к PostgreSQL (env:"DATABASE_DSN")
//   - SQLiteDSN: путь SQLite или адрес libSQL (env:"SQLITE_DSN")
//   - RedisAddress: адрес Redis (env:"REDIS_ADDRESS")
//   - CacheSize: размер кэша ссылок, 0 - без кэша (env:"CACHE_SIZE")
//   - LogLevel: уровень логирования (env:"LOG_LEVEL")
//   - EnableHTTPS: включить HTTPS (env:"ENABLE_HTTPS")
//   - CertFile, KeyFile: сертификат и ключ для HTTPS
type AppConfig struct {
	Host           string `env:"SERVER_ADDRESS" json:"server_address"`
	FilePATH       string `env:"FILE_STORAGE_PATH" json:"file_storage_path"`
	DataBaseString string `env:"DATABASE_DSN" json:"database_dsn"`
	SQLiteDSN      string `env:"SQLITE_DSN" json:"sqlite_dsn"`
	RedisAddress   string `env:"REDIS_ADDRESS" json:"redis_address"`
	CacheSize      int    `env:"CACHE_SIZE" json:"cache_size"`
	LogLevel       string `env:"LOG_LEVEL" json:"log_level"`
	EnableHTTPS    bool   `env:"ENABLE_HTTPS" json:"enable_https"`
	CertFile       string `env:"TLS_CERT_FILE" json:"cert_file"`
	KeyFile        string `env:"TLS_KEY_FILE" json:"key_file"`
	ConfigJSON     string `env:"CONFIG" json:"-"`
}

const (
	defaultServerAddress = "localhost:8080"
	defaultLogLevel      = "info"
)

// loadConfigFromFile загружает конфигурацию приложения из файла.
// Ключи, которых нет в файле, не меняются.
func (a *AppConfig) loadConfigFromFile() error {
	data, err := os.ReadFile(a.ConfigJSON)
	if err != nil {
		return err
	}

	path := a.ConfigJSON
	if err := json.Unmarshal(data, a); err != nil {
		return err
	}
	a.ConfigJSON = path

	return nil
}

func defaults() *AppConfig {
	return &AppConfig{
		Host:     defaultServerAddress,
		LogLevel: defaultLogLevel,
	}
}

func (a *AppConfig) bind(fs *flag.FlagSet) {
	fs.StringVar(&a.Host, "a", a.Host, "It's a Host")
	fs.StringVar(&a.FilePATH, "f", a.FilePATH, "It's a FilePATH")
	fs.StringVar(&a.DataBaseString, "d", a.DataBaseString, "PostgreSQL conn string")
	fs.StringVar(&a.SQLiteDSN, "l", a.SQLiteDSN, "SQLite or libSQL DSN")
	fs.StringVar(&a.RedisAddress, "r", a.RedisAddress, "Redis address")
	fs.IntVar(&a.CacheSize, "cache", a.CacheSize, "link cache size, 0 disables")
	fs.StringVar(&a.LogLevel, "log", a.LogLevel, "log level")
	fs.BoolVar(&a.EnableHTTPS, "s", a.EnableHTTPS, "using HTTPS")
	fs.StringVar(&a.CertFile, "cert", a.CertFile, "TLS certificate file")
	fs.StringVar(&a.KeyFile, "key", a.KeyFile, "TLS key file")
	fs.StringVar(&a.ConfigJSON, "c", a.ConfigJSON, "It's a ConfigJSON file")
}

// applyFlags переносит в a только явно заданные флаги.
func (a *AppConfig) applyFlags(f *AppConfig, set map[string]bool) {
	for name := range set {
		switch name {
		case "a":
			a.Host = f.Host
		case "f":
			a.FilePATH = f.FilePATH
		case "d":
			a.DataBaseString = f.DataBaseString
		case "l":
			a.SQLiteDSN = f.SQLiteDSN
		case "r":
			a.RedisAddress = f.RedisAddress
		case "cache":
			a.CacheSize = f.CacheSize
		case "log":
			a.LogLevel = f.LogLevel
		case "s":
			a.EnableHTTPS = f.EnableHTTPS
		case "cert":
			a.CertFile = f.CertFile
		case "key":
			a.KeyFile = f.KeyFile
		case "c":
			a.ConfigJSON = f.ConfigJSON
		}
	}
}

// Parse собирает конфигурацию из флагов fs, окружения и JSON-файла.
// Приоритеты источников конфигурации (от высшего к низшему):
// 1. Флаги командной строки
// 2. Переменные окружения
// 3. JSON-файл конфигурации (флаг -c или CONFIG)
// 4. Значения по умолчанию
func Parse(fs *flag.FlagSet, args []string) (*AppConfig, error) {
	fromFlags := defaults()
	fromFlags.bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	a := defaults()

	a.ConfigJSON = os.Getenv("CONFIG")
	if set["c"] {
		a.ConfigJSON = fromFlags.ConfigJSON
	}
	if a.ConfigJSON != "" {
		if err := a.loadConfigFromFile(); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", a.ConfigJSON, err)
		}
	}

	if err := env.Parse(a); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	a.applyFlags(fromFlags, set)

	if a.CacheSize < 0 {
		return nil, fmt.Errorf("cache size must not be negative: %d", a.CacheSize)
	}
	if a.EnableHTTPS && (a.CertFile == "" || a.KeyFile == "") {
		return nil, fmt.Errorf("HTTPS requires cert and key files")
	}

	return a, nil
}

// NewCfg создает и инициализирует конфигурацию приложения из os.Args и
// окружения. Файл .env, если есть, дополняет окружение, но не перекрывает его.
func NewCfg() (*AppConfig, error) {
	_ = godotenv.Load()
	return Parse(flag.CommandLine, os.Args[1:])
}

// LoadEnv - то же, что NewCfg, но без флагов командной строки.
func LoadEnv() (*AppConfig, error) {
	_ = godotenv.Load()
	return Parse(flag.NewFlagSet("env", flag.ContinueOnError), nil)
}
