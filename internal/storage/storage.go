package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage - capability object для хранения файлов (аватары).
// Передается компонентам явно; никакого process-wide флага инициализации.
type Storage interface {
	// EnsureBucket идемпотентно создает bucket/директорию.
	// Безопасно вызывать при каждом старте.
	EnsureBucket(ctx context.Context) error

	// Save сохраняет файл и возвращает его публичный URL
	Save(ctx context.Context, path string, reader io.Reader) (string, error)

	// Delete удаляет файл (отсутствие файла не ошибка)
	Delete(ctx context.Context, path string) error

	// Exists проверяет наличие файла
	Exists(ctx context.Context, path string) (bool, error)
}

// Config holds storage configuration
type Config struct {
	Type     string // local
	BasePath string // For local storage
	BaseURL  string // Public URL base
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
