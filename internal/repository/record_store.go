// record_store.go
package repository

import (
	"context"

	"thumbdrive/internal/domain"
)

// RecordStore определяет интерфейс для работы с таблицей метаданных миниатюр
type RecordStore interface {
	Put(ctx context.Context, record *domain.ThumbnailRecord) error
	GetByID(ctx context.Context, id string) (*domain.ThumbnailRecord, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
	ScanAll(ctx context.Context) ([]domain.ThumbnailRecord, error)
}
