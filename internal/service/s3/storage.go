// storage.go
package s3

import "context"

// Storage определяет интерфейс для работы с S3-совместимым хранилищем
type Storage interface {
	Fetch(ctx context.Context, bucket, key string) ([]byte, error)
	Store(ctx context.Context, bucket, key string, data []byte, contentType string, public bool) error
	ObjectURL(bucket, key string) string
}
