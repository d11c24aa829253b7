package service

import (
	"context"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/bimg"

	"thumbdrive/internal/domain"
	"thumbdrive/internal/repository"
	"thumbdrive/internal/service/s3"
)

const (
	// ThumbnailSuffix — единственная защита от рекурсивного срабатывания:
	// результат конвейера попадает в тот же бакет и снова порождает событие.
	ThumbnailSuffix = "_thumbnail.png"

	thumbnailContentType = "image/png"

	// Коэффициент грубой оценки размера миниатюры относительно оригинала
	sizeReductionRatio = 0.53
)

// ThumbnailService реализует конвейер генерации миниатюр:
// fetch -> decode -> crop-to-fit -> upload -> persist metadata.
type ThumbnailService struct {
	storage    s3.Storage
	records    repository.RecordStore
	size       int
	publicRead bool
}

func NewThumbnailService(storage s3.Storage, records repository.RecordStore, size int, publicRead bool) *ThumbnailService {
	return &ThumbnailService{
		storage:    storage,
		records:    records,
		size:       size,
		publicRead: publicRead,
	}
}

// ProcessEvent валидирует уведомление и прогоняет конвейер по каждой записи.
// Ошибка любой записи прерывает весь проход; уже загруженные миниатюры
// не откатываются.
func (s *ThumbnailService) ProcessEvent(ctx context.Context, event *domain.S3Event) ([]domain.ConversionResult, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}

	results := make([]domain.ConversionResult, 0, len(event.Records))
	for _, rec := range event.Records {
		result, err := s.Process(ctx, rec)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	return results, nil
}

// Process выполняет один проход конвейера для одной записи события.
// Возвращает URL миниатюры либо отметку о пропуске.
func (s *ThumbnailService) Process(ctx context.Context, rec domain.S3EventRecord) (*domain.ConversionResult, error) {
	bucket := rec.S3.Bucket.Name
	key := rec.S3.Object.Key
	objectSize := rec.S3.Object.Size

	log.Printf("[Pipeline] Processing object %s/%s (%d bytes)", bucket, key, objectSize)

	// Собственный вывод конвейера пропускаем
	if strings.HasSuffix(key, ThumbnailSuffix) {
		log.Printf("[Pipeline] Skipping own output: %s", key)
		return &domain.ConversionResult{Key: key, Skipped: true}, nil
	}

	data, err := s.storage.Fetch(ctx, bucket, key)
	if err != nil {
		return nil, err
	}

	thumb, err := s.makeThumbnail(data)
	if err != nil {
		return nil, err
	}

	thumbKey := ThumbnailKey(key)

	if err := s.storage.Store(ctx, bucket, thumbKey, thumb, thumbnailContentType, s.publicRead); err != nil {
		return nil, err
	}

	url := s.storage.ObjectURL(bucket, thumbKey)

	if err := s.saveRecord(ctx, url, objectSize); err != nil {
		return nil, err
	}

	log.Printf("[Pipeline] Generated thumbnail %s", url)

	return &domain.ConversionResult{Key: key, URL: url}, nil
}

// makeThumbnail декодирует изображение и делает квадратную миниатюру
// по политике crop-to-fit: сначала кадрирование под 1:1, затем масштабирование.
func (s *ThumbnailService) makeThumbnail(data []byte) ([]byte, error) {
	if bimg.DetermineImageType(data) == bimg.UNKNOWN {
		return nil, fmt.Errorf("%w: unsupported image format", domain.ErrImageDecode)
	}

	thumb, err := bimg.NewImage(data).Process(bimg.Options{
		Width:   s.size,
		Height:  s.size,
		Crop:    true,
		Enlarge: true,
		Gravity: bimg.GravityCentre,
		Type:    bimg.PNG,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImageDecode, err)
	}

	return thumb, nil
}

func (s *ThumbnailService) saveRecord(ctx context.Context, url string, sizeBytes int64) error {
	now := time.Now()

	return s.records.Put(ctx, &domain.ThumbnailRecord{
		ID:                uuid.NewString(),
		URL:               url,
		ApproxReducedSize: ApproxReducedSize(sizeBytes),
		CreatedAt:         now,
		UpdatedAt:         now,
	})
}

// ThumbnailKey строит ключ миниатюры: исходный ключ без последнего
// расширения плюс суффикс. Ключ без расширения получает суффикс целиком.
func ThumbnailKey(key string) string {
	return strings.TrimSuffix(key, path.Ext(key)) + ThumbnailSuffix
}

// ApproxReducedSize возвращает строковую оценку размера миниатюры
// относительно размера оригинала. Реальный размер не измеряется.
func ApproxReducedSize(sizeBytes int64) string {
	return fmt.Sprintf("%.1f KB", sizeReductionRatio*float64(sizeBytes)/1000)
}
