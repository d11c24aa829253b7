package domain

import (
	"time"
)

// ThumbnailRecord представляет запись метаданных о сгенерированной миниатюре.
// Поле ApproxReducedSize — грубая оценка (0.53 * размер оригинала / 1000),
// реальный размер закодированного PNG не считывается.
type ThumbnailRecord struct {
	ID                string    `json:"id" dynamodbav:"id"`
	URL               string    `json:"url" dynamodbav:"url"`
	ApproxReducedSize string    `json:"approxReducedSize" dynamodbav:"approxReducedSize"`
	CreatedAt         time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// DeleteResponse представляет ответ на удаление записи
type DeleteResponse struct {
	Deleted       bool   `json:"deleted"`
	ItemDeletedID string `json:"itemDeletedId"`
}

// ConversionResult представляет итог обработки одного объекта из события
type ConversionResult struct {
	Key     string `json:"key"`
	URL     string `json:"url,omitempty"`
	Skipped bool   `json:"skipped,omitempty"`
}
