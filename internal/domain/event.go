package domain

import "fmt"

// S3Event представляет уведомление хранилища о создании объектов.
// Форма повторяет штатное S3-уведомление: bucket/object внутри
// каждой записи.
type S3Event struct {
	Records []S3EventRecord `json:"Records"`
}

type S3EventRecord struct {
	S3 S3Entity `json:"s3"`
}

type S3Entity struct {
	Bucket S3Bucket     `json:"bucket"`
	Object S3ObjectInfo `json:"object"`
}

type S3Bucket struct {
	Name string `json:"name"`
}

type S3ObjectInfo struct {
	Key  string `json:"key"`
	Size int64  `json:"size"`
}

// Validate проверяет форму события на границе процесса.
// Несовпадение формы превращается в типизированную ошибку,
// а не в панику при доступе к полям.
func (e *S3Event) Validate() error {
	if len(e.Records) == 0 {
		return fmt.Errorf("%w: no records", ErrInvalidEvent)
	}
	for i, rec := range e.Records {
		if rec.S3.Bucket.Name == "" {
			return fmt.Errorf("%w: record %d has no bucket name", ErrInvalidEvent, i)
		}
		if rec.S3.Object.Key == "" {
			return fmt.Errorf("%w: record %d has no object key", ErrInvalidEvent, i)
		}
		if rec.S3.Object.Size < 0 {
			return fmt.Errorf("%w: record %d has negative object size", ErrInvalidEvent, i)
		}
	}
	return nil
}
