package domain

import "errors"

// Классификация ошибок системы. Ошибки на границах оборачиваются
// через %w, вызывающий код проверяет их через errors.Is.
var (
	ErrStorageRead    = errors.New("storage read failed")
	ErrStorageWrite   = errors.New("storage write failed")
	ErrImageDecode    = errors.New("image decode failed")
	ErrStoreWrite     = errors.New("record store write failed")
	ErrRecordNotFound = errors.New("record not found")
	ErrInvalidEvent   = errors.New("invalid event payload")
)
