package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"thumbdrive/internal/domain"
	"thumbdrive/internal/repository"
)

// ThumbnailHandler обслуживает Metadata API: чтение, удаление и листинг
// записей о миниатюрах.
type ThumbnailHandler struct {
	records repository.RecordStore
}

func NewThumbnailHandler(records repository.RecordStore) *ThumbnailHandler {
	return &ThumbnailHandler{records: records}
}

// GetThumbnail обрабатывает запрос на получение записи по идентификатору
func (h *ThumbnailHandler) GetThumbnail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, err := h.records.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			log.Printf("Record not found: %s", id)
			http.Error(w, "Record not found", http.StatusNotFound)
			return
		}
		log.Printf("Failed to get record %s: %v", id, err)
		http.Error(w, "Failed to get record", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// DeleteThumbnail обрабатывает запрос на удаление записи.
// Удаление несуществующего идентификатора тоже успех: стор подтверждает
// идемпотентное удаление.
func (h *ThumbnailHandler) DeleteThumbnail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ok, err := h.records.DeleteByID(r.Context(), id)
	if err != nil || !ok {
		log.Printf("Failed to delete record %s: %v", id, err)
		http.Error(w, fmt.Sprintf("Internal Server Error deleting %s", id), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, domain.DeleteResponse{
		Deleted:       true,
		ItemDeletedID: id,
	})
}

// ListThumbnails обрабатывает запрос на получение всех записей.
// Пагинация стора проходится целиком, ответ — один массив.
func (h *ThumbnailHandler) ListThumbnails(w http.ResponseWriter, r *http.Request) {
	records, err := h.records.ScanAll(r.Context())
	if err != nil {
		log.Printf("Failed to list records: %v", err)
		http.Error(w, "Failed to list records", http.StatusInternalServerError)
		return
	}

	if records == nil {
		records = []domain.ThumbnailRecord{}
	}

	writeJSON(w, http.StatusOK, records)
}

// writeJSON отправляет единый конверт ответа Metadata API
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
