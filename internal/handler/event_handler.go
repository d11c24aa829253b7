package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"thumbdrive/internal/domain"
	"thumbdrive/internal/service"
)

// EventHandler принимает уведомления хранилища о создании объектов
// и запускает конвейер генерации миниатюр.
type EventHandler struct {
	thumbnails *service.ThumbnailService
}

func NewEventHandler(thumbnails *service.ThumbnailService) *EventHandler {
	return &EventHandler{thumbnails: thumbnails}
}

// HandleS3Event обрабатывает уведомление: один проход конвейера
// на каждую запись события. У этого ответа нет CORS-заголовка:
// его никто не читает из браузера.
func (h *EventHandler) HandleS3Event(w http.ResponseWriter, r *http.Request) {
	var event domain.S3Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		log.Printf("Failed to decode event: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	results, err := h.thumbnails.ProcessEvent(r.Context(), &event)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidEvent) {
			log.Printf("Invalid event: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Failed to process event: %v", err)
		http.Error(w, "Failed to process event", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(results); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
