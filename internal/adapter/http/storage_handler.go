package http

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/adapter/logger"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

type StorageHandler struct {
	storage interfaces.FileStorage
	logger  logger.Logger
}

func NewStorageHandler(storage interfaces.FileStorage, logger logger.Logger) *StorageHandler {
	return &StorageHandler{storage: storage, logger: logger}
}

func (h *StorageHandler) RegisterRoutes(r chi.Router) {
	r.Get("/storage/{name}", h.Get)
}

// Get streams a stored image. Names are random, so responses are cached
// for a long time.
func (h *StorageHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	body, contentType, err := h.storage.Open(r.Context(), name)
	if err != nil {
		respondServiceError(w, r, h.logger, "file_open_failed", err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warn("file_stream_failed", "Failed to stream file", "", map[string]interface{}{"name": name}, err)
	}
}
