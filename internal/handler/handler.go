package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tastypick/recipe-recommender/internal/service"
)

// IndexRebuilder triggers an offline similarity index rebuild.
type IndexRebuilder interface {
	Rebuild(ctx context.Context) (int, error)
}

type Handler struct {
	service   *service.Service
	rebuilder IndexRebuilder
}

func NewHandler(svc *service.Service, rebuilder IndexRebuilder) *Handler {
	return &Handler{service: svc, rebuilder: rebuilder}
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}
