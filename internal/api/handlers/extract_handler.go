package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/tijoseymathew/langextract-docling/internal/config"
	"github.com/tijoseymathew/langextract-docling/internal/extraction"
	"github.com/tijoseymathew/langextract-docling/internal/resolver"
)

type ExtractHandler struct {
	engine *extraction.Engine
	cfg    *config.Config
}

func NewExtractHandler(engine *extraction.Engine, cfg *config.Config) *ExtractHandler {
	return &ExtractHandler{engine: engine, cfg: cfg}
}

// Extract accepts an extraction request, routes the input through the
// resolver/provider pipeline and returns the annotated document.
func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req extraction.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Input == "" {
		http.Error(w, "input is required", http.StatusBadRequest)
		return
	}
	if req.ModelID == "" {
		req.ModelID = "docling"
	}
	req.APIKey = h.cfg.DoclingAPIKey

	doc, err := h.engine.Extract(r.Context(), &req)
	if err != nil {
		http.Error(w, fmt.Sprintf("extraction failed: %v", err), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}

// statusFor maps the resolver's error kinds onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return http.StatusBadRequest
	case errors.Is(err, resolver.ErrFetch):
		return http.StatusBadGateway
	case errors.Is(err, resolver.ErrConvert):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
