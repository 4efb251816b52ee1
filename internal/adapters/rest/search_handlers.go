package rest

import (
	"net/http"
	"strings"

	"crm-service/internal/contextkeys"
	"crm-service/internal/core/port"
	"crm-service/internal/core/port/usecases_port"
)

type SearchHandler struct {
	searchUC usecases_port.SearchUseCase
}

func NewSearchHandler(searchUC usecases_port.SearchUseCase) *SearchHandler {
	return &SearchHandler{searchUC: searchUC}
}

// Search обрабатывает GET /api/search?q=...&type=...&limit=...
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	query := r.URL.Query()

	text := strings.TrimSpace(query.Get("q"))
	if text == "" {
		WriteJSONError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	limit := 0
	if v := parseInt(query, "limit"); v != nil {
		limit = *v
	}

	results, err := h.searchUC.Search(r.Context(), text, query.Get("type"), limit)
	if err != nil {
		respondUseCaseError(w, logger.WithFields(port.Fields{"handler": "SearchHandler.Search"}), err, "Search failed")
		return
	}
	RespondWithJSON(w, http.StatusOK, searchToResponse(results))
}

// Suggestions обрабатывает GET /api/search/suggestions?q=...&type=...
func (h *SearchHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	query := r.URL.Query()

	text := strings.TrimSpace(query.Get("q"))
	if text == "" {
		WriteJSONError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	suggestions, err := h.searchUC.Suggest(r.Context(), text, query.Get("type"))
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to build suggestions")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions": suggestions,
	})
}

// Quick обрабатывает GET /api/search/quick/{id}
func (h *SearchHandler) Quick(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	match, err := h.searchUC.QuickLookup(r.Context(), id)
	if err != nil {
		respondUseCaseError(w, logger, err, "Quick lookup failed")
		return
	}
	RespondWithJSON(w, http.StatusOK, quickMatchToResponse(match))
}
