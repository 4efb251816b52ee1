package rest

import (
	"net/http"

	"crm-service/internal/contextkeys"
	"crm-service/internal/core/domain"
	"crm-service/internal/core/port"
	"crm-service/internal/core/port/usecases_port"
)

type SellerHandler struct {
	sellersUC usecases_port.SellersUseCase
}

func NewSellerHandler(sellersUC usecases_port.SellersUseCase) *SellerHandler {
	return &SellerHandler{sellersUC: sellersUC}
}

// List обрабатывает GET /api/sellers
func (h *SellerHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	query := r.URL.Query()

	filters := domain.SellerFilters{
		Status:          parseString(query, "status"),
		AssignedAgentID: parseInt64(query, "agentId"),
		Search:          parseString(query, "search"),
		IncludeArchived: parseBool(query, "includeArchived"),
	}
	page := parsePagination(query)

	handlerLogger := logger.WithFields(port.Fields{
		"handler": "SellerHandler.List",
		"page":    page.Page,
		"limit":   page.Limit,
	})
	handlerLogger.Debug("Processing seller list request", nil)

	list, err := h.sellersUC.List(r.Context(), filters, parseSort(query), page)
	if err != nil {
		respondUseCaseError(w, handlerLogger, err, "Failed to list sellers")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"sellers":    sellersToResponse(list.Items),
		"pagination": list.Pagination,
	})
}

func (h *SellerHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s, err := h.sellersUC.Get(r.Context(), id)
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to get seller")
		return
	}
	RespondWithJSON(w, http.StatusOK, sellerToResponse(*s))
}

func (h *SellerHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	var req SellerRequest
	if !decodeValidatedBody(w, r, "seller", &req) {
		return
	}
	created, err := h.sellersUC.Create(r.Context(), req.toDomain())
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to create seller")
		return
	}
	RespondWithJSON(w, http.StatusCreated, sellerToResponse(*created))
}

func (h *SellerHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req SellerRequest
	if !decodeValidatedBody(w, r, "seller", &req) {
		return
	}
	s := req.toDomain()
	s.ID = id

	updated, err := h.sellersUC.Update(r.Context(), s)
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to update seller")
		return
	}
	RespondWithJSON(w, http.StatusOK, sellerToResponse(*updated))
}

// Delete архивирует собственника, физического удаления нет.
func (h *SellerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.sellersUC.Archive(r.Context(), id); err != nil {
		respondUseCaseError(w, logger, err, "Failed to archive seller")
		return
	}
	respondOK(w, "archived")
}

func (h *SellerHandler) Restore(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.sellersUC.Restore(r.Context(), id); err != nil {
		respondUseCaseError(w, logger, err, "Failed to restore seller")
		return
	}
	respondOK(w, "restored")
}
