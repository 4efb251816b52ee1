package rest

import (
	"net/http"

	"crm-service/internal/contextkeys"
	"crm-service/internal/core/domain"
	"crm-service/internal/core/port"
	"crm-service/internal/core/port/usecases_port"
)

type BuyerHandler struct {
	buyersUC usecases_port.BuyersUseCase
}

func NewBuyerHandler(buyersUC usecases_port.BuyersUseCase) *BuyerHandler {
	return &BuyerHandler{buyersUC: buyersUC}
}

// List обрабатывает GET /api/buyers
func (h *BuyerHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	query := r.URL.Query()

	filters := domain.BuyerFilters{
		Status:          parseString(query, "status"),
		PropertyType:    parseString(query, "propertyType"),
		MinBudget:       parseFloat(query, "minBudget"),
		MaxBudget:       parseFloat(query, "maxBudget"),
		AssignedAgentID: parseInt64(query, "agentId"),
		Search:          parseString(query, "search"),
		IncludeArchived: parseBool(query, "includeArchived"),
	}
	page := parsePagination(query)

	handlerLogger := logger.WithFields(port.Fields{
		"handler": "BuyerHandler.List",
		"page":    page.Page,
		"limit":   page.Limit,
	})
	handlerLogger.Debug("Processing buyer list request", nil)

	list, err := h.buyersUC.List(r.Context(), filters, parseSort(query), page)
	if err != nil {
		respondUseCaseError(w, handlerLogger, err, "Failed to list buyers")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"buyers":     buyersToResponse(list.Items),
		"pagination": list.Pagination,
	})
}

func (h *BuyerHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b, err := h.buyersUC.Get(r.Context(), id)
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to get buyer")
		return
	}
	RespondWithJSON(w, http.StatusOK, buyerToResponse(*b))
}

func (h *BuyerHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	var req BuyerRequest
	if !decodeValidatedBody(w, r, "buyer", &req) {
		return
	}
	created, err := h.buyersUC.Create(r.Context(), req.toDomain())
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to create buyer")
		return
	}
	RespondWithJSON(w, http.StatusCreated, buyerToResponse(*created))
}

func (h *BuyerHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req BuyerRequest
	if !decodeValidatedBody(w, r, "buyer", &req) {
		return
	}
	b := req.toDomain()
	b.ID = id

	updated, err := h.buyersUC.Update(r.Context(), b)
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to update buyer")
		return
	}
	RespondWithJSON(w, http.StatusOK, buyerToResponse(*updated))
}

// Delete обрабатывает DELETE /api/buyers/{id}: покупатели не удаляются
// физически, запись архивируется.
func (h *BuyerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.buyersUC.Archive(r.Context(), id); err != nil {
		respondUseCaseError(w, logger, err, "Failed to archive buyer")
		return
	}
	respondOK(w, "archived")
}

func (h *BuyerHandler) Restore(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.buyersUC.Restore(r.Context(), id); err != nil {
		respondUseCaseError(w, logger, err, "Failed to restore buyer")
		return
	}
	respondOK(w, "restored")
}
