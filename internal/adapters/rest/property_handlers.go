package rest

import (
	"net/http"
	"time"

	"crm-service/internal/contextkeys"
	"crm-service/internal/core/domain"
	"crm-service/internal/core/port"
	"crm-service/internal/core/port/usecases_port"
)

type PropertyHandler struct {
	propertiesUC usecases_port.PropertiesUseCase
}

func NewPropertyHandler(propertiesUC usecases_port.PropertiesUseCase) *PropertyHandler {
	return &PropertyHandler{propertiesUC: propertiesUC}
}

// List обрабатывает GET /api/properties
func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	query := r.URL.Query()

	filters := domain.PropertyFilters{
		PropertyType:    parseString(query, "type"),
		Category:        parseString(query, "category"),
		Status:          parseString(query, "status"),
		City:            parseString(query, "city"),
		District:        parseString(query, "district"),
		MinPrice:        parseFloat(query, "minPrice"),
		MaxPrice:        parseFloat(query, "maxPrice"),
		MinArea:         parseInt(query, "minArea"),
		MaxArea:         parseInt(query, "maxArea"),
		Rooms:           parseInt(query, "rooms"),
		SellerID:        parseInt64(query, "sellerId"),
		AssignedAgentID: parseInt64(query, "agentId"),
		Search:          parseString(query, "search"),
		IncludeArchived: parseBool(query, "includeArchived"),
	}
	page := parsePagination(query)

	handlerLogger := logger.WithFields(port.Fields{
		"handler": "PropertyHandler.List",
		"page":    page.Page,
		"limit":   page.Limit,
	})
	handlerLogger.Debug("Processing property list request", nil)

	list, err := h.propertiesUC.List(r.Context(), filters, parseSort(query), page)
	if err != nil {
		respondUseCaseError(w, handlerLogger, err, "Failed to list properties")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"properties": propertiesToResponse(list.Items),
		"pagination": list.Pagination,
	})
}

// Get обрабатывает GET /api/properties/{id} - объект со связанными записями.
func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	details, err := h.propertiesUC.GetDetails(r.Context(), id)
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to get property")
		return
	}
	RespondWithJSON(w, http.StatusOK, detailsToResponse(details))
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	req, ok := decodePropertyBody(w, r)
	if !ok {
		return
	}
	created, err := h.propertiesUC.Create(r.Context(), req.toDomain())
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to create property")
		return
	}
	RespondWithJSON(w, http.StatusCreated, propertyToResponse(*created))
}

// Update обрабатывает PUT /api/properties/{id} как полную замену записи.
func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	req, ok := decodePropertyBody(w, r)
	if !ok {
		return
	}
	p := req.toDomain()
	p.ID = id

	updated, err := h.propertiesUC.Update(r.Context(), p)
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to update property")
		return
	}
	RespondWithJSON(w, http.StatusOK, propertyToResponse(*updated))
}

func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.propertiesUC.Delete(r.Context(), id); err != nil {
		respondUseCaseError(w, logger, err, "Failed to delete property")
		return
	}
	respondOK(w, "deleted")
}

// RecordViewing обрабатывает POST /api/properties/{id}/viewing -
// атомарный инкремент счетчика просмотров.
func (h *PropertyHandler) RecordViewing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	viewings, lastViewing, err := h.propertiesUC.RecordViewing(r.Context(), id)
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to record viewing")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"viewings":     viewings,
		"last_viewing": lastViewing.Format(time.RFC3339),
	})
}

func (h *PropertyHandler) Archive(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.propertiesUC.Archive(r.Context(), id); err != nil {
		respondUseCaseError(w, logger, err, "Failed to archive property")
		return
	}
	respondOK(w, "archived")
}

func (h *PropertyHandler) Restore(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.propertiesUC.Restore(r.Context(), id); err != nil {
		respondUseCaseError(w, logger, err, "Failed to restore property")
		return
	}
	respondOK(w, "restored")
}

func decodePropertyBody(w http.ResponseWriter, r *http.Request) (*PropertyRequest, bool) {
	var req PropertyRequest
	if !decodeValidatedBody(w, r, "property", &req) {
		return nil, false
	}
	return &req, true
}
