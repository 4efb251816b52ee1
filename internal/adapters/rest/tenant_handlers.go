package rest

import (
	"net/http"

	"crm-service/internal/contextkeys"
	"crm-service/internal/core/domain"
	"crm-service/internal/core/port"
	"crm-service/internal/core/port/usecases_port"
)

type TenantHandler struct {
	tenantsUC usecases_port.TenantsUseCase
}

func NewTenantHandler(tenantsUC usecases_port.TenantsUseCase) *TenantHandler {
	return &TenantHandler{tenantsUC: tenantsUC}
}

// List обрабатывает GET /api/tenants
func (h *TenantHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	query := r.URL.Query()

	filters := domain.TenantFilters{
		PropertyID: parseInt64(query, "propertyId"),
		Status:     parseString(query, "status"),
	}
	page := parsePagination(query)

	handlerLogger := logger.WithFields(port.Fields{
		"handler": "TenantHandler.List",
		"page":    page.Page,
		"limit":   page.Limit,
	})
	handlerLogger.Debug("Processing tenant list request", nil)

	list, err := h.tenantsUC.List(r.Context(), filters, parseSort(query), page)
	if err != nil {
		respondUseCaseError(w, handlerLogger, err, "Failed to list tenants")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"tenants":    tenantsToResponse(list.Items),
		"pagination": list.Pagination,
	})
}

func (h *TenantHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, err := h.tenantsUC.Get(r.Context(), id)
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to get tenant")
		return
	}
	RespondWithJSON(w, http.StatusOK, tenantToResponse(*t))
}

func (h *TenantHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	var req TenantRequest
	if !decodeValidatedBody(w, r, "tenant", &req) {
		return
	}
	t, err := req.toDomain()
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid contract dates")
		return
	}
	created, err := h.tenantsUC.Create(r.Context(), t)
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to create tenant")
		return
	}
	RespondWithJSON(w, http.StatusCreated, tenantToResponse(*created))
}

func (h *TenantHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req TenantRequest
	if !decodeValidatedBody(w, r, "tenant", &req) {
		return
	}
	t, err := req.toDomain()
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid contract dates")
		return
	}
	t.ID = id

	updated, err := h.tenantsUC.Update(r.Context(), t)
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to update tenant")
		return
	}
	RespondWithJSON(w, http.StatusOK, tenantToResponse(*updated))
}

func (h *TenantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.tenantsUC.Delete(r.Context(), id); err != nil {
		respondUseCaseError(w, logger, err, "Failed to delete tenant")
		return
	}
	respondOK(w, "deleted")
}
