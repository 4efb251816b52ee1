package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"crm-service/internal/contracts"
	"crm-service/internal/core/domain"
	"crm-service/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// WriteValidationErrors отправляет 400 со списком полевых ошибок.
func WriteValidationErrors(w http.ResponseWriter, fields []string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)

	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":  "validation failed",
		"fields": fields,
	})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondUseCaseError переводит доменные ошибки в HTTP-статусы.
// Все неопознанные ошибки схлопываются в 500 без деталей для клиента.
func respondUseCaseError(w http.ResponseWriter, logger port.LoggerPort, err error, fallback string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		WriteValidationErrors(w, ve.Fields)
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, "entity not found")
	case errors.Is(err, domain.ErrDuplicate):
		// Дубликат уникального ключа - ошибка клиентских данных, не конфликт состояния.
		WriteJSONError(w, http.StatusBadRequest, "duplicate entry")
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteJSONError(w, http.StatusUnauthorized, "invalid credentials")
	default:
		logger.Error(fallback, err, nil)
		WriteJSONError(w, http.StatusInternalServerError, fallback)
	}
}

// respondOK отправляет 200 с коротким подтверждением выполненного действия.
func respondOK(w http.ResponseWriter, action string) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": action})
}

// decodeValidatedBody читает тело запроса, прогоняет его через JSON-схему
// сущности и декодирует в dst. false означает, что ответ уже отправлен.
func decodeValidatedBody(w http.ResponseWriter, r *http.Request, entity string, dst interface{}) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "unable to read request body")
		return false
	}
	if err := contracts.Validate(entity, body); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			WriteValidationErrors(w, ve.Fields)
		} else {
			WriteJSONError(w, http.StatusBadRequest, err.Error())
		}
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "malformed JSON body")
		return false
	}
	return true
}

// pathID извлекает числовой {id} из пути; false означает, что 400 уже отправлен.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		WriteJSONError(w, http.StatusBadRequest, "invalid id in path")
		return 0, false
	}
	return id, true
}
