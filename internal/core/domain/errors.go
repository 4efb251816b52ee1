package domain

import (
	"errors"
	"strings"
)

// Сигнальные ошибки хранилища. Репозитории возвращают их вместо
// драйвер-специфичных ошибок, обработчики ветвятся через errors.Is.
var (
	ErrNotFound  = errors.New("entity not found")
	ErrDuplicate = errors.New("duplicate unique value")
)

// ErrInvalidCredentials - неверная пара email/пароль или деактивированный
// пользователь. Намеренно не уточняем причину в ответе клиенту.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError - список полевых ошибок серверной валидации.
// Обработчики отдают его как 400 со структурированным телом.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// NewValidationError возвращает nil при пустом списке, чтобы вызывающий
// код мог написать `if err := ...; err != nil`.
func NewValidationError(fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
