package models

import (
	"fmt"

	"github.com/pkg/errors"
)

// ошибки ядра воронки подбора, контроллеры мапят их в http-статусы
var (
	ErrApplicationNotFound  = errors.New("заявка не найдена")
	ErrUnknownStatus        = errors.New("статус не найден в справочнике статусов")
	ErrConcurrencyConflict  = errors.New("конфликт одновременного изменения заявки")
	ErrDuplicateApplication = errors.New("заявка кандидата на этот период набора уже существует")
)

// ValidationError - в запросе не хватает данных для указанного результата этапа
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %v", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
