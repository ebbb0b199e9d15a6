package models

import "github.com/pkg/errors"

// StatusCode - код результата по этапу
type StatusCode string

const (
	StatusCodePending    StatusCode = "pending"     // Ожидает обработки
	StatusCodeScheduled  StatusCode = "scheduled"   // Назначена дата проведения
	StatusCodeInProgress StatusCode = "in_progress" // В процессе
	StatusCodePassed     StatusCode = "passed"      // Этап пройден
	StatusCodeFailed     StatusCode = "failed"      // Этап не пройден
	StatusCodeAccepted   StatusCode = "accepted"    // Итог: кандидат принят
	StatusCodeRejected   StatusCode = "rejected"    // Итог: кандидат отклонен
)

func ParseStatusCode(value string) (StatusCode, error) {
	code := StatusCode(value)
	switch code {
	case StatusCodePending, StatusCodeScheduled, StatusCodeInProgress,
		StatusCodePassed, StatusCodeFailed, StatusCodeAccepted, StatusCodeRejected:
		return code, nil
	}
	return "", errors.Errorf("неизвестный код статуса: %v", value)
}

// IsAdvancing - результат, продвигающий заявку на следующий этап
func (c StatusCode) IsAdvancing() bool {
	return c == StatusCodePassed
}

// IsRejecting - результат, завершающий воронку отказом
func (c StatusCode) IsRejecting() bool {
	return c == StatusCodeFailed
}

// IsNeutral - промежуточный результат, этап заявки не меняется
func (c StatusCode) IsNeutral() bool {
	return c == StatusCodePending || c == StatusCodeScheduled || c == StatusCodeInProgress
}

// IsFinal - код зарезервирован за терминальными этапами,
// напрямую в переводе этапа не используется
func (c StatusCode) IsFinal() bool {
	return c == StatusCodeAccepted || c == StatusCodeRejected
}
