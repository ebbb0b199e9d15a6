package applicationapimodels

import (
	"time"

	"recruitment-tracker-backend/models"

	"github.com/pkg/errors"
)

type TransitionRequest struct {
	TargetStage string     `json:"target_stage"` // Этап, по которому фиксируется результат
	OutcomeCode string     `json:"outcome_code"` // Код результата (pending/scheduled/in_progress/passed/failed)
	Score       *int       `json:"score,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	ReviewerID  string     `json:"reviewer_id,omitempty"`
}

// TransitionPayload - данные перевода, сохраняются в журнал как есть
type TransitionPayload struct {
	Score       *int
	Notes       string
	ScheduledAt *time.Time
	ReviewerID  string
}

func (r TransitionRequest) Parse() (stage models.Stage, code models.StatusCode, payload TransitionPayload, err error) {
	stage, err = models.ParseStage(r.TargetStage)
	if err != nil {
		return "", "", TransitionPayload{}, err
	}
	code, err = models.ParseStatusCode(r.OutcomeCode)
	if err != nil {
		return "", "", TransitionPayload{}, err
	}
	if r.Score != nil && (*r.Score < 0 || *r.Score > 100) {
		return "", "", TransitionPayload{}, errors.New("оценка должна быть в диапазоне 0-100")
	}
	payload = TransitionPayload{
		Score:       r.Score,
		Notes:       r.Notes,
		ScheduledAt: r.ScheduledAt,
		ReviewerID:  r.ReviewerID,
	}
	return stage, code, payload, nil
}
