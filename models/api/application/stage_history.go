package applicationapimodels

import (
	"time"

	dbmodels "recruitment-tracker-backend/models/db"
)

type StageHistoryView struct {
	ID          string     `json:"id"`
	Stage       string     `json:"stage"`        // Этап воронки
	StageTitle  string     `json:"stage_title"`  // Название этапа
	StatusCode  string     `json:"status_code"`  // Код статуса
	StatusName  string     `json:"status_name"`  // Название статуса
	Score       *int       `json:"score,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ReviewerID  string     `json:"reviewer_id,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
}

func ConvertHistory(rec dbmodels.StageHistory) StageHistoryView {
	result := StageHistoryView{
		ID:          rec.ID,
		Stage:       string(rec.Stage),
		StageTitle:  rec.Stage.GetTitle(),
		Score:       rec.Score,
		Notes:       rec.Notes,
		ScheduledAt: rec.ScheduledAt,
		ProcessedAt: rec.ProcessedAt,
		CompletedAt: rec.CompletedAt,
		IsActive:    rec.IsActive,
		CreatedAt:   rec.CreatedAt,
	}
	if rec.Status != nil {
		result.StatusCode = string(rec.Status.Code)
		result.StatusName = rec.Status.Name
	}
	if rec.ReviewerID != nil {
		result.ReviewerID = *rec.ReviewerID
	}
	return result
}
