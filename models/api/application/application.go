package applicationapimodels

import (
	"time"

	apimodels "recruitment-tracker-backend/models/api"
	dbmodels "recruitment-tracker-backend/models/db"

	"github.com/pkg/errors"
)

type ApplicationCreateRequest struct {
	CandidateID     string `json:"candidate_id"`      // Идентификатор кандидата
	VacancyPeriodID string `json:"vacancy_period_id"` // Идентификатор периода набора
}

func (r ApplicationCreateRequest) Validate() error {
	if r.CandidateID == "" {
		return errors.New("не указан идентификатор кандидата")
	}
	if r.VacancyPeriodID == "" {
		return errors.New("не указан идентификатор периода набора")
	}
	return nil
}

type ApplicationListFilter struct {
	apimodels.Pagination
	Stage     string `json:"stage"`      // Этап воронки
	CompanyID string `json:"company_id"` // Фильтр по компании
	PeriodID  string `json:"period_id"`  // Фильтр по периоду набора
}

type ApplicationView struct {
	ID              string    `json:"id"`
	CandidateID     string    `json:"candidate_id"`
	CandidateFIO    string    `json:"candidate_fio"`
	VacancyPeriodID string    `json:"vacancy_period_id"`
	PositionName    string    `json:"position_name"`
	CurrentStage    string    `json:"current_stage"`
	StageTitle      string    `json:"stage_title"`
	StatusCode      string    `json:"status_code"`
	StatusName      string    `json:"status_name"`
	AppliedAt       time.Time `json:"applied_at"`
}

func ConvertApplication(rec dbmodels.Application) ApplicationView {
	result := ApplicationView{
		ID:              rec.ID,
		CandidateID:     rec.CandidateID,
		VacancyPeriodID: rec.VacancyPeriodID,
		CurrentStage:    string(rec.CurrentStage),
		StageTitle:      rec.CurrentStage.GetTitle(),
		AppliedAt:       rec.AppliedAt,
	}
	if rec.Candidate != nil {
		result.CandidateFIO = rec.Candidate.GetFIO()
	}
	if rec.VacancyPeriod != nil {
		result.PositionName = rec.VacancyPeriod.PositionName
	}
	if rec.Status != nil {
		result.StatusCode = string(rec.Status.Code)
		result.StatusName = rec.Status.Name
	}
	return result
}
