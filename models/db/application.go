package dbmodels

import (
	"time"

	"recruitment-tracker-backend/models"
)

// Application - заявка кандидата на вакансию в периоде набора.
// Одна заявка на пару (кандидат, период), изменяется только движком переходов.
type Application struct {
	BaseModel
	CandidateID     string         `gorm:"type:varchar(36);uniqueIndex:idx_candidate_period"`
	Candidate       *Candidate     `gorm:"foreignKey:CandidateID"`
	VacancyPeriodID string         `gorm:"type:varchar(36);uniqueIndex:idx_candidate_period"`
	VacancyPeriod   *VacancyPeriod `gorm:"foreignKey:VacancyPeriodID"`
	StatusID        string         `gorm:"type:varchar(36)"`
	Status          *Status        `gorm:"foreignKey:StatusID"`
	CurrentStage    models.Stage   `gorm:"type:varchar(50);index"`
	AppliedAt       time.Time
}

// IsTerminal - заявка дошла до итогового решения
func (a Application) IsTerminal() bool {
	return a.CurrentStage.IsTerminal()
}

type ApplicationFilter struct {
	CompanyID string `json:"company_id"`
	PeriodID  string `json:"period_id"`
}
