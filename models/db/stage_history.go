package dbmodels

import (
	"time"

	"recruitment-tracker-backend/models"
)

// StageHistory - журнал прохождения этапов по заявке.
// Записи не удаляются, на пару (заявка, этап) активна не более одной записи.
type StageHistory struct {
	BaseModel
	ApplicationID string       `gorm:"type:varchar(36);index:idx_history_active"`
	Application   *Application `gorm:"foreignKey:ApplicationID"`
	Stage         models.Stage `gorm:"type:varchar(50);index:idx_history_active"`
	StatusID      string       `gorm:"type:varchar(36)"`
	Status        *Status      `gorm:"foreignKey:StatusID"`
	Score         *int
	Notes         string
	ScheduledAt   *time.Time
	ProcessedAt   *time.Time
	CompletedAt   *time.Time
	ReviewerID    *string `gorm:"type:varchar(36)"`
	IsActive      bool    `gorm:"index:idx_history_active"`
}
