package dbmodels

import (
	"recruitment-tracker-backend/models"
)

// Status - справочник статусов, узел машины состояний в рамках этапа.
// Заполняется при старте сервиса, в рантайме только читается.
type Status struct {
	BaseModel
	Name        string            `gorm:"type:varchar(255)"`
	Code        models.StatusCode `gorm:"type:varchar(50);uniqueIndex:idx_status_stage_code"`
	Stage       models.Stage      `gorm:"type:varchar(50);uniqueIndex:idx_status_stage_code"`
	Description string
	IsActive    bool
}
