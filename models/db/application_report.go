package dbmodels

import "time"

// ApplicationReport - сводный отчет по заявке.
// Одна строка на заявку, пересчитывается целиком при каждом построении.
type ApplicationReport struct {
	BaseModel
	ApplicationID       string       `gorm:"type:varchar(36);uniqueIndex"`
	Application         *Application `gorm:"foreignKey:ApplicationID"`
	AdministrationScore int
	AssessmentScore     int
	InterviewScore      int
	OverallScore        float64
	FinalDecision       string  `gorm:"type:varchar(50)"`
	DecisionMadeBy      *string `gorm:"type:varchar(36)"`
	DecisionMadeAt      *time.Time
}
