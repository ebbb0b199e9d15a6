package dbmodels

import "time"

// VacancyPeriod - период набора по вакансии, в рамках которого принимаются заявки
type VacancyPeriod struct {
	BaseModel
	CompanyID    string `gorm:"type:varchar(36);index"`
	PositionName string `gorm:"type:varchar(255)"`
	PeriodStart  time.Time
	PeriodEnd    time.Time
	IsOpen       bool
}
