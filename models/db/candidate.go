package dbmodels

import (
	"time"

	"github.com/lib/pq"
)

type Candidate struct {
	BaseModel
	FirstName  string `gorm:"type:varchar(255)"`
	LastName   string `gorm:"type:varchar(255)"`
	MiddleName string `gorm:"type:varchar(255)"`
	Phone      string `gorm:"type:varchar(255)"`
	Email      string `gorm:"type:varchar(255)"`
	BirthDate  time.Time
	Tags       pq.StringArray `gorm:"type:text[]"` // навыки/метки из анкеты
}

func (c Candidate) GetFIO() string {
	result := c.LastName
	if c.FirstName != "" {
		result += " " + c.FirstName
	}
	if c.MiddleName != "" {
		result += " " + c.MiddleName
	}
	return result
}
