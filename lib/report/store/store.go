package reportstore

import (
	dbmodels "recruitment-tracker-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Upsert(rec dbmodels.ApplicationReport) (id string, err error)
	GetByApplicationID(applicationID string) (*dbmodels.ApplicationReport, error)
	List() (list []dbmodels.ApplicationReport, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

// Upsert - одна строка отчета на заявку, при повторном построении перезаписывается
func (i impl) Upsert(rec dbmodels.ApplicationReport) (id string, err error) {
	err = i.db.
		Omit("Application").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "application_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"administration_score", "assessment_score", "interview_score",
				"overall_score", "final_decision", "decision_made_by", "decision_made_at",
				"updated_at",
			}),
		}).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByApplicationID(applicationID string) (*dbmodels.ApplicationReport, error) {
	rec := dbmodels.ApplicationReport{}
	err := i.db.
		Model(&dbmodels.ApplicationReport{}).
		Where("application_id = ?", applicationID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) List() (list []dbmodels.ApplicationReport, err error) {
	list = []dbmodels.ApplicationReport{}
	err = i.db.
		Model(&dbmodels.ApplicationReport{}).
		Order("created_at").
		Preload("Application").
		Preload("Application.Candidate").
		Preload("Application.VacancyPeriod").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
