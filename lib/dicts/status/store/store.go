package statusdictstore

import (
	"recruitment-tracker-backend/models"
	dbmodels "recruitment-tracker-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Status) (id string, err error)
	GetByStageCode(stage models.Stage, code models.StatusCode) (*dbmodels.Status, error)
	List() (list []dbmodels.Status, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Status) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByStageCode(stage models.Stage, code models.StatusCode) (*dbmodels.Status, error) {
	rec := dbmodels.Status{}
	err := i.db.
		Model(&dbmodels.Status{}).
		Where("stage = ?", stage).
		Where("code = ?", code).
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

func (i impl) List() (list []dbmodels.Status, err error) {
	list = []dbmodels.Status{}
	err = i.db.
		Model(&dbmodels.Status{}).
		Order("stage, code").
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
