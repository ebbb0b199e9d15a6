package stagehistorystore

import (
	"recruitment-tracker-backend/models"
	dbmodels "recruitment-tracker-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Provider - хранилище журнала прохождения этапов.
// Инвариант "не более одной активной записи на (заявка, этап)" обеспечивает
// движок переходов, вызывая DeactivateActive и Create в одной транзакции.
type Provider interface {
	Create(rec dbmodels.StageHistory) (id string, err error)
	GetActive(applicationID string, stage models.Stage) (*dbmodels.StageHistory, error)
	DeactivateActive(applicationID string, stage models.Stage) error
	ListActive(applicationID string) (list []dbmodels.StageHistory, err error)
	ListByApplication(applicationID string) (list []dbmodels.StageHistory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.StageHistory) (id string, err error) {
	err = i.db.
		Omit("Application", "Status").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetActive(applicationID string, stage models.Stage) (*dbmodels.StageHistory, error) {
	rec := dbmodels.StageHistory{}
	err := i.db.
		Model(&dbmodels.StageHistory{}).
		Where("application_id = ?", applicationID).
		Where("stage = ?", stage).
		Where("is_active = true").
		Preload("Status").
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

func (i impl) DeactivateActive(applicationID string, stage models.Stage) error {
	err := i.db.
		Model(&dbmodels.StageHistory{}).
		Where("application_id = ?", applicationID).
		Where("stage = ?", stage).
		Where("is_active = true").
		Update("is_active", false).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) ListActive(applicationID string) (list []dbmodels.StageHistory, err error) {
	list = []dbmodels.StageHistory{}
	err = i.db.
		Model(&dbmodels.StageHistory{}).
		Where("application_id = ?", applicationID).
		Where("is_active = true").
		Order("created_at").
		Preload("Status").
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

func (i impl) ListByApplication(applicationID string) (list []dbmodels.StageHistory, err error) {
	list = []dbmodels.StageHistory{}
	err = i.db.
		Model(&dbmodels.StageHistory{}).
		Where("application_id = ?", applicationID).
		Order("created_at").
		Preload("Status").
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
