package applicantstore

import (
	"recruitment-tracker-backend/models"
	dbmodels "recruitment-tracker-backend/models/db"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Application) (id string, err error)
	Update(id string, updMap map[string]interface{}) error
	GetByID(id string) (rec *dbmodels.Application, err error)
	ListByStage(stage models.Stage, filter dbmodels.ApplicationFilter, page, limit int) (list []dbmodels.Application, err error)
	ListCountByStage(stage models.Stage, filter dbmodels.ApplicationFilter) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Application) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		if IsDuplicateErr(err) {
			return "", models.ErrDuplicateApplication
		}
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Application{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.ErrApplicationNotFound
	}
	return nil
}

func (i impl) GetByID(id string) (*dbmodels.Application, error) {
	rec := dbmodels.Application{}
	err := i.db.
		Model(&dbmodels.Application{}).
		Where("id = ?", id).
		Preload(clause.Associations).
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

func (i impl) ListByStage(stage models.Stage, filter dbmodels.ApplicationFilter, page, limit int) (list []dbmodels.Application, err error) {
	list = []dbmodels.Application{}
	tx := i.db.
		Model(dbmodels.Application{}).
		Where("applications.current_stage = ?", stage)
	i.addFilter(tx, filter)
	offset := (page - 1) * limit
	tx.Limit(limit).Offset(offset)
	tx.Order("applications.applied_at")
	err = tx.Preload(clause.Associations).Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListCountByStage(stage models.Stage, filter dbmodels.ApplicationFilter) (count int64, err error) {
	var rowCount int64
	tx := i.db.
		Model(dbmodels.Application{}).
		Where("applications.current_stage = ?", stage)
	i.addFilter(tx, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		return 0, errors.Wrap(err, "ошибка получения общего количества заявок по этапу")
	}
	return rowCount, nil
}

func (i impl) addFilter(tx *gorm.DB, filter dbmodels.ApplicationFilter) {
	if filter.PeriodID != "" {
		tx.Where("applications.vacancy_period_id = ?", filter.PeriodID)
	}
	if filter.CompanyID != "" {
		tx.Joins("left join vacancy_periods as vp on applications.vacancy_period_id = vp.id").
			Where("vp.company_id = ?", filter.CompanyID)
	}
}

// IsDuplicateErr - нарушение уникальности (кандидат, период набора)
func IsDuplicateErr(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
