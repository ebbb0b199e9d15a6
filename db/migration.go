package db

import (
	dbmodels "recruitment-tracker-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Candidate{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Candidate")
	}
	if err := DB.AutoMigrate(&dbmodels.VacancyPeriod{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры VacancyPeriod")
	}
	if err := DB.AutoMigrate(&dbmodels.Status{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Status")
	}
	if err := DB.AutoMigrate(&dbmodels.Application{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Application")
	}
	if err := DB.AutoMigrate(&dbmodels.StageHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры StageHistory")
	}
	if err := DB.AutoMigrate(&dbmodels.ApplicationReport{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ApplicationReport")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
