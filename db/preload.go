package db

import (
	"time"

	statusdictstore "recruitment-tracker-backend/lib/dicts/status/store"
	"recruitment-tracker-backend/models"
	dbmodels "recruitment-tracker-backend/models/db"

	"github.com/google/uuid"
	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

func InitPreload() {
	fillStatuses()
	fillCandidates()
	fillVacancyPeriods()
}

type statusSeed struct {
	code        models.StatusCode
	name        string
	description string
}

// узлы машины состояний для каждого рабочего этапа
var workingStatusSeeds = []statusSeed{
	{code: models.StatusCodePending, name: "Ожидает обработки", description: "Заявка ожидает рассмотрения по этапу"},
	{code: models.StatusCodeScheduled, name: "Назначено", description: "Назначена дата проведения этапа"},
	{code: models.StatusCodeInProgress, name: "В процессе", description: "Этап в процессе прохождения"},
	{code: models.StatusCodePassed, name: "Пройден", description: "Этап пройден успешно"},
	{code: models.StatusCodeFailed, name: "Не пройден", description: "Этап не пройден"},
}

func fillStatuses() {
	store := statusdictstore.NewInstance(DB)
	existed, err := store.List()
	if err != nil {
		log.WithError(err).Error("ошибка получения справочника статусов")
		return
	}
	existedSet := map[string]bool{}
	for _, rec := range existed {
		existedSet[string(rec.Stage)+"/"+string(rec.Code)] = true
	}
	added := 0
	add := func(stage models.Stage, seed statusSeed) {
		if existedSet[string(stage)+"/"+string(seed.code)] {
			return
		}
		rec := dbmodels.Status{
			BaseModel: dbmodels.BaseModel{
				ID: uuid.New().String(),
			},
			Name:        seed.name,
			Code:        seed.code,
			Stage:       stage,
			Description: seed.description,
			IsActive:    true,
		}
		if _, err := store.Create(rec); err != nil {
			log.WithError(err).
				WithField("stage", stage).
				WithField("code", seed.code).
				Error("ошибка добавления статуса в справочник")
			return
		}
		added++
	}
	for _, stage := range models.WorkingStages() {
		for _, seed := range workingStatusSeeds {
			add(stage, seed)
		}
	}
	add(models.StageAccepted, statusSeed{code: models.StatusCodeAccepted, name: "Принят", description: "Итоговое решение: кандидат принят"})
	add(models.StageRejected, statusSeed{code: models.StatusCodeRejected, name: "Отклонен", description: "Итоговое решение: кандидат отклонен"})
	if added > 0 {
		log.WithField("count", added).Info("справочник статусов дополнен")
	}
}

const seedCompanyID = "00000000-0000-0000-0000-000000000001"

// стартовые данные пустой базы: без кандидатов и периодов набора
// заявку создать не через что
var candidateSeeds = []dbmodels.Candidate{
	{FirstName: "Иван", LastName: "Петров", MiddleName: "Сергеевич", Phone: "+79990000001", Email: "i.petrov@example.com", Tags: pq.StringArray{"b2b", "excel"}},
	{FirstName: "Мария", LastName: "Иванова", Phone: "+79990000002", Email: "m.ivanova@example.com", Tags: pq.StringArray{"аналитика"}},
	{FirstName: "Олег", LastName: "Сидоров", Phone: "+79990000003", Email: "o.sidorov@example.com"},
}

var vacancyPeriodSeeds = []dbmodels.VacancyPeriod{
	{CompanyID: seedCompanyID, PositionName: "Менеджер по продажам", PeriodStart: time.Now().AddDate(0, -1, 0), PeriodEnd: time.Now().AddDate(0, 2, 0), IsOpen: true},
	{CompanyID: seedCompanyID, PositionName: "Диспетчер", PeriodStart: time.Now().AddDate(0, 0, -14), PeriodEnd: time.Now().AddDate(0, 1, 0), IsOpen: true},
}

func fillCandidates() {
	var count int64
	if err := DB.Model(&dbmodels.Candidate{}).Count(&count).Error; err != nil {
		log.WithError(err).Error("ошибка проверки заполнения кандидатов")
		return
	}
	if count > 0 {
		return
	}
	for _, rec := range candidateSeeds {
		rec.ID = uuid.New().String()
		if err := DB.Create(&rec).Error; err != nil {
			log.WithError(err).
				WithField("candidate", rec.GetFIO()).
				Error("ошибка добавления кандидата")
		}
	}
	log.WithField("count", len(candidateSeeds)).Info("созданы стартовые кандидаты")
}

func fillVacancyPeriods() {
	var count int64
	if err := DB.Model(&dbmodels.VacancyPeriod{}).Count(&count).Error; err != nil {
		log.WithError(err).Error("ошибка проверки заполнения периодов набора")
		return
	}
	if count > 0 {
		return
	}
	for _, rec := range vacancyPeriodSeeds {
		rec.ID = uuid.New().String()
		if err := DB.Create(&rec).Error; err != nil {
			log.WithError(err).
				WithField("position", rec.PositionName).
				Error("ошибка добавления периода набора")
		}
	}
	log.WithField("count", len(vacancyPeriodSeeds)).Info("созданы стартовые периоды набора")
}
