package applicant

import (
	"time"

	"recruitment-tracker-backend/db"
	applicantstore "recruitment-tracker-backend/lib/applicant/store"
	statusprovider "recruitment-tracker-backend/lib/dicts/status"
	stagehistorystore "recruitment-tracker-backend/lib/stage-history/store"
	"recruitment-tracker-backend/models"
	applicationapimodels "recruitment-tracker-backend/models/api/application"
	dbmodels "recruitment-tracker-backend/models/db"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(request applicationapimodels.ApplicationCreateRequest) (id string, err error)
	GetByID(id string) (applicationapimodels.ApplicationView, error)
	List(filter applicationapimodels.ApplicationListFilter) (list []applicationapimodels.ApplicationView, rowCount int64, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:    applicantstore.NewInstance(db.DB),
		registry: statusprovider.Instance,
	}
}

type impl struct {
	store    applicantstore.Provider
	registry statusprovider.Provider
}

// Create заводит заявку и сразу ставит ее на административный отбор:
// первая ожидающая запись журнала создается в той же транзакции
func (i impl) Create(request applicationapimodels.ApplicationCreateRequest) (id string, err error) {
	logger := log.
		WithField("candidate_id", request.CandidateID).
		WithField("vacancy_period_id", request.VacancyPeriodID)
	pending, err := i.registry.StatusFor(models.StageAdminSelection, models.StatusCodePending)
	if err != nil {
		return "", err
	}
	recID := ""
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		rec := dbmodels.Application{
			CandidateID:     request.CandidateID,
			VacancyPeriodID: request.VacancyPeriodID,
			StatusID:        pending.ID,
			CurrentStage:    models.StageAdminSelection,
			AppliedAt:       time.Now(),
		}
		recID, err = applicantstore.NewInstance(tx).Create(rec)
		if err != nil {
			return err
		}
		boot := dbmodels.StageHistory{
			ApplicationID: recID,
			Stage:         models.StageAdminSelection,
			StatusID:      pending.ID,
			IsActive:      true,
		}
		_, err = stagehistorystore.NewInstance(tx).Create(boot)
		return err
	})
	if err != nil {
		return "", err
	}
	logger.WithField("rec_id", recID).Info("создана заявка кандидата")
	return recID, nil
}

func (i impl) GetByID(id string) (applicationapimodels.ApplicationView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return applicationapimodels.ApplicationView{}, err
	}
	if rec == nil {
		return applicationapimodels.ApplicationView{}, models.ErrApplicationNotFound
	}
	return applicationapimodels.ConvertApplication(*rec), nil
}

func (i impl) List(filter applicationapimodels.ApplicationListFilter) ([]applicationapimodels.ApplicationView, int64, error) {
	stage, err := models.ParseStage(filter.Stage)
	if err != nil {
		return nil, 0, err
	}
	storeFilter := dbmodels.ApplicationFilter{
		CompanyID: filter.CompanyID,
		PeriodID:  filter.PeriodID,
	}
	rowCount, err := i.store.ListCountByStage(stage, storeFilter)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	if int64(offset) > rowCount {
		return []applicationapimodels.ApplicationView{}, rowCount, nil
	}
	list, err := i.store.ListByStage(stage, storeFilter, page, limit)
	if err != nil {
		return nil, 0, err
	}
	result := make([]applicationapimodels.ApplicationView, 0, len(list))
	for _, rec := range list {
		result = append(result, applicationapimodels.ConvertApplication(rec))
	}
	return result, rowCount, nil
}
