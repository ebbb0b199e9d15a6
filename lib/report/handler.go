package report

import (
	"recruitment-tracker-backend/db"
	applicantstore "recruitment-tracker-backend/lib/applicant/store"
	reportstore "recruitment-tracker-backend/lib/report/store"
	stagehistorystore "recruitment-tracker-backend/lib/stage-history/store"
	"recruitment-tracker-backend/models"
	applicationapimodels "recruitment-tracker-backend/models/api/application"
	dbmodels "recruitment-tracker-backend/models/db"

	log "github.com/sirupsen/logrus"
)

// Provider строит сводный отчет по заявке из активных записей журнала.
// Отчет готов только когда оценки есть по всем трем рабочим этапам,
// иначе BuildReport возвращает nil без записи - это не ошибка.
type Provider interface {
	BuildReport(applicationID string) (*applicationapimodels.ApplicationReportView, error)
	GetReport(applicationID string) (*applicationapimodels.ApplicationReportView, error)
	ListReports() (list []dbmodels.ApplicationReport, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		appStore:     applicantstore.NewInstance(db.DB),
		historyStore: stagehistorystore.NewInstance(db.DB),
		store:        reportstore.NewInstance(db.DB),
	}
}

type impl struct {
	appStore     applicantstore.Provider
	historyStore stagehistorystore.Provider
	store        reportstore.Provider
}

func (i impl) BuildReport(applicationID string) (*applicationapimodels.ApplicationReportView, error) {
	logger := log.WithField("application_id", applicationID)
	app, err := i.appStore.GetByID(applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, models.ErrApplicationNotFound
	}
	active, err := i.historyStore.ListActive(applicationID)
	if err != nil {
		return nil, err
	}
	byStage := map[models.Stage]dbmodels.StageHistory{}
	for _, rec := range active {
		byStage[rec.Stage] = rec
	}
	scores := make([]int, 0, 3)
	for _, stage := range models.WorkingStages() {
		rec, ok := byStage[stage]
		if !ok || rec.Score == nil {
			// оценки есть не по всем этапам - отчет строить рано
			return nil, nil
		}
		scores = append(scores, *rec.Score)
	}

	rec := dbmodels.ApplicationReport{
		ApplicationID:       applicationID,
		AdministrationScore: scores[0],
		AssessmentScore:     scores[1],
		InterviewScore:      scores[2],
		// решение продукта: этапы не взвешиваются, итог - простое среднее
		OverallScore: float64(scores[0]+scores[1]+scores[2]) / 3,
	}
	if app.CurrentStage.IsTerminal() {
		rec.FinalDecision = string(app.CurrentStage)
	}
	if interview, ok := byStage[models.StageInterview]; ok {
		rec.DecisionMadeBy = interview.ReviewerID
		rec.DecisionMadeAt = interview.CompletedAt
	}
	if _, err = i.store.Upsert(rec); err != nil {
		return nil, err
	}
	logger.
		WithField("overall_score", rec.OverallScore).
		WithField("final_decision", rec.FinalDecision).
		Info("сводный отчет по заявке построен")
	result := applicationapimodels.ConvertReport(rec)
	return &result, nil
}

func (i impl) GetReport(applicationID string) (*applicationapimodels.ApplicationReportView, error) {
	rec, err := i.store.GetByApplicationID(applicationID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		// отчета еще нет - пробуем построить
		return i.BuildReport(applicationID)
	}
	result := applicationapimodels.ConvertReport(*rec)
	return &result, nil
}

func (i impl) ListReports() ([]dbmodels.ApplicationReport, error) {
	return i.store.List()
}
