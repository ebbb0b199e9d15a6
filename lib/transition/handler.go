package transition

import (
	"database/sql"
	"time"

	"recruitment-tracker-backend/db"
	applicantstore "recruitment-tracker-backend/lib/applicant/store"
	statusprovider "recruitment-tracker-backend/lib/dicts/status"
	stagehistorystore "recruitment-tracker-backend/lib/stage-history/store"
	"recruitment-tracker-backend/models"
	applicationapimodels "recruitment-tracker-backend/models/api/application"
	dbmodels "recruitment-tracker-backend/models/db"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Provider - движок переходов по этапам воронки.
// Перевод выполняется в одной сериализуемой транзакции: деактивация прежней
// активной записи журнала, вставка новой, обновление заявки и, при проходе
// этапа, подготовка следующего этапа.
type Provider interface {
	Transition(applicationID string, target models.Stage, outcome models.StatusCode, payload applicationapimodels.TransitionPayload) (applicationapimodels.StageHistoryView, error)
	ListActiveHistory(applicationID string) (list []applicationapimodels.StageHistoryView, err error)
	ListHistory(applicationID string) (list []applicationapimodels.StageHistoryView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		registry: statusprovider.Instance,
		inTx:     gormUnit,
	}
}

// количество попыток транзакции при конфликте сериализации
const txAttempts = 3

type txStores struct {
	applicants applicantstore.Provider
	history    stagehistorystore.Provider
}

type impl struct {
	registry statusprovider.Provider
	inTx     func(fn func(s txStores) error) error
}

func gormUnit(fn func(s txStores) error) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		return fn(txStores{
			applicants: applicantstore.NewInstance(tx),
			history:    stagehistorystore.NewInstance(tx),
		})
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

func (i *impl) Transition(applicationID string, target models.Stage, outcome models.StatusCode, payload applicationapimodels.TransitionPayload) (applicationapimodels.StageHistoryView, error) {
	logger := log.
		WithField("application_id", applicationID).
		WithField("stage", target).
		WithField("outcome", outcome)
	if err := validate(target, outcome, payload); err != nil {
		return applicationapimodels.StageHistoryView{}, err
	}

	// все нужные статусы разрешаем до транзакции:
	// ошибка конфигурации справочника обрывает перевод без побочных эффектов
	status, err := i.registry.StatusFor(target, outcome)
	if err != nil {
		return applicationapimodels.StageHistoryView{}, err
	}
	var nextStage models.Stage
	var nextStatus, finalStatus *dbmodels.Status
	switch {
	case outcome.IsAdvancing():
		if next, ok := target.Next(); ok {
			nextStage = next
			nextStatus, err = i.registry.StatusFor(next, models.StatusCodePending)
		} else {
			finalStatus, err = i.registry.StatusFor(models.StageAccepted, models.StatusCodeAccepted)
		}
	case outcome.IsRejecting():
		finalStatus, err = i.registry.StatusFor(models.StageRejected, models.StatusCodeRejected)
	}
	if err != nil {
		return applicationapimodels.StageHistoryView{}, err
	}

	var entry dbmodels.StageHistory
	var resultStage models.Stage
	err = i.runUnit(func(s txStores) error {
		app, err := s.applicants.GetByID(applicationID)
		if err != nil {
			return err
		}
		if app == nil {
			return models.ErrApplicationNotFound
		}

		if err = s.history.DeactivateActive(applicationID, target); err != nil {
			return err
		}
		now := time.Now()
		entry = dbmodels.StageHistory{
			ApplicationID: applicationID,
			Stage:         target,
			StatusID:      status.ID,
			Score:         payload.Score,
			Notes:         payload.Notes,
			ScheduledAt:   payload.ScheduledAt,
			ProcessedAt:   &now,
			IsActive:      true,
		}
		if payload.ReviewerID != "" {
			reviewerID := payload.ReviewerID
			entry.ReviewerID = &reviewerID
		}
		if outcome.IsAdvancing() || outcome.IsRejecting() {
			entry.CompletedAt = &now
		}
		id, err := s.history.Create(entry)
		if err != nil {
			return err
		}
		entry.ID = id
		entry.Status = status

		updMap := map[string]interface{}{}
		if target == app.CurrentStage {
			// статус заявки отражает только ее текущий этап: результат по
			// другому этапу ложится в журнал, не трогая статус заявки
			updMap["status_id"] = status.ID
		}
		resultStage = app.CurrentStage
		switch {
		case outcome.IsAdvancing() && nextStage != "":
			// подготовка следующего этапа: ожидающая запись журнала
			if err = s.history.DeactivateActive(applicationID, nextStage); err != nil {
				return err
			}
			boot := dbmodels.StageHistory{
				ApplicationID: applicationID,
				Stage:         nextStage,
				StatusID:      nextStatus.ID,
				IsActive:      true,
			}
			if _, err = s.history.Create(boot); err != nil {
				return err
			}
			updMap["status_id"] = nextStatus.ID
			updMap["current_stage"] = nextStage
			resultStage = nextStage
		case outcome.IsAdvancing():
			// пройдено собеседование - итоговое решение "принят"
			updMap["status_id"] = finalStatus.ID
			updMap["current_stage"] = models.StageAccepted
			resultStage = models.StageAccepted
		case outcome.IsRejecting():
			updMap["status_id"] = finalStatus.ID
			updMap["current_stage"] = models.StageRejected
			resultStage = models.StageRejected
		}
		return s.applicants.Update(applicationID, updMap)
	})
	if err != nil {
		return applicationapimodels.StageHistoryView{}, err
	}

	logger = logger.WithField("entry_id", entry.ID)
	logger.Info("перевод по этапу зафиксирован в журнале")
	if resultStage != target {
		logger.WithField("new_stage", resultStage).Info("заявка переведена на новый этап")
	}
	if resultStage.IsTerminal() {
		logger.WithField("decision", resultStage).Info("по заявке принято итоговое решение")
	}
	return applicationapimodels.ConvertHistory(entry), nil
}

func (i *impl) ListActiveHistory(applicationID string) ([]applicationapimodels.StageHistoryView, error) {
	store := stagehistorystore.NewInstance(db.DB)
	list, err := store.ListActive(applicationID)
	if err != nil {
		return nil, err
	}
	return convertList(list), nil
}

func (i *impl) ListHistory(applicationID string) ([]applicationapimodels.StageHistoryView, error) {
	store := stagehistorystore.NewInstance(db.DB)
	list, err := store.ListByApplication(applicationID)
	if err != nil {
		return nil, err
	}
	return convertList(list), nil
}

func convertList(list []dbmodels.StageHistory) []applicationapimodels.StageHistoryView {
	result := make([]applicationapimodels.StageHistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, applicationapimodels.ConvertHistory(rec))
	}
	return result
}

// runUnit выполняет атомарную единицу работы с ограниченным числом повторов
// при конфликте сериализации
func (i *impl) runUnit(fn func(s txStores) error) error {
	var err error
	for attempt := 1; attempt <= txAttempts; attempt++ {
		err = i.inTx(fn)
		if err == nil || !isRetryableTxErr(err) {
			return err
		}
		log.WithError(err).
			WithField("attempt", attempt).
			Warn("конфликт сериализации транзакции перевода, повтор")
	}
	return errors.Wrap(models.ErrConcurrencyConflict, err.Error())
}

// isRetryableTxErr - serialization_failure и deadlock_detected
func isRetryableTxErr(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

func validate(target models.Stage, outcome models.StatusCode, payload applicationapimodels.TransitionPayload) error {
	if !target.IsWorking() {
		return models.NewValidationError("target_stage", "перевод возможен только по рабочим этапам")
	}
	if outcome.IsFinal() {
		return models.NewValidationError("outcome_code", "итоговый статус назначается движком при проходе или провале этапа")
	}
	if outcome.IsRejecting() && payload.Notes == "" {
		return models.NewValidationError("notes", "при отказе необходимо указать причину")
	}
	if outcome.IsAdvancing() && payload.Score == nil {
		return models.NewValidationError("score", "при проходе этапа необходимо указать оценку")
	}
	if outcome == models.StatusCodeScheduled && payload.ScheduledAt == nil {
		return models.NewValidationError("scheduled_at", "не указана дата проведения")
	}
	return nil
}
