package transition

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"recruitment-tracker-backend/models"
	applicationapimodels "recruitment-tracker-backend/models/api/application"
	dictapimodels "recruitment-tracker-backend/models/api/dict"
	dbmodels "recruitment-tracker-backend/models/db"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// реестр статусов на базе засеянного справочника, без БД
type stubRegistry struct {
	statuses map[string]dbmodels.Status
}

func newStubRegistry() *stubRegistry {
	reg := &stubRegistry{statuses: map[string]dbmodels.Status{}}
	codes := []models.StatusCode{
		models.StatusCodePending, models.StatusCodeScheduled, models.StatusCodeInProgress,
		models.StatusCodePassed, models.StatusCodeFailed,
	}
	for _, stage := range models.WorkingStages() {
		for _, code := range codes {
			reg.add(stage, code)
		}
	}
	reg.add(models.StageAccepted, models.StatusCodeAccepted)
	reg.add(models.StageRejected, models.StatusCodeRejected)
	return reg
}

func (r *stubRegistry) add(stage models.Stage, code models.StatusCode) {
	id := string(stage) + "/" + string(code)
	r.statuses[id] = dbmodels.Status{
		BaseModel: dbmodels.BaseModel{ID: id},
		Name:      id,
		Code:      code,
		Stage:     stage,
		IsActive:  true,
	}
}

func (r *stubRegistry) StatusFor(stage models.Stage, code models.StatusCode) (*dbmodels.Status, error) {
	rec, ok := r.statuses[string(stage)+"/"+string(code)]
	if !ok {
		return nil, errors.Wrapf(models.ErrUnknownStatus, "этап: %v, код: %v", stage, code)
	}
	return &rec, nil
}

func (r *stubRegistry) List() ([]dictapimodels.StatusView, error) {
	return nil, nil
}

// memStore - атомарное хранилище заявок и журнала в памяти,
// реализует контракты стора заявок и стора журнала
type memStore struct {
	mx      sync.Mutex
	apps    map[string]dbmodels.Application
	history []dbmodels.StageHistory
	nextID  int
}

func newMemStore() *memStore {
	return &memStore{apps: map[string]dbmodels.Application{}}
}

func (m *memStore) GetByID(id string) (*dbmodels.Application, error) {
	rec, ok := m.apps[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *memStore) Update(id string, updMap map[string]interface{}) error {
	rec, ok := m.apps[id]
	if !ok {
		return models.ErrApplicationNotFound
	}
	if v, ok := updMap["status_id"]; ok {
		rec.StatusID = v.(string)
	}
	if v, ok := updMap["current_stage"]; ok {
		rec.CurrentStage = v.(models.Stage)
	}
	m.apps[id] = rec
	return nil
}

func (m *memStore) ListByStage(stage models.Stage, filter dbmodels.ApplicationFilter, page, limit int) ([]dbmodels.Application, error) {
	return nil, nil
}

func (m *memStore) ListCountByStage(stage models.Stage, filter dbmodels.ApplicationFilter) (int64, error) {
	return 0, nil
}

type memAppStore struct{ *memStore }

func (m memAppStore) Create(rec dbmodels.Application) (string, error) {
	m.apps[rec.ID] = rec
	return rec.ID, nil
}

type memHistoryStore struct{ *memStore }

func (m memHistoryStore) Create(rec dbmodels.StageHistory) (string, error) {
	m.nextID++
	rec.ID = fmt.Sprintf("h-%d", m.nextID)
	m.history = append(m.history, rec)
	return rec.ID, nil
}

func (m memHistoryStore) GetActive(applicationID string, stage models.Stage) (*dbmodels.StageHistory, error) {
	for idx := range m.history {
		rec := m.history[idx]
		if rec.ApplicationID == applicationID && rec.Stage == stage && rec.IsActive {
			return &rec, nil
		}
	}
	return nil, nil
}

func (m memHistoryStore) DeactivateActive(applicationID string, stage models.Stage) error {
	for idx := range m.history {
		if m.history[idx].ApplicationID == applicationID && m.history[idx].Stage == stage {
			m.history[idx].IsActive = false
		}
	}
	return nil
}

func (m memHistoryStore) ListActive(applicationID string) ([]dbmodels.StageHistory, error) {
	result := []dbmodels.StageHistory{}
	for _, rec := range m.history {
		if rec.ApplicationID == applicationID && rec.IsActive {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (m memHistoryStore) ListByApplication(applicationID string) ([]dbmodels.StageHistory, error) {
	result := []dbmodels.StageHistory{}
	for _, rec := range m.history {
		if rec.ApplicationID == applicationID {
			result = append(result, rec)
		}
	}
	return result, nil
}

// memUnit - атомарная единица работы: монопольный доступ и откат при ошибке
func memUnit(ms *memStore) func(fn func(s txStores) error) error {
	return func(fn func(s txStores) error) error {
		ms.mx.Lock()
		defer ms.mx.Unlock()
		appsBackup := make(map[string]dbmodels.Application, len(ms.apps))
		for k, v := range ms.apps {
			appsBackup[k] = v
		}
		historyBackup := make([]dbmodels.StageHistory, len(ms.history))
		copy(historyBackup, ms.history)
		nextIDBackup := ms.nextID
		err := fn(txStores{
			applicants: memAppStore{ms},
			history:    memHistoryStore{ms},
		})
		if err != nil {
			ms.apps = appsBackup
			ms.history = historyBackup
			ms.nextID = nextIDBackup
		}
		return err
	}
}

func newTestEngine(ms *memStore) *impl {
	return &impl{
		registry: newStubRegistry(),
		inTx:     memUnit(ms),
	}
}

// заявка на административном отборе со стартовой ожидающей записью журнала
func seedApplication(ms *memStore, id string) {
	ms.apps[id] = dbmodels.Application{
		BaseModel:       dbmodels.BaseModel{ID: id},
		CandidateID:     "c-" + id,
		VacancyPeriodID: "vp-1",
		StatusID:        "admin_selection/pending",
		CurrentStage:    models.StageAdminSelection,
		AppliedAt:       time.Now(),
	}
	ms.nextID++
	ms.history = append(ms.history, dbmodels.StageHistory{
		BaseModel:     dbmodels.BaseModel{ID: fmt.Sprintf("h-%d", ms.nextID)},
		ApplicationID: id,
		Stage:         models.StageAdminSelection,
		StatusID:      "admin_selection/pending",
		IsActive:      true,
	})
}

func stageEntries(ms *memStore, appID string, stage models.Stage) (all, active []dbmodels.StageHistory) {
	for _, rec := range ms.history {
		if rec.ApplicationID != appID || rec.Stage != stage {
			continue
		}
		all = append(all, rec)
		if rec.IsActive {
			active = append(active, rec)
		}
	}
	return all, active
}

// инвариант: не более одной активной записи на (заявка, этап)
func requireSingleActive(t *testing.T, ms *memStore, appID string) {
	t.Helper()
	stages := []models.Stage{
		models.StageAdminSelection, models.StagePsychTest, models.StageInterview,
		models.StageAccepted, models.StageRejected,
	}
	for _, stage := range stages {
		_, active := stageEntries(ms, appID, stage)
		require.LessOrEqual(t, len(active), 1, "этап %v", stage)
	}
}

func scoreOf(v int) *int {
	return &v
}

func TestTransition(t *testing.T) {
	t.Run(`scenario A: admin passed advances to psych test check`, func(t *testing.T) {
		ms := newMemStore()
		seedApplication(ms, "X")
		engine := newTestEngine(ms)

		view, err := engine.Transition("X", models.StageAdminSelection, models.StatusCodePassed,
			applicationapimodels.TransitionPayload{Score: scoreOf(80), ReviewerID: "7"})
		require.Nil(t, err)
		require.Equal(t, "passed", view.StatusCode)
		require.True(t, view.IsActive)

		all, active := stageEntries(ms, "X", models.StageAdminSelection)
		require.Len(t, all, 2)
		require.Len(t, active, 1)
		require.Equal(t, "admin_selection/passed", active[0].StatusID)
		require.NotNil(t, active[0].Score)
		require.Equal(t, 80, *active[0].Score)
		require.NotNil(t, active[0].ReviewerID)
		require.Equal(t, "7", *active[0].ReviewerID)
		require.NotNil(t, active[0].ProcessedAt)
		require.NotNil(t, active[0].CompletedAt)

		// следующий этап подготовлен ожидающей записью
		all, active = stageEntries(ms, "X", models.StagePsychTest)
		require.Len(t, all, 1)
		require.Len(t, active, 1)
		require.Equal(t, "psych_test/pending", active[0].StatusID)

		app, _ := ms.GetByID("X")
		require.Equal(t, models.StagePsychTest, app.CurrentStage)
		require.Equal(t, "psych_test/pending", app.StatusID)
		requireSingleActive(t, ms, "X")
	})

	t.Run(`scenario B: correction overwrites terminal outcome check`, func(t *testing.T) {
		ms := newMemStore()
		seedApplication(ms, "X")
		engine := newTestEngine(ms)

		_, err := engine.Transition("X", models.StageAdminSelection, models.StatusCodePassed,
			applicationapimodels.TransitionPayload{Score: scoreOf(80), ReviewerID: "7"})
		require.Nil(t, err)

		// корректировка: тот же этап, теперь отказ
		_, err = engine.Transition("X", models.StageAdminSelection, models.StatusCodeFailed,
			applicationapimodels.TransitionPayload{Notes: "неполный пакет документов"})
		require.Nil(t, err)

		all, active := stageEntries(ms, "X", models.StageAdminSelection)
		require.Len(t, all, 3) // стартовая pending, passed, failed
		require.Len(t, active, 1)
		require.Equal(t, "admin_selection/failed", active[0].StatusID)
		require.Equal(t, "неполный пакет документов", active[0].Notes)

		app, _ := ms.GetByID("X")
		require.Equal(t, models.StageRejected, app.CurrentStage)
		require.Equal(t, "rejected/rejected", app.StatusID)
		requireSingleActive(t, ms, "X")
	})

	t.Run(`terminal law: interview passed accepts check`, func(t *testing.T) {
		ms := newMemStore()
		seedApplication(ms, "Y")
		engine := newTestEngine(ms)

		_, err := engine.Transition("Y", models.StageAdminSelection, models.StatusCodePassed,
			applicationapimodels.TransitionPayload{Score: scoreOf(70)})
		require.Nil(t, err)
		_, err = engine.Transition("Y", models.StagePsychTest, models.StatusCodePassed,
			applicationapimodels.TransitionPayload{Score: scoreOf(80)})
		require.Nil(t, err)
		_, err = engine.Transition("Y", models.StageInterview, models.StatusCodePassed,
			applicationapimodels.TransitionPayload{Score: scoreOf(90), ReviewerID: "7"})
		require.Nil(t, err)

		app, _ := ms.GetByID("Y")
		require.Equal(t, models.StageAccepted, app.CurrentStage)
		require.Equal(t, "accepted/accepted", app.StatusID)
		requireSingleActive(t, ms, "Y")
	})

	t.Run(`terminal law: failed rejects from any stage check`, func(t *testing.T) {
		for _, stage := range models.WorkingStages() {
			ms := newMemStore()
			seedApplication(ms, "Z")
			engine := newTestEngine(ms)

			_, err := engine.Transition("Z", stage, models.StatusCodeFailed,
				applicationapimodels.TransitionPayload{Notes: "отказ"})
			require.Nil(t, err)

			app, _ := ms.GetByID("Z")
			require.Equal(t, models.StageRejected, app.CurrentStage, "этап %v", stage)
			require.Equal(t, "rejected/rejected", app.StatusID)
		}
	})

	t.Run(`neutral outcome keeps current stage check`, func(t *testing.T) {
		ms := newMemStore()
		seedApplication(ms, "X")
		engine := newTestEngine(ms)

		when := time.Now().Add(48 * time.Hour)
		_, err := engine.Transition("X", models.StageAdminSelection, models.StatusCodeScheduled,
			applicationapimodels.TransitionPayload{ScheduledAt: &when})
		require.Nil(t, err)

		all, active := stageEntries(ms, "X", models.StageAdminSelection)
		require.Len(t, all, 2)
		require.Len(t, active, 1)
		require.Equal(t, "admin_selection/scheduled", active[0].StatusID)
		require.NotNil(t, active[0].ScheduledAt)
		require.Nil(t, active[0].CompletedAt)

		app, _ := ms.GetByID("X")
		require.Equal(t, models.StageAdminSelection, app.CurrentStage)
		require.Equal(t, "admin_selection/scheduled", app.StatusID)
	})

	t.Run(`neutral outcome on future stage keeps application status check`, func(t *testing.T) {
		ms := newMemStore()
		seedApplication(ms, "X")
		engine := newTestEngine(ms)

		// собеседование назначили заранее, заявка еще на административном отборе
		when := time.Now().Add(72 * time.Hour)
		_, err := engine.Transition("X", models.StageInterview, models.StatusCodeScheduled,
			applicationapimodels.TransitionPayload{ScheduledAt: &when})
		require.Nil(t, err)

		_, active := stageEntries(ms, "X", models.StageInterview)
		require.Len(t, active, 1)
		require.Equal(t, "interview/scheduled", active[0].StatusID)

		// статус заявки остается статусом ее текущего этапа
		app, _ := ms.GetByID("X")
		require.Equal(t, models.StageAdminSelection, app.CurrentStage)
		require.Equal(t, "admin_selection/pending", app.StatusID)
	})

	t.Run(`validation check`, func(t *testing.T) {
		ms := newMemStore()
		seedApplication(ms, "X")
		engine := newTestEngine(ms)

		var vErr *models.ValidationError
		// отказ без причины
		_, err := engine.Transition("X", models.StageAdminSelection, models.StatusCodeFailed,
			applicationapimodels.TransitionPayload{})
		require.True(t, errors.As(err, &vErr))
		require.Equal(t, "notes", vErr.Field)

		// проход без оценки
		_, err = engine.Transition("X", models.StageInterview, models.StatusCodePassed,
			applicationapimodels.TransitionPayload{})
		require.True(t, errors.As(err, &vErr))
		require.Equal(t, "score", vErr.Field)

		// назначение без даты
		_, err = engine.Transition("X", models.StageAdminSelection, models.StatusCodeScheduled,
			applicationapimodels.TransitionPayload{})
		require.True(t, errors.As(err, &vErr))
		require.Equal(t, "scheduled_at", vErr.Field)

		// перевод напрямую в терминальный этап запрещен
		_, err = engine.Transition("X", models.StageAccepted, models.StatusCodeAccepted,
			applicationapimodels.TransitionPayload{})
		require.True(t, errors.As(err, &vErr))
		require.Equal(t, "target_stage", vErr.Field)

		// ошибки валидации не оставляют следов в журнале
		all, _ := stageEntries(ms, "X", models.StageAdminSelection)
		require.Len(t, all, 1)
	})

	t.Run(`application not found check`, func(t *testing.T) {
		ms := newMemStore()
		engine := newTestEngine(ms)

		_, err := engine.Transition("missing", models.StageAdminSelection, models.StatusCodePassed,
			applicationapimodels.TransitionPayload{Score: scoreOf(50)})
		require.True(t, errors.Is(err, models.ErrApplicationNotFound))
		require.Empty(t, ms.history)
	})

	t.Run(`unknown status aborts without side effects check`, func(t *testing.T) {
		ms := newMemStore()
		seedApplication(ms, "X")
		engine := newTestEngine(ms)
		reg := engine.registry.(*stubRegistry)
		delete(reg.statuses, "psych_test/pending")

		// статус следующего этапа не засеян - перевод обрывается целиком
		_, err := engine.Transition("X", models.StageAdminSelection, models.StatusCodePassed,
			applicationapimodels.TransitionPayload{Score: scoreOf(80)})
		require.True(t, errors.Is(err, models.ErrUnknownStatus))

		all, active := stageEntries(ms, "X", models.StageAdminSelection)
		require.Len(t, all, 1)
		require.Len(t, active, 1)
		require.Equal(t, "admin_selection/pending", active[0].StatusID)
		app, _ := ms.GetByID("X")
		require.Equal(t, models.StageAdminSelection, app.CurrentStage)
	})

	t.Run(`scenario D: concurrent interview pass check`, func(t *testing.T) {
		ms := newMemStore()
		seedApplication(ms, "Z")
		engine := newTestEngine(ms)

		_, err := engine.Transition("Z", models.StageAdminSelection, models.StatusCodePassed,
			applicationapimodels.TransitionPayload{Score: scoreOf(70)})
		require.Nil(t, err)
		_, err = engine.Transition("Z", models.StagePsychTest, models.StatusCodePassed,
			applicationapimodels.TransitionPayload{Score: scoreOf(80)})
		require.Nil(t, err)

		wg := sync.WaitGroup{}
		errs := make([]error, 2)
		for idx := 0; idx < 2; idx++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				_, errs[n] = engine.Transition("Z", models.StageInterview, models.StatusCodePassed,
					applicationapimodels.TransitionPayload{Score: scoreOf(90), ReviewerID: fmt.Sprintf("r-%d", n)})
			}(idx)
		}
		wg.Wait()
		require.Nil(t, errs[0])
		require.Nil(t, errs[1])

		// активная запись по собеседованию ровно одна, терминальное состояние консистентно
		_, active := stageEntries(ms, "Z", models.StageInterview)
		require.Len(t, active, 1)
		app, _ := ms.GetByID("Z")
		require.Equal(t, models.StageAccepted, app.CurrentStage)
		require.Equal(t, "accepted/accepted", app.StatusID)
		requireSingleActive(t, ms, "Z")
	})
}

func TestRunUnit(t *testing.T) {
	t.Run(`serialization failure retried check`, func(t *testing.T) {
		ms := newMemStore()
		seedApplication(ms, "X")
		engine := newTestEngine(ms)
		baseUnit := engine.inTx
		failures := 2
		engine.inTx = func(fn func(s txStores) error) error {
			if failures > 0 {
				failures--
				return &pgconn.PgError{Code: "40001"}
			}
			return baseUnit(fn)
		}

		_, err := engine.Transition("X", models.StageAdminSelection, models.StatusCodePassed,
			applicationapimodels.TransitionPayload{Score: scoreOf(80)})
		require.Nil(t, err)
		app, _ := ms.GetByID("X")
		require.Equal(t, models.StagePsychTest, app.CurrentStage)
	})

	t.Run(`retry attempts exhausted check`, func(t *testing.T) {
		ms := newMemStore()
		seedApplication(ms, "X")
		engine := newTestEngine(ms)
		engine.inTx = func(fn func(s txStores) error) error {
			return &pgconn.PgError{Code: "40001"}
		}

		_, err := engine.Transition("X", models.StageAdminSelection, models.StatusCodePassed,
			applicationapimodels.TransitionPayload{Score: scoreOf(80)})
		require.True(t, errors.Is(err, models.ErrConcurrencyConflict))
	})

	t.Run(`non retryable error surfaces check`, func(t *testing.T) {
		ms := newMemStore()
		seedApplication(ms, "X")
		engine := newTestEngine(ms)
		calls := 0
		engine.inTx = func(fn func(s txStores) error) error {
			calls++
			return errors.New("обрыв соединения")
		}

		_, err := engine.Transition("X", models.StageAdminSelection, models.StatusCodePassed,
			applicationapimodels.TransitionPayload{Score: scoreOf(80)})
		require.NotNil(t, err)
		require.False(t, errors.Is(err, models.ErrConcurrencyConflict))
		require.Equal(t, 1, calls)
	})
}
