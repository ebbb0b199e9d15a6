package statusprovider

import (
	"sync"

	"recruitment-tracker-backend/db"
	statusdictstore "recruitment-tracker-backend/lib/dicts/status/store"
	"recruitment-tracker-backend/models"
	dictapimodels "recruitment-tracker-backend/models/api/dict"
	dbmodels "recruitment-tracker-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Provider - реестр статусов. Справочник заполняется при старте,
// в рантайме не меняется, поэтому читается из кеша без обращений к БД.
type Provider interface {
	StatusFor(stage models.Stage, code models.StatusCode) (*dbmodels.Status, error)
	List() (list []dictapimodels.StatusView, err error)
}

var Instance Provider

func NewHandler() error {
	inst := &impl{
		store: statusdictstore.NewInstance(db.DB),
		cache: map[cacheKey]dbmodels.Status{},
	}
	if err := inst.reload(); err != nil {
		return errors.Wrap(err, "ошибка загрузки справочника статусов")
	}
	Instance = inst
	return nil
}

type cacheKey struct {
	stage models.Stage
	code  models.StatusCode
}

type impl struct {
	store statusdictstore.Provider
	mx    sync.RWMutex
	cache map[cacheKey]dbmodels.Status
}

func (i *impl) StatusFor(stage models.Stage, code models.StatusCode) (*dbmodels.Status, error) {
	i.mx.RLock()
	rec, ok := i.cache[cacheKey{stage: stage, code: code}]
	i.mx.RUnlock()
	if !ok {
		// ошибка конфигурации, а не пользовательская: справочник засеян не полностью
		return nil, errors.Wrapf(models.ErrUnknownStatus, "этап: %v, код: %v", stage, code)
	}
	return &rec, nil
}

func (i *impl) List() (list []dictapimodels.StatusView, err error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, err
	}
	result := make([]dictapimodels.StatusView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, dictapimodels.ConvertStatus(rec))
	}
	return result, nil
}

func (i *impl) reload() error {
	recList, err := i.store.List()
	if err != nil {
		return err
	}
	i.mx.Lock()
	defer i.mx.Unlock()
	for _, rec := range recList {
		i.cache[cacheKey{stage: rec.Stage, code: rec.Code}] = rec
	}
	log.WithField("count", len(recList)).Info("справочник статусов загружен в кеш")
	return nil
}
