package controllers

import (
	"recruitment-tracker-backend/models"
	apimodels "recruitment-tracker-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := ctx.Params("id")
	if id == "" {
		return "", errors.New("не указан идентификатор записи")
	}
	return id, nil
}

// SendError мапит ошибки ядра в http-статусы
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, err error) error {
	var vErr *models.ValidationError
	switch {
	case errors.Is(err, models.ErrApplicationNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, models.ErrDuplicateApplication):
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, models.ErrConcurrencyConflict):
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError("заявка изменяется другим пользователем, повторите запрос"))
	case errors.Is(err, models.ErrUnknownStatus):
		// ошибка конфигурации справочника, пользователю не исправить
		log.WithError(err).Error("справочник статусов заполнен не полностью")
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError("внутренняя ошибка конфигурации"))
	case errors.As(err, &vErr):
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(vErr.Error()))
	}
	log.WithError(err).Error("ошибка обработки запроса")
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
}
