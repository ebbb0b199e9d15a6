package apiv1

import (
	"recruitment-tracker-backend/controllers"
	"recruitment-tracker-backend/lib/applicant"
	"recruitment-tracker-backend/lib/report"
	"recruitment-tracker-backend/lib/transition"
	apimodels "recruitment-tracker-backend/models/api"
	applicationapimodels "recruitment-tracker-backend/models/api/application"

	"github.com/gofiber/fiber/v2"
)

type applicationApiController struct {
	controllers.BaseAPIController
}

func InitApplicationApiRouters(app *fiber.App) {
	controller := applicationApiController{}
	app.Route("application", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Get("", controller.get)
			idRouter.Put("transition", controller.transition) // зафиксировать результат по этапу
			idRouter.Get("history", controller.history)       // полный журнал по заявке
			idRouter.Get("history/active", controller.activeHistory)
			idRouter.Get("report", controller.report)
		})
	})
}

// @Summary Создать заявку кандидата
// @Tags Заявка
// @Description Создать заявку кандидата на период набора
// @Param   body	body	applicationapimodels.ApplicationCreateRequest	true	"данные заявки"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application [post]
func (c *applicationApiController) create(ctx *fiber.Ctx) error {
	request := applicationapimodels.ApplicationCreateRequest{}
	if err := c.BodyParser(ctx, &request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := request.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := applicant.Instance.Create(request)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Получить заявку
// @Tags Заявка
// @Description Получить заявку по идентификатору
// @Param   id	path	string	true	"ID заявки"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id} [get]
func (c *applicationApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := applicant.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Список заявок по этапу
// @Tags Заявка
// @Description Список заявок на указанном этапе воронки с фильтрами
// @Param   body	body	applicationapimodels.ApplicationListFilter	true	"фильтр"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/list [post]
func (c *applicationApiController) list(ctx *fiber.Ctx) error {
	filter := applicationapimodels.ApplicationListFilter{}
	if err := c.BodyParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := applicant.Instance.List(filter)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Перевод заявки по этапу
// @Tags Заявка
// @Description Зафиксировать результат по этапу воронки (продвижение/отказ/перенос)
// @Param   id		path	string	true	"ID заявки"
// @Param   body	body	applicationapimodels.TransitionRequest	true	"результат по этапу"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.StageHistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id}/transition [put]
func (c *applicationApiController) transition(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	request := applicationapimodels.TransitionRequest{}
	if err = c.BodyParser(ctx, &request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	stage, code, payload, err := request.Parse()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := transition.Instance.Transition(id, stage, code, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Журнал прохождения этапов
// @Tags Заявка
// @Description Полный журнал прохождения этапов по заявке
// @Param   id	path	string	true	"ID заявки"
// @Success 200 {object} apimodels.Response{data=[]applicationapimodels.StageHistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id}/history [get]
func (c *applicationApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := transition.Instance.ListHistory(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Текущее состояние по этапам
// @Tags Заявка
// @Description Активные записи журнала по каждому этапу заявки
// @Param   id	path	string	true	"ID заявки"
// @Success 200 {object} apimodels.Response{data=[]applicationapimodels.StageHistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id}/history/active [get]
func (c *applicationApiController) activeHistory(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := transition.Instance.ListActiveHistory(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Сводный отчет по заявке
// @Tags Заявка
// @Description Сводный отчет с итоговым баллом, строится когда есть оценки по всем этапам
// @Param   id	path	string	true	"ID заявки"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationReportView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id}/report [get]
func (c *applicationApiController) report(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := report.Instance.GetReport(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	if view == nil {
		return ctx.Status(fiber.StatusOK).JSON(apimodels.NewError("отчет еще не готов, есть не все оценки по этапам"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}
