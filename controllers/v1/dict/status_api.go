package dict

import (
	"recruitment-tracker-backend/controllers"
	statusprovider "recruitment-tracker-backend/lib/dicts/status"
	apimodels "recruitment-tracker-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type statusDictApiController struct {
	controllers.BaseAPIController
}

func InitStatusDictApiRouters(app *fiber.App) {
	controller := statusDictApiController{}
	app.Route("status", func(router fiber.Router) {
		router.Get("list", controller.list)
	})
}

// @Summary Справочник статусов
// @Tags Справочники
// @Description Список статусов по этапам воронки
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.StatusView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/status/list [get]
func (c *statusDictApiController) list(ctx *fiber.Ctx) error {
	list, err := statusprovider.Instance.List()
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
