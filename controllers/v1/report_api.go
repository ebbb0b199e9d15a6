package apiv1

import (
	"recruitment-tracker-backend/controllers"
	xlsexport "recruitment-tracker-backend/lib/export/xls"
	"recruitment-tracker-backend/lib/report"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type reportApiController struct {
	controllers.BaseAPIController
}

func InitReportApiRouters(app *fiber.App) {
	controller := reportApiController{}
	app.Route("report", func(router fiber.Router) {
		router.Get("export", controller.export) // выгрузка отчетов в xlsx
	})
}

// @Summary Выгрузка отчетов
// @Tags Отчет
// @Description Выгрузка сводных отчетов по заявкам в xlsx
// @Success 200
// @Failure 500 {object} apimodels.Response
// @router /api/v1/report/export [get]
func (c *reportApiController) export(ctx *fiber.Ctx) error {
	list, err := report.Instance.ListReports()
	if err != nil {
		return c.SendError(ctx, err)
	}
	buf, err := xlsexport.Instance.ExportReportList(list)
	if err != nil {
		log.WithError(err).Error("ошибка выгрузки отчетов в xlsx")
		return c.SendError(ctx, err)
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="reports.xlsx"`)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}
