package initializers

import (
	"context"

	"recruitment-tracker-backend/config"
	"recruitment-tracker-backend/fiberlog"
	"recruitment-tracker-backend/lib/applicant"
	statusprovider "recruitment-tracker-backend/lib/dicts/status"
	xlsexport "recruitment-tracker-backend/lib/export/xls"
	"recruitment-tracker-backend/lib/report"
	"recruitment-tracker-backend/lib/transition"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	if err := statusprovider.NewHandler(); err != nil {
		panic(err.Error())
	}
	applicant.NewHandler()
	transition.NewHandler()
	report.NewHandler()
	xlsexport.NewHandler()
}
