package xlsexport

import (
	"bytes"

	"recruitment-tracker-backend/models"
	dbmodels "recruitment-tracker-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportReportList(list []dbmodels.ApplicationReport) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var reportHeaders = []string{"ФИО", "Должность", "Адм. отбор", "Тестирование", "Собеседование", "Итоговый балл", "Решение", "Дата решения"}

func (i impl) ExportReportList(list []dbmodels.ApplicationReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, reportHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		_, err = writeReportData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Отчеты по заявкам")
	return f.WriteToBuffer()
}

func writeReportData(f *excelize.File, sheet string, list []dbmodels.ApplicationReport, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(reportHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "ФИО"
		col := 1
		if item.Application != nil && item.Application.Candidate != nil {
			if err := writeColumn(f, sheet, col, row, item.Application.Candidate.GetFIO()); err != nil {
				return row, err
			}
		}

		// "Должность"
		col++
		if item.Application != nil && item.Application.VacancyPeriod != nil {
			if err := writeColumn(f, sheet, col, row, item.Application.VacancyPeriod.PositionName); err != nil {
				return row, err
			}
		}

		// "Адм. отбор"
		col++
		if err := writeColumn(f, sheet, col, row, item.AdministrationScore); err != nil {
			return row, err
		}

		// "Тестирование"
		col++
		if err := writeColumn(f, sheet, col, row, item.AssessmentScore); err != nil {
			return row, err
		}

		// "Собеседование"
		col++
		if err := writeColumn(f, sheet, col, row, item.InterviewScore); err != nil {
			return row, err
		}

		// "Итоговый балл"
		col++
		if err := writeColumn(f, sheet, col, row, item.OverallScore); err != nil {
			return row, err
		}

		// "Решение"
		col++
		decision := ""
		if item.FinalDecision != "" {
			decision = models.Stage(item.FinalDecision).GetTitle()
		}
		if err := writeColumn(f, sheet, col, row, decision); err != nil {
			return row, err
		}

		// "Дата решения"
		col++
		if item.DecisionMadeAt != nil {
			if err := writeColumn(f, sheet, col, row, item.DecisionMadeAt.Format("02.01.2006")); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}
