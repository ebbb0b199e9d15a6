package models

import "github.com/pkg/errors"

// Stage - этап воронки подбора
type Stage string

const (
	StageAdminSelection Stage = "admin_selection" // Административный отбор
	StagePsychTest      Stage = "psych_test"      // Психологическое тестирование
	StageInterview      Stage = "interview"       // Собеседование
	StageAccepted       Stage = "accepted"        // Принят (терминальный)
	StageRejected       Stage = "rejected"        // Отклонен (терминальный)
)

// рабочие этапы в каноническом порядке прохождения
var workingStages = []Stage{StageAdminSelection, StagePsychTest, StageInterview}

func WorkingStages() []Stage {
	result := make([]Stage, len(workingStages))
	copy(result, workingStages)
	return result
}

func ParseStage(value string) (Stage, error) {
	stage := Stage(value)
	switch stage {
	case StageAdminSelection, StagePsychTest, StageInterview, StageAccepted, StageRejected:
		return stage, nil
	}
	return "", errors.Errorf("неизвестный этап подбора: %v", value)
}

// Order - порядковый номер рабочего этапа, для терминальных этапов -1
func (s Stage) Order() int {
	for idx, stage := range workingStages {
		if stage == s {
			return idx
		}
	}
	return -1
}

// Next - следующий рабочий этап, определен только для рабочих этапов до собеседования
func (s Stage) Next() (Stage, bool) {
	order := s.Order()
	if order < 0 || order+1 >= len(workingStages) {
		return "", false
	}
	return workingStages[order+1], true
}

func (s Stage) IsWorking() bool {
	return s.Order() >= 0
}

func (s Stage) IsTerminal() bool {
	return s == StageAccepted || s == StageRejected
}

func (s Stage) GetTitle() string {
	switch s {
	case StageAdminSelection:
		return "Административный отбор"
	case StagePsychTest:
		return "Психологическое тестирование"
	case StageInterview:
		return "Собеседование"
	case StageAccepted:
		return "Принят"
	case StageRejected:
		return "Отклонен"
	}
	return string(s)
}
