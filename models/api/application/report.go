package applicationapimodels

import (
	"time"

	dbmodels "recruitment-tracker-backend/models/db"
)

type ApplicationReportView struct {
	ApplicationID       string     `json:"application_id"`
	AdministrationScore int        `json:"administration_score"`
	AssessmentScore     int        `json:"assessment_score"`
	InterviewScore      int        `json:"interview_score"`
	OverallScore        float64    `json:"overall_score"`
	FinalDecision       string     `json:"final_decision,omitempty"`
	DecisionMadeBy      string     `json:"decision_made_by,omitempty"`
	DecisionMadeAt      *time.Time `json:"decision_made_at,omitempty"`
}

func ConvertReport(rec dbmodels.ApplicationReport) ApplicationReportView {
	result := ApplicationReportView{
		ApplicationID:       rec.ApplicationID,
		AdministrationScore: rec.AdministrationScore,
		AssessmentScore:     rec.AssessmentScore,
		InterviewScore:      rec.InterviewScore,
		OverallScore:        rec.OverallScore,
		FinalDecision:       rec.FinalDecision,
		DecisionMadeAt:      rec.DecisionMadeAt,
	}
	if rec.DecisionMadeBy != nil {
		result.DecisionMadeBy = *rec.DecisionMadeBy
	}
	return result
}
