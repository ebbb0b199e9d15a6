package dictapimodels

import (
	dbmodels "recruitment-tracker-backend/models/db"
)

type StatusView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Stage       string `json:"stage"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
}

func ConvertStatus(rec dbmodels.Status) StatusView {
	return StatusView{
		ID:          rec.ID,
		Name:        rec.Name,
		Code:        string(rec.Code),
		Stage:       string(rec.Stage),
		Description: rec.Description,
		IsActive:    rec.IsActive,
	}
}
