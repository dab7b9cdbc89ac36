package dto

import (
	"time"

	"github.com/ordersync/backend/internal/domain/canonical"
	"github.com/ordersync/backend/internal/infrastructure/scheduler"
)

// TriggerImportResponse represents the response to a manual import trigger
type TriggerImportResponse struct {
	PassID string `json:"pass_id"`
	Status string `json:"status"`
}

// ImportPassResponse represents one retained import pass outcome
type ImportPassResponse struct {
	ID         string                  `json:"id"`
	Trigger    string                  `json:"trigger"`
	StartedAt  time.Time               `json:"started_at"`
	FinishedAt time.Time               `json:"finished_at"`
	Result     *canonical.ImportResult `json:"result,omitempty"`
	Error      string                  `json:"error,omitempty"`
}

// FromPassRecord maps a scheduler pass record onto the API shape
func FromPassRecord(record scheduler.PassRecord) ImportPassResponse {
	return ImportPassResponse{
		ID:         record.ID,
		Trigger:    record.Trigger,
		StartedAt:  record.StartedAt,
		FinishedAt: record.FinishedAt,
		Result:     record.Result,
		Error:      record.Error,
	}
}

// FromPassRecords maps a slice of pass records, preserving order
func FromPassRecords(records []scheduler.PassRecord) []ImportPassResponse {
	out := make([]ImportPassResponse, 0, len(records))
	for _, record := range records {
		out = append(out, FromPassRecord(record))
	}
	return out
}
