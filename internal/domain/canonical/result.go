package canonical

import "time"

// ---------------------------------------------------------------------------
// Import pass result contract
// ---------------------------------------------------------------------------

// ImportError describes one isolated failure inside a pass
type ImportError struct {
	// EntityType names the canonical entity type that failed (e.g. "orders")
	EntityType string `json:"entityType"`
	// EntityID identifies the failed record or batch ("" for whole-batch failures)
	EntityID string `json:"entityId"`
	// ErrorMessage is the human readable failure description
	ErrorMessage string `json:"errorMessage"`
}

// ImportResult summarizes one full import pass across all platforms
type ImportResult struct {
	ProcessedAt      time.Time     `json:"processedAt"`
	TotalProcessed   int           `json:"totalProcessed"`
	SuccessCount     int           `json:"successCount"`
	FailedCount      int           `json:"failedCount"`
	SkippedCount     int           `json:"skippedCount"`
	ProcessingTimeMs int64         `json:"processingTimeMs"`
	Errors           []ImportError `json:"errors"`
}

// SuccessRate returns the percentage of successfully processed records,
// 0 when nothing was processed.
func (r *ImportResult) SuccessRate() float64 {
	if r.TotalProcessed == 0 {
		return 0
	}
	return float64(r.SuccessCount) / float64(r.TotalProcessed) * 100
}

// IsSuccess returns true when no record failed
func (r *ImportResult) IsSuccess() bool {
	return r.FailedCount == 0
}

// AddError records an isolated failure
func (r *ImportResult) AddError(entityType, entityID, message string) {
	r.Errors = append(r.Errors, ImportError{
		EntityType:   entityType,
		EntityID:     entityID,
		ErrorMessage: message,
	})
}
