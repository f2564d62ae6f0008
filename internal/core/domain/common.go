package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// NewAuditFields stamps fresh audit fields from an operation context.
func NewAuditFields(opCtx OperationContext) AuditFields {
	now := opCtx.Now()
	return AuditFields{
		CreatedAt:     now,
		CreatedBy:     opCtx.ActingUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: opCtx.ActingUserID,
	}
}

// Touch updates the last-updated pair, keeping creation info intact.
func (a *AuditFields) Touch(opCtx OperationContext) {
	a.LastUpdatedAt = opCtx.Now()
	a.LastUpdatedBy = opCtx.ActingUserID
}

// DateOnly truncates a timestamp to its calendar date (midnight UTC).
// Journal entry dates are calendar dates; everything that compares or
// stores entry dates goes through this.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
