package domain

import "time"

// OperationContext carries per-call request context into the core:
// who is acting, what "today" is for them, and their locale.
// It is always passed explicitly; the core never reads ambient state.
type OperationContext struct {
	ActingUserID string
	Today        time.Time // calendar date of the request
	Locale       string    // BCP 47 tag, informational only in the core
}

// NewOperationContext builds a context for the given user at the given
// moment. The timestamp is kept at full precision for audit stamping;
// Today() truncates it.
func NewOperationContext(actingUserID string, at time.Time, locale string) OperationContext {
	return OperationContext{
		ActingUserID: actingUserID,
		Today:        at,
		Locale:       locale,
	}
}

// Now returns the request timestamp in UTC.
func (c OperationContext) Now() time.Time {
	return c.Today.UTC()
}

// TodayDate returns the request's calendar date.
func (c OperationContext) TodayDate() time.Time {
	return DateOnly(c.Today)
}
