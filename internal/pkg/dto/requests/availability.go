package requests

// AvailabilityRule is the body of POST and PUT /availability. Times are RFC 3339.
type AvailabilityRule struct {
	StartTime string `json:"startTime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime   string `json:"endTime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Recurring string `json:"recurring" validate:"omitempty,recurrence"`
}
