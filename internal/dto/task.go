package dto

// ReminderResult summarises one reminder run.
type ReminderResult struct {
	DaysAhead int      `json:"days_ahead"`
	Found     int      `json:"found"`
	Sent      int      `json:"sent"`
	Failed    []string `json:"failed,omitempty"`
}
