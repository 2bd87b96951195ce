package model

// User is a workspace member as listed by the time-tracking service.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ReportTotal is the aggregated tracked time of one user over a date range.
type ReportTotal struct {
	UserID       string `json:"user_id"`
	TotalSeconds int64  `json:"total_seconds"`
}

// Row is one displayed line of the weekly table.
// Hours and Minutes are two-digit wall-clock parts; TotalSeconds keeps the
// unwrapped figure they were derived from.
type Row struct {
	Member       string `json:"member"`
	Hours        string `json:"hours"`
	Minutes      string `json:"minutes"`
	TotalSeconds int64  `json:"total_seconds"`
}
