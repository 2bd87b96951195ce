package clockify

// Filter modes and statuses understood by the reports API.
const (
	containsAll       = "CONTAINS"
	doesNotContain    = "DOES_NOT_CONTAIN"
	statusAll         = "ALL"
	sortByDate        = "DATE"
	quickbooksAll     = "ALL"
	reportPageSize    = 200
	reportFirstPageNo = 1
)

// workspaceUser is one element of the list users response. Only the fields
// the report needs are decoded.
type workspaceUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

// DetailedReportRequest is the body of the detailed report endpoint.
type DetailedReportRequest struct {
	DateRangeStart string         `json:"dateRangeStart"`
	DateRangeEnd   string         `json:"dateRangeEnd"`
	Users          EntityFilter   `json:"users"`
	Clients        *EntityFilter  `json:"clients,omitempty"`
	DetailedFilter DetailedFilter `json:"detailedFilter"`
}

// EntityFilter restricts a report to (or away from) a set of ids.
type EntityFilter struct {
	IDs      []string `json:"ids"`
	Contains string   `json:"contains"`
	Status   string   `json:"status"`
}

// DetailedFilter controls paging and sorting of the detailed report.
type DetailedFilter struct {
	SortColumn           string    `json:"sortColumn"`
	Page                 int       `json:"page"`
	PageSize             int       `json:"pageSize"`
	AuditFilter          *struct{} `json:"auditFilter"`
	QuickbooksSelectType string    `json:"quickbooksSelectType"`
}

// detailedReportResponse holds the part of the report response we read.
// Entries of totals may be null.
type detailedReportResponse struct {
	Totals []*reportTotals `json:"totals"`
}

type reportTotals struct {
	ID                string `json:"_id"`
	TotalTime         *int64 `json:"totalTime"`
	TotalBillableTime *int64 `json:"totalBillableTime"`
	EntriesCount      int    `json:"entriesCount"`
}
