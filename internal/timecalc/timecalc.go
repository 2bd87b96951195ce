package timecalc

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DateRange is an inclusive span of calendar dates. Start and End are
// midnight UTC of their respective days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// StartStamp returns the first millisecond of Start, e.g. "2026-10-05T00:00:00.000Z".
func (r DateRange) StartStamp() string {
	return r.Start.Format(dateLayout) + "T00:00:00.000Z"
}

// EndStamp returns the last millisecond of End, e.g. "2026-10-09T23:59:59.999Z".
func (r DateRange) EndStamp() string {
	return r.End.Format(dateLayout) + "T23:59:59.999Z"
}

// Days returns the number of calendar days covered, both ends included.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Label returns a label like "2026-W41 (2026-10-05 – 2026-10-09)".
func (r DateRange) Label() string {
	return fmt.Sprintf("%s (%s – %s)", ISOWeekLabel(r.Start),
		r.Start.Format(dateLayout), r.End.Format(dateLayout))
}

// PreviousWorkweek returns Monday to Friday of the ISO week before the one
// containing today. Only the calendar date of today is used.
func PreviousWorkweek(today time.Time) DateRange {
	d := StartOfDay(today)
	// Go's weekday: Sunday=0 … Saturday=6; shift so Monday=0.
	wd := (int(d.Weekday()) + 6) % 7
	monday := d.AddDate(0, 0, -(wd + 7))
	return DateRange{Start: monday, End: monday.AddDate(0, 0, 4)}
}

// CustomRange builds a range from two calendar dates.
func CustomRange(from, to time.Time) (DateRange, error) {
	r := DateRange{Start: StartOfDay(from), End: StartOfDay(to)}
	if r.End.Before(r.Start) {
		return DateRange{}, fmt.Errorf("range end %s is before start %s",
			r.End.Format(dateLayout), r.Start.Format(dateLayout))
	}
	return r, nil
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// StartOfDay returns midnight UTC of t's calendar date in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ISOWeekLabel returns a label like "2026-W09".
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// ClockParts renders seconds as a 24-hour wall-clock time and returns the
// zero-padded hour and minute. Totals of a day or more wrap: 90000s is "01","00".
func ClockParts(seconds int64) (string, string) {
	h := (seconds % 86400) / 3600
	m := (seconds % 3600) / 60
	return fmt.Sprintf("%02d", h), fmt.Sprintf("%02d", m)
}

// FormatDuration formats seconds as a human-readable string like "1h 40m" or "45m" or "30s".
func FormatDuration(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", s)
}
