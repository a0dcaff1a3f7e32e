package analytics

import "time"

// Period selects how far back an aggregation window reaches.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// ParsePeriod maps a query token onto a Period. Unknown tokens fall back to
// month rather than rejecting the request.
func ParsePeriod(raw string) Period {
	switch Period(raw) {
	case PeriodWeek, PeriodMonth, PeriodYear, PeriodAll:
		return Period(raw)
	default:
		return PeriodMonth
	}
}

// Window is the half-open interval [Start, End] an aggregation reads.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowEndingAt derives the window ending at now. It is recomputed on every
// request; two requests a second apart see windows a second apart.
func (p Period) WindowEndingAt(now time.Time) Window {
	var start time.Time
	switch p {
	case PeriodWeek:
		start = now.AddDate(0, 0, -7)
	case PeriodYear:
		start = now.AddDate(-1, 0, 0)
	case PeriodAll:
		start = time.Unix(0, 0)
	default:
		start = now.AddDate(0, -1, 0)
	}
	return Window{Start: start, End: now}
}

// BucketLayout returns the time format used to label series buckets: daily
// for week and month windows, monthly for year and all.
func (p Period) BucketLayout() string {
	switch p {
	case PeriodYear, PeriodAll:
		return "2006-01"
	default:
		return "2006-01-02"
	}
}
