package analytics

import (
	"context"
	"math"
	"sort"
	"time"

	"carbontrack/carbontrack-backend/internal/emissions"
)

// RecordSource is the slice of the record store the aggregator reads:
// owner-scoped, window-filtered, already carrying computed CO2e values.
type RecordSource interface {
	FindInWindow(ctx context.Context, userID string, start, end time.Time) ([]emissions.Emission, error)
	FindRecent(ctx context.Context, userID string, since time.Time, limit int64) ([]emissions.Emission, error)
}

// Engine computes the summary views the charts consume. It is a pure read
// layer; every call derives its window from the clock and shares no state
// between requests.
type Engine struct {
	source RecordSource
	now    func() time.Time
}

func NewEngine(source RecordSource) *Engine {
	return &Engine{source: source, now: time.Now}
}

// CategoryStat is one per-category group in a summary.
type CategoryStat struct {
	Category   string  `json:"category"`
	TotalCO2   float64 `json:"totalCO2"`
	Count      int     `json:"count"`
	AverageCO2 float64 `json:"averageCO2"`
}

// Summary holds per-category totals plus the grand totals for a window.
type Summary struct {
	Period         string         `json:"period"`
	TotalEmissions float64        `json:"totalEmissions"`
	TotalEntries   int            `json:"totalEntries"`
	Categories     []CategoryStat `json:"categories"`
}

// TimeBucket is one calendar bucket in an over-time series.
type TimeBucket struct {
	Date     string  `json:"date"`
	TotalCO2 float64 `json:"totalCO2"`
	Count    int     `json:"count"`
}

// ActivityStat is one activity line inside a category breakdown.
type ActivityStat struct {
	Activity string  `json:"activity"`
	TotalCO2 float64 `json:"totalCO2"`
	Count    int     `json:"count"`
}

// CategoryBreakdown groups a category's activities with the category total.
type CategoryBreakdown struct {
	Category      string         `json:"category"`
	Activities    []ActivityStat `json:"activities"`
	CategoryTotal float64        `json:"categoryTotal"`
}

// Overview is the combined payload the dashboard fetches in one call.
type Overview struct {
	ByCategory      []CategoryStat       `json:"byCategory"`
	WeeklyTrends    []TimeBucket         `json:"weeklyTrends"`
	Total           float64              `json:"total"`
	Count           int                  `json:"count"`
	RecentEmissions []emissions.Emission `json:"recentEmissions"`
}

// groupKey identifies a group; secondary is empty for single-level groupings.
type groupKey struct {
	primary   string
	secondary string
}

// group accumulates unrounded sums. Rounding happens only at the output
// boundary so repeated aggregation never compounds rounding error.
type group struct {
	key   groupKey
	total float64
	count int
}

// groupRecords is the one grouping primitive behind every summary shape. It
// folds records into groups keyed by keyFn, preserving first-occurrence order.
func groupRecords(records []emissions.Emission, keyFn func(emissions.Emission) groupKey) []group {
	index := make(map[groupKey]int)
	var groups []group
	for _, record := range records {
		key := keyFn(record)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, group{key: key})
		}
		groups[i].total += record.CO2e
		groups[i].count++
	}
	return groups
}

// CategorySummary groups the window's records by category, ordered by
// descending total. Absence of data yields the empty shape, not an error.
func (e *Engine) CategorySummary(ctx context.Context, userID string, period Period) (*Summary, error) {
	records, err := e.windowRecords(ctx, userID, period)
	if err != nil {
		return nil, err
	}

	groups := groupRecords(records, func(r emissions.Emission) groupKey {
		return groupKey{primary: string(r.Category)}
	})
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].total > groups[j].total
	})

	summary := &Summary{
		Period:     string(period),
		Categories: make([]CategoryStat, 0, len(groups)),
	}
	var grandTotal float64
	for _, g := range groups {
		grandTotal += g.total
		summary.TotalEntries += g.count
		summary.Categories = append(summary.Categories, CategoryStat{
			Category:   g.key.primary,
			TotalCO2:   g.total,
			Count:      g.count,
			AverageCO2: round2(g.total / float64(g.count)),
		})
	}
	summary.TotalEmissions = round2(grandTotal)
	return summary, nil
}

// OverTimeSeries buckets the window's records by calendar day (week/month
// windows) or by month (year window), in ascending order. Buckets with no
// records are not synthesized; the consuming chart decides how to fill gaps.
func (e *Engine) OverTimeSeries(ctx context.Context, userID string, period Period) ([]TimeBucket, error) {
	records, err := e.windowRecords(ctx, userID, period)
	if err != nil {
		return nil, err
	}

	layout := period.BucketLayout()
	groups := groupRecords(records, func(r emissions.Emission) groupKey {
		return groupKey{primary: r.Date.Format(layout)}
	})
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].key.primary < groups[j].key.primary
	})

	series := make([]TimeBucket, 0, len(groups))
	for _, g := range groups {
		series = append(series, TimeBucket{
			Date:     g.key.primary,
			TotalCO2: round2(g.total),
			Count:    g.count,
		})
	}
	return series, nil
}

// Breakdown groups by (category, activity) and regroups per category, ordered
// by descending category total. Activities keep first-occurrence order.
func (e *Engine) Breakdown(ctx context.Context, userID string, period Period) ([]CategoryBreakdown, error) {
	records, err := e.windowRecords(ctx, userID, period)
	if err != nil {
		return nil, err
	}

	pairs := groupRecords(records, func(r emissions.Emission) groupKey {
		return groupKey{primary: string(r.Category), secondary: r.Activity}
	})

	index := make(map[string]int)
	breakdown := make([]CategoryBreakdown, 0)
	rawTotals := make([]float64, 0)
	for _, pair := range pairs {
		i, ok := index[pair.key.primary]
		if !ok {
			i = len(breakdown)
			index[pair.key.primary] = i
			breakdown = append(breakdown, CategoryBreakdown{Category: pair.key.primary})
			rawTotals = append(rawTotals, 0)
		}
		breakdown[i].Activities = append(breakdown[i].Activities, ActivityStat{
			Activity: pair.key.secondary,
			TotalCO2: round2(pair.total),
			Count:    pair.count,
		})
		rawTotals[i] += pair.total
	}
	for i := range breakdown {
		breakdown[i].CategoryTotal = round2(rawTotals[i])
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].CategoryTotal > breakdown[j].CategoryTotal
	})
	return breakdown, nil
}

// DashboardOverview combines the period summary, a seven-day trend and the
// most recent records into the single payload the dashboard renders from.
func (e *Engine) DashboardOverview(ctx context.Context, userID string, period Period) (*Overview, error) {
	summary, err := e.CategorySummary(ctx, userID, period)
	if err != nil {
		return nil, err
	}

	trends, err := e.OverTimeSeries(ctx, userID, PeriodWeek)
	if err != nil {
		return nil, err
	}

	recent, err := e.source.FindRecent(ctx, userID, e.now().AddDate(-1, 0, 0), 100)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []emissions.Emission{}
	}

	return &Overview{
		ByCategory:      summary.Categories,
		WeeklyTrends:    trends,
		Total:           summary.TotalEmissions,
		Count:           summary.TotalEntries,
		RecentEmissions: recent,
	}, nil
}

func (e *Engine) windowRecords(ctx context.Context, userID string, period Period) ([]emissions.Emission, error) {
	window := period.WindowEndingAt(e.now())
	return e.source.FindInWindow(ctx, userID, window.Start, window.End)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
