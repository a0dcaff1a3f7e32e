package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"carbontrack/carbontrack-backend/internal/analytics"
	"carbontrack/carbontrack-backend/internal/reports/export"
	"carbontrack/carbontrack-backend/internal/users"
)

type Service interface {
	// BuildReport materializes a period-scoped emission report for a user.
	BuildReport(ctx context.Context, userID string, period analytics.Period) (*export.ReportData, error)

	// WeeklyReports lists a user's stored weekly digests, newest first.
	WeeklyReports(ctx context.Context, userID string, limit int64) ([]WeeklyReport, error)

	// GenerateWeeklyReports computes and stores last week's digest for every
	// subscribed user; called by the worker.
	GenerateWeeklyReports(ctx context.Context) (int, error)
}

type reportService struct {
	engine  *analytics.Engine
	records analytics.RecordSource
	users   users.Repository
	repo    Repository
	now     func() time.Time
}

func NewService(engine *analytics.Engine, records analytics.RecordSource, userRepo users.Repository, repo Repository) Service {
	return &reportService{
		engine:  engine,
		records: records,
		users:   userRepo,
		repo:    repo,
		now:     time.Now,
	}
}

func (s *reportService) BuildReport(ctx context.Context, userID string, period analytics.Period) (*export.ReportData, error) {
	now := s.now()
	window := period.WindowEndingAt(now)

	records, err := s.records.FindInWindow(ctx, userID, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	summary, err := s.engine.CategorySummary(ctx, userID, period)
	if err != nil {
		return nil, err
	}

	username := userID
	if user, err := s.users.FindByID(ctx, userID); err == nil {
		username = user.Username
	}

	return &export.ReportData{
		Username:    username,
		Period:      string(period),
		GeneratedAt: now,
		Records:     records,
		Summary:     summary.Categories,
		Total:       summary.TotalEmissions,
	}, nil
}

func (s *reportService) WeeklyReports(ctx context.Context, userID string, limit int64) ([]WeeklyReport, error) {
	return s.repo.ListWeeklyReports(ctx, userID, limit)
}

func (s *reportService) GenerateWeeklyReports(ctx context.Context) (int, error) {
	subscribers, err := s.users.ListWeeklyReportSubscribers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list subscribers: %w", err)
	}

	now := s.now()
	window := analytics.PeriodWeek.WindowEndingAt(now)

	generated := 0
	for _, subscriber := range subscribers {
		summary, err := s.engine.CategorySummary(ctx, subscriber.ID, analytics.PeriodWeek)
		if err != nil {
			return generated, fmt.Errorf("failed to summarize user %s: %w", subscriber.ID, err)
		}

		report := &WeeklyReport{
			ID:         uuid.NewString(),
			UserID:     subscriber.ID,
			WeekStart:  window.Start,
			WeekEnd:    window.End,
			TotalCO2:   summary.TotalEmissions,
			Entries:    summary.TotalEntries,
			Categories: summary.Categories,
			CreatedAt:  now,
		}
		if err := s.repo.SaveWeeklyReport(ctx, report); err != nil {
			return generated, fmt.Errorf("failed to store weekly report for user %s: %w", subscriber.ID, err)
		}
		generated++
	}
	return generated, nil
}
