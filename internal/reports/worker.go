package reports

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// WeeklyReportWorker runs the weekly digest generation on a cron schedule.
type WeeklyReportWorker struct {
	service  Service
	logger   *zap.Logger
	schedule string
	cron     *cron.Cron
}

// DefaultSchedule fires every Monday at 08:00.
const DefaultSchedule = "0 8 * * 1"

func NewWeeklyReportWorker(service Service, logger *zap.Logger, schedule string) *WeeklyReportWorker {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return &WeeklyReportWorker{
		service:  service,
		logger:   logger,
		schedule: schedule,
		cron:     cron.New(),
	}
}

// Start registers the schedule and begins running; it returns immediately.
func (w *WeeklyReportWorker) Start() error {
	_, err := w.cron.AddFunc(w.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		w.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	w.logger.Info("weekly report worker started", zap.String("schedule", w.schedule))
	w.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (w *WeeklyReportWorker) Stop() {
	<-w.cron.Stop().Done()
	w.logger.Info("weekly report worker stopped")
}

// RunOnce generates the digests for the past week.
func (w *WeeklyReportWorker) RunOnce(ctx context.Context) {
	start := time.Now()
	generated, err := w.service.GenerateWeeklyReports(ctx)
	if err != nil {
		w.logger.Error("weekly report generation failed",
			zap.Error(err),
			zap.Int("generated", generated))
		return
	}
	w.logger.Info("weekly reports generated",
		zap.Int("generated", generated),
		zap.Duration("took", time.Since(start)))
}
