package scheduler

import (
	"context"
	"fmt"
	"log"

	"CurveWatch/internal/analysis"
	"CurveWatch/internal/archive"
	"CurveWatch/internal/bootstrap"
	"CurveWatch/internal/collector"
	"CurveWatch/internal/exporter"
	"CurveWatch/internal/notifier"
	"CurveWatch/internal/recorder"

	"github.com/robfig/cron/v3"
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Exporter  *exporter.Exporter
	Recorder  recorder.Recorder
	Archive   *archive.Index
	Notifier  *notifier.TelegramNotifier
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, exp *exporter.Exporter,
	rec recorder.Recorder, ix *archive.Index, tn *notifier.TelegramNotifier) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Exporter:  exp,
		Recorder:  rec,
		Archive:   ix,
		Notifier:  tn,
		Ctx:       ctx,
	}
}

// RegisterAll registers the daily scrape and weekly digest tasks.
func (s *Scheduler) RegisterAll(dailyCron, weeklyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, func() { s.dailyTask(false) }); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyDigest); err != nil {
		return fmt.Errorf("register weekly digest: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunDailyNow executes the daily task immediately (manual trigger / RUN_ON_START),
// re-publishing even if the curve date was already seen.
func (s *Scheduler) RunDailyNow() {
	s.dailyTask(true)
}

// dailyTask runs the full pipeline: collect, bootstrap, analyze, export,
// record, archive, notify. With force false, a curve date that is already
// in the archive index is skipped (the source hasn't rolled to a new day).
func (s *Scheduler) dailyTask(force bool) {
	log.Println("[INFO] running daily curve task")

	obs, err := s.Collector.Collect(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] daily collect: %v", err)
		s.trySend(fmt.Sprintf("❌ Curve collection failed: %v", err))
		return
	}

	if !force && s.Archive.IsPublished(obs.Date) {
		log.Printf("[INFO] curve %s already published, skipping", obs.Date)
		s.Archive.TouchRun()
		return
	}

	curve, err := bootstrap.Bootstrap(obs.Points)
	if err != nil {
		log.Printf("[ERROR] bootstrap rejected input: %v", err)
		s.trySend(fmt.Sprintf("❌ Curve computation rejected for %s: %v", obs.Date, err))
		return
	}
	if curve.Failures > 0 {
		log.Printf("[WARN] curve %s computed partially: %d tenor failures", obs.Date, curve.Failures)
	}

	metrics, err := analysis.ComputeMetrics(curve)
	if err != nil {
		log.Printf("[WARN] metrics computation failed: %v", err)
		metrics = nil
	}

	rec := &recorder.CurveRecord{
		Date:      obs.Date,
		Source:    obs.Source,
		FetchedAt: obs.FetchedAt,
		Curve:     curve,
		Metrics:   metrics,
		Bonds:     obs.Bonds,
	}

	if path, err := s.Exporter.ExportJSON(rec); err != nil {
		log.Printf("[ERROR] export json: %v", err)
	} else {
		log.Printf("[INFO] exported %s", path)
	}
	if path, err := s.Exporter.ExportCSV(rec); err != nil {
		log.Printf("[ERROR] export csv: %v", err)
	} else {
		log.Printf("[INFO] exported %s", path)
	}
	if path, err := s.Exporter.ExportChart(rec); err != nil {
		log.Printf("[WARN] export chart: %v", err)
	} else {
		log.Printf("[INFO] exported %s", path)
	}
	if path, err := s.Exporter.ExportBondsCSV(rec); err != nil {
		log.Printf("[WARN] export bonds: %v", err)
	} else if path != "" {
		log.Printf("[INFO] exported %s", path)
	}

	if err := s.Recorder.RecordCurve(rec); err != nil {
		log.Printf("[ERROR] record curve: %v", err)
	}

	s.Archive.MarkPublished(obs.Date, len(curve.Points), curve.Failures)
	s.trySend(notifier.FormatDailyReport(obs.Date, obs.Source, curve, metrics))
}

func (s *Scheduler) weeklyDigest() {
	log.Println("[INFO] running weekly digest")
	sums, err := s.Recorder.RecentCurves(7)
	if err != nil {
		log.Printf("[ERROR] weekly digest query: %v", err)
		return
	}
	entries := make([]notifier.DigestEntry, len(sums))
	for i, c := range sums {
		entries[i] = notifier.DigestEntry{
			Date:        c.Date,
			TenorCount:  c.TenorCount,
			Failures:    c.Failures,
			Yield10Y:    c.Yield10Y,
			SteepnessBp: c.SteepnessBp,
		}
	}
	s.trySend(notifier.FormatWeeklyDigest(entries))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/today":
		s.dailyTask(true)
		return ""
	case "/digest":
		s.weeklyDigest()
		return ""
	case "/status":
		sum := s.Archive.Summary()
		return notifier.FormatRunStatus(sum.PublishedDates, sum.TotalRuns,
			sum.TotalFailures, sum.LastRunAt, sum.LastDate)
	default:
		return "Available commands:\n• /today — scrape and publish now\n• /digest — send the weekly digest\n• /status — run statistics"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
