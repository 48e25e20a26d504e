// Package watcher refreshes recommendations on a cron schedule while the
// server is running, records each run, and pushes a digest when Telegram
// is configured.
package watcher

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"StockCompass/internal/config"
	"StockCompass/internal/model"
	"StockCompass/internal/notifier"
	"StockCompass/internal/pipeline"
	"StockCompass/internal/realtime"
	"StockCompass/internal/recorder"
)

// Watcher manages the scheduled refresh task.
type Watcher struct {
	Cron       *cron.Cron
	Cfg        *config.Config
	Recorder   recorder.Recorder
	Notifier   *notifier.TelegramNotifier // nil when Telegram is not configured
	Invalidate func()                     // called after each refresh, may be nil
	Ctx        context.Context
}

// New creates a Watcher.
func New(ctx context.Context, cfg *config.Config, rec recorder.Recorder, tn *notifier.TelegramNotifier, invalidate func()) *Watcher {
	return &Watcher{
		Cron:       cron.New(cron.WithSeconds()),
		Cfg:        cfg,
		Recorder:   rec,
		Notifier:   tn,
		Invalidate: invalidate,
		Ctx:        ctx,
	}
}

// Register schedules the refresh task.
func (w *Watcher) Register(refreshCron string) error {
	if _, err := w.Cron.AddFunc(refreshCron, w.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (w *Watcher) Start() {
	w.Cron.Start()
	log.Println("[INFO] watcher started")
}

// Stop stops the cron scheduler gracefully.
func (w *Watcher) Stop() {
	w.Cron.Stop()
	log.Println("[INFO] watcher stopped")
}

// RunNow executes the refresh task immediately (manual trigger / RUN_ON_START).
func (w *Watcher) RunNow() {
	w.refreshTask()
}

func (w *Watcher) refreshTask() {
	log.Println("[INFO] running scheduled recommendation refresh")

	snapshot := realtime.Resolve(w.Cfg.Realtime.URL, w.Cfg.Realtime.APIKey, w.Cfg.Proxy)
	recs, err := pipeline.Recommend(pipeline.Request{
		ModelPath: w.Cfg.Data.ModelPath,
		CSVPaths:  w.Cfg.Data.CSVPaths,
		Profile: model.UserProfile{
			RiskScore:            w.Cfg.Profile.RiskScore,
			TimeHorizon:          model.Horizon(w.Cfg.Profile.TimeHorizon),
			DiversificationScore: w.Cfg.Profile.DiversificationScore,
		},
		TopK:     w.Cfg.Server.TopK,
		Snapshot: snapshot,
	})
	if err != nil {
		log.Printf("[ERROR] scheduled refresh: %v", err)
		w.trySend(fmt.Sprintf("❌ Recommendation refresh failed: %v", err))
		return
	}

	if err := w.Recorder.RecordRun(&recorder.RunRecord{
		At:              time.Now(),
		RiskScore:       w.Cfg.Profile.RiskScore,
		TimeHorizon:     w.Cfg.Profile.TimeHorizon,
		TopK:            w.Cfg.Server.TopK,
		Realtime:        snapshot != nil,
		Recommendations: recs,
	}); err != nil {
		log.Printf("[ERROR] record refresh run: %v", err)
	}

	if w.Invalidate != nil {
		w.Invalidate()
	}

	w.trySend(notifier.FormatDigest(recs, time.Now()))
}

// HandleCommand answers Telegram commands.
func (w *Watcher) HandleCommand(command string) string {
	switch strings.ToLower(strings.TrimSpace(command)) {
	case "/latest":
		run, err := w.Recorder.LatestRun()
		if err != nil {
			return fmt.Sprintf("❌ load latest run: %v", err)
		}
		if run == nil {
			return "No recommendation run recorded yet. Try /refresh."
		}
		return notifier.FormatDigest(run.Recommendations, run.At)
	case "/refresh":
		go w.RunNow()
		return "🔄 Refresh started, digest follows shortly."
	case "/help", "/start":
		return "Commands:\n/latest — last recorded recommendations\n/refresh — recompute now\n/help — this message"
	default:
		return ""
	}
}

func (w *Watcher) trySend(text string) {
	if w.Notifier == nil {
		return
	}
	if err := w.Notifier.SendWithRetry(w.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] telegram notify: %v", err)
	}
}
