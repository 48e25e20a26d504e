package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"StockCompass/internal/notifier"
	"StockCompass/internal/recorder"
	"StockCompass/internal/server"
	"StockCompass/internal/watcher"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API with scheduled refreshes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		// Recorder: sqlite when configured, noop otherwise.
		var rec recorder.Recorder
		if cfg.Database.SQLitePath != "" {
			sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
			if err != nil {
				log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
				rec = recorder.NewNoopRecorder()
			} else {
				rec = sr
				defer sr.Close()
			}
		} else {
			rec = recorder.NewNoopRecorder()
		}

		var tn *notifier.TelegramNotifier
		if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
			tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
			log.Println("[INFO] Telegram notifications enabled")
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		srv := server.New(cfg, rec)

		w := watcher.New(ctx, cfg, rec, tn, srv.InvalidateCache)
		if err := w.Register(cfg.Schedule.RefreshCron); err != nil {
			return err
		}
		w.Start()
		defer w.Stop()

		if tn != nil {
			go tn.StartPolling(ctx, w.HandleCommand)
			log.Println("[INFO] Telegram polling started")
		}

		if os.Getenv("RUN_ON_START") == "true" {
			log.Println("[INFO] RUN_ON_START enabled, refreshing recommendations now")
			go w.RunNow()
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Run()
		}()
		log.Println("[INFO] StockCompass is running. Press Ctrl+C to stop.")

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return err
		case <-sigCh:
			log.Println("[INFO] shutdown signal received, stopping...")
			cancel()
			return nil
		}
	},
}
