package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"exit_sentinel/internal/config"
	"exit_sentinel/internal/logger"
	"exit_sentinel/internal/market"
	"exit_sentinel/internal/sheet"
	"exit_sentinel/internal/watcher"
)

const LogFile = "sentinel.log"

// main wires the sheet store and the Alpaca provider into the watcher and
// drives it on a fixed interval. Pass-level failures are handled inside
// Poll; only boot-time wiring errors are fatal.
func main() {
	cfg := config.Load()

	logger.Setup(LogFile, cfg.MaxLogSizeMB, cfg.MaxLogBackups)

	log.Println("[BOOT] Starting exit sentinel")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := sheet.NewGoogleSheetStore(ctx, []byte(cfg.GoogleCredsJSON), cfg.SpreadsheetID, cfg.WorksheetName)
	if err != nil {
		log.Fatalf("CRITICAL: Could not open sheet: %v", err)
	}

	provider := market.NewAlpacaProvider()
	w := watcher.New(cfg, store, provider)

	// Graceful shutdown: finish the pass in flight, then stop.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Println("⚠️ Exit sentinel shutting down: system signal received.")
		cancel()
	}()

	log.Printf("[READY] Monitoring spreadsheet %s → %q every %ds", cfg.SpreadsheetID, cfg.WorksheetName, cfg.PollSeconds)

	w.Poll() // Run once immediately on start

	ticker := time.NewTicker(time.Duration(cfg.PollSeconds) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("🛑 Main loop stopping...")
			return
		case <-ticker.C:
			w.Poll()
		}
	}
}
