package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tend/internal/auth"
	"tend/internal/config"
	"tend/internal/db"
	"tend/internal/event"
	"tend/internal/history"
	httpx "tend/internal/http"
	"tend/internal/logging"
	"tend/internal/mood"
	"tend/internal/recommend"
	"tend/internal/reminder"
	"tend/internal/validate"
)

func main() {
	log := logging.New()
	defer func() { _ = log.Sync() }()

	cfg, _ := config.Load()

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		log.Fatal(err)
	}

	catalog, err := recommend.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatal(err)
	}
	log.Infow("catalog loaded", "version", catalog.Version, "items", len(catalog.Items))

	jwtSvc := auth.NewJWT(cfg.JWTSecret)

	reminders := &reminder.Repo{DB: gdb, Grace: cfg.ReminderGrace}
	events := &event.Service{DB: gdb, Reminders: reminders}
	moods := &mood.Service{DB: gdb}
	behavior := &history.Store{DB: gdb}

	scorer := &recommend.Scorer{
		History:         behavior,
		Catalog:         catalog,
		SocialHourStart: cfg.SocialHourStart,
		SocialHourEnd:   cfg.SocialHourEnd,
	}

	var judge validate.Judge
	if cfg.JudgeURL != "" {
		judge = &validate.HTTPJudge{URL: cfg.JudgeURL, Timeout: cfg.JudgeTimeout}
	}
	validator := &validate.Validator{
		Judge:     judge,
		EarlyHour: cfg.EarlyHour,
		DB:        gdb,
		Log:       log,
	}

	scanner := &reminder.Scanner{
		Source:    reminders,
		Deliverer: &reminder.LogDeliverer{Log: log},
		Interval:  cfg.ScanInterval,
		BatchSize: cfg.ScanBatchSize,
		Log:       log,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go scanner.Run(ctx)

	r := httpx.NewRouter(cfg, httpx.Deps{
		DB:        gdb,
		JWT:       jwtSvc,
		Events:    events,
		Reminders: reminders,
		Scanner:   scanner,
		Moods:     moods,
		History:   behavior,
		Scorer:    scorer,
		Validator: validator,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Infow("listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
