package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"tubeboost/internal/auth"
	"tubeboost/internal/config"
	"tubeboost/internal/history"
	"tubeboost/internal/menu"
	"tubeboost/internal/notifier"
	"tubeboost/internal/player"
	"tubeboost/internal/prompt"
	"tubeboost/internal/report"
	"tubeboost/internal/runner"
	"tubeboost/internal/scheduler"
	"tubeboost/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Load or create configuration
	cfg, err := config.Load()
	if err != nil {
		if os.IsNotExist(err) {
			// First run - create default config
			cfg = config.Default()
			if err := cfg.Save(); err != nil {
				log.Printf("Warning: could not save default config: %v", err)
			} else {
				path, _ := config.ConfigPath()
				log.Printf("Created default config at: %s", path)
			}
		} else {
			log.Printf("Warning: could not load config: %v (using defaults)", err)
			cfg = config.Default()
		}
	}

	dataDir, err := config.DataDir()
	if err != nil {
		log.Fatalf("Failed to get data directory: %v", err)
	}

	// Initialize cookie store and auth manager
	cookieStorePath, err := auth.DefaultCookieStorePath()
	if err != nil {
		log.Fatalf("Failed to get cookie store path: %v", err)
	}
	cookieStore := auth.NewCookieStore(cookieStorePath)
	authManager := auth.NewManager(cookieStore)

	// Initialize stores
	st := store.New(dataDir)
	hist, err := history.New(filepath.Join(dataDir, "history.db"))
	if err != nil {
		log.Printf("Warning: visit history unavailable: %v", err)
		hist = nil
	} else {
		defer hist.Close()
	}

	// Initialize player and runner
	p := player.New(cfg.Browser.Headless, cfg.Browser.BlockedDomains)
	reader := prompt.NewReader(os.Stdin)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Println("Termination signal received")
		cancel()
	}()

	if len(os.Args) > 1 && os.Args[1] == "daemon" {
		runDaemon(ctx, st, hist, p, authManager, cfg)
		return
	}

	r := runner.New(st, hist, p, authManager, reader, cfg)
	m := menu.New(st, hist, r, authManager, reader)

	log.Println("tubeboost starting...")
	if err := m.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("Menu failed: %v", err)
	}
}

// runDaemon runs scheduled unattended support runs until terminated.
func runDaemon(ctx context.Context, st *store.Store, hist *history.Store, p *player.Player, authManager *auth.Manager, cfg *config.Config) {
	sched, err := scheduler.New(cfg.Schedule.Timezone)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	intervalHours := cfg.Schedule.IntervalHours
	if intervalHours <= 0 {
		intervalHours = 6
	}

	// No prompt reader: unattended runs always continue between channels.
	r := runner.New(st, hist, p, authManager, nil, cfg)

	job := func(jobCtx context.Context) error {
		results, err := r.Run(jobCtx)
		if err != nil {
			return err
		}
		notifyRunFinished(cfg, results)
		return nil
	}

	if err := sched.AddSupportJob(intervalHours, job); err != nil {
		log.Fatalf("Failed to schedule support job: %v", err)
	}

	sched.Start()
	log.Printf("Daemon running: support run every %d hours", intervalHours)

	<-ctx.Done()
	<-sched.Stop().Done()
}

func notifyRunFinished(cfg *config.Config, results []runner.VisitResult) {
	if !cfg.Email.Enabled {
		return
	}

	n, err := notifier.NewFromConfig(cfg.Email)
	if err != nil {
		log.Printf("Notifier unavailable: %v", err)
		return
	}

	visits := make([]history.Visit, len(results))
	for i, res := range results {
		errText := ""
		if res.Err != nil {
			errText = res.Err.Error()
		}
		visits[i] = history.Visit{
			ChannelName:    res.ChannelName,
			Outcome:        res.Outcome.String(),
			Supported:      res.Outcome.Supported() && res.Err == nil,
			WatchedSeconds: res.WatchedSeconds,
			Err:            errText,
		}
	}

	if err := n.SendRunSummary(report.Summary(visits)); err != nil {
		log.Printf("Failed to send run summary: %v", err)
	}
}
