package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"jobtrack-engine/internal/config"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/followup"
	"jobtrack-engine/internal/httpapi"
	"jobtrack-engine/internal/match"
	"jobtrack-engine/internal/scheduler"
	"jobtrack-engine/internal/store"
	"jobtrack-engine/internal/tracker"
)

func main() {
	// Engine data dir: use env if provided (the desktop shell can pass
	// one), else local folder.
	dataDir := os.Getenv("JOBTRACK_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir; two writers on the same sqlite file and
	// tracker snapshot corrupt each other.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock data dir: %v", err)
	}
	if !locked {
		log.Fatalf("another engine is already running in %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "jobtrack.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	trk := tracker.New(cfg.FollowUpRules())

	// Reload the last application snapshot, if any.
	loadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	apps, err := store.LoadApplications(loadCtx, db.Pool)
	cancel()
	if err != nil {
		log.Fatalf("load applications: %v", err)
	}
	trk.Restore(apps)
	log.Printf("restored %d applications", len(apps))

	engine := match.NewEngine(cfg.MatchWeights())
	hub := events.NewHub()

	var sweepStatus atomic.Value
	sweepStatus.Store(followup.SweepStatus{})

	runSweep := func(ctx context.Context, reqID string) int {
		items := followup.Sweep(trk, hub, reqID, time.Now())
		return len(items)
	}

	mux := httpapi.NewMux(httpapi.Deps{
		Tracker:     trk,
		Engine:      engine,
		DB:          db.Pool,
		Hub:         hub,
		CfgVal:      &cfgVal,
		SweepStatus: &sweepStatus,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		RunSweep:    runSweep,
	})

	limiter := httpapi.NewClientLimiter(50, 100)
	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.AccessLog,
		limiter.RateLimit,
		httpapi.Recover,
		httpapi.Cors,
	)

	port := cfg.App.Port
	if port == 0 {
		port = 38471
	}
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (db=%s)", addr, dbPath)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	// Periodic follow-up sweep
	g.Go(func() error {
		interval := time.Duration(cfg.Polling.FollowUpCheckSeconds) * time.Second
		if interval <= 0 {
			interval = time.Hour
		}
		scheduler.Every(gctx, interval, "sweep", func(tctx context.Context) error {
			st := sweepStatus.Load().(followup.SweepStatus)
			if st.Running {
				return nil
			}
			st.Running = true
			st.LastRunAt = time.Now().Format(time.RFC3339)
			sweepStatus.Store(st)

			due := runSweep(tctx, "")

			now := time.Now().Format(time.RFC3339)
			st = sweepStatus.Load().(followup.SweepStatus)
			st.Running = false
			st.LastRunAt = now
			st.LastOkAt = now
			st.LastDue = due
			sweepStatus.Store(st)
			log.Printf("[sweep] ok due=%d", due)
			return nil
		})
		return nil
	})

	// Periodic application snapshot
	g.Go(func() error {
		interval := time.Duration(cfg.Polling.SnapshotSeconds) * time.Second
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		scheduler.Every(gctx, interval, "snapshot", func(tctx context.Context) error {
			return store.SaveApplications(tctx, db.Pool, trk.Snapshot())
		})
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}

	// Final snapshot on the way out.
	saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.SaveApplications(saveCtx, db.Pool, trk.Snapshot()); err != nil {
		log.Printf("final snapshot failed: %v", err)
	}
}
