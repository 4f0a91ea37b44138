package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"jobtrack-engine/internal/config"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/match"
	"jobtrack-engine/internal/tracker"
)

type Deps struct {
	Tracker *tracker.Tracker
	Engine  match.Engine

	DB  *sql.DB
	Hub *events.Hub

	// Atomic stores
	CfgVal      *atomic.Value // stores config.Config
	SweepStatus *atomic.Value // stores followup.SweepStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Sweep entrypoint (inject for testability)
	RunSweep func(ctx context.Context, reqID string) int
}
