package scheduler

import (
	"context"
	"log"
	"time"
)

type Task func(ctx context.Context) error

// Every runs task once right away and then on every tick until ctx is
// done. Task errors are logged, never fatal; a background loop dying with
// the process still healthy helps nobody.
func Every(ctx context.Context, interval time.Duration, name string, task Task) {
	run := func() {
		if err := task(ctx); err != nil {
			log.Printf("[%s] error: %v", name, err)
		}
	}

	run()

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			run()
		}
	}
}
