package monitor

import (
	"context"
	"log/slog"
	"time"

	"screenmon/internal/config"
)

// settleDelay is how long the loop waits after spotting an anomaly before
// handing control to the diagnostic controller; a fleet mid-restart often
// rights itself without intervention.
const settleDelay = 30 * time.Second

// Loop alternates a cheap census poll with, on deviation, a full
// remediation session. It runs until ctx is canceled and never exits on
// an iteration failure.
type Loop struct {
	cfg        *config.Config
	census     ProcessCounter
	controller *Controller
	clock      Clock
	logger     *slog.Logger

	// lastNormal tracks the previous verdict so state transitions are
	// logged once instead of every poll. Nil until the first sample.
	lastNormal *bool
}

// NewLoop creates the top-level monitor loop.
func NewLoop(cfg *config.Config, census ProcessCounter, controller *Controller, clock Clock, logger *slog.Logger) *Loop {
	return &Loop{
		cfg:        cfg,
		census:     census,
		controller: controller,
		clock:      clock,
		logger:     logger,
	}
}

// Run polls until ctx is canceled. Cancellation is honored at iteration
// boundaries; a remediation session in progress is interrupted at its own
// next checkpoint.
func (l *Loop) Run(ctx context.Context) {
	l.logger.Info("monitor started",
		"process", l.cfg.Process.Name,
		"required_count", l.cfg.Process.RequiredCount,
		"loop_interval", l.cfg.Monitor.LoopInterval)

	for {
		if ctx.Err() != nil {
			l.logger.Info("monitor stopped")
			return
		}
		l.iterate(ctx)
	}
}

// iterate runs one poll cycle. A panic anywhere inside is logged and
// followed by the normal sleep; the monitor must never die silently.
func (l *Loop) iterate(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("monitor iteration panicked", "panic", r)
			l.clock.Sleep(ctx, l.cfg.Monitor.LoopInterval)
		}
	}()

	count := l.census.Count(ctx, l.cfg.Process.Name)
	normal := count == l.cfg.Process.RequiredCount

	if normal {
		if l.lastNormal != nil && !*l.lastNormal {
			l.logger.Info("host state back to normal", "processes", count)
		}
	} else {
		if l.lastNormal == nil || *l.lastNormal {
			l.logger.Warn("host state anomalous, starting remediation",
				"processes", count, "required", l.cfg.Process.RequiredCount)
		} else {
			l.logger.Debug("host state still anomalous", "processes", count)
		}
		l.clock.Sleep(ctx, settleDelay)
		if ctx.Err() == nil {
			sess := l.controller.Run(ctx)
			l.logger.Info("remediation session finished",
				"session_id", sess.ID,
				"outcome", string(sess.Outcome),
				"iterations", sess.Iterations,
				"duration", sess.EndedAt.Sub(sess.StartedAt))
		}
	}

	l.lastNormal = &normal
	l.clock.Sleep(ctx, l.cfg.Monitor.LoopInterval)
}
