// Package monitor drives the fleet health check loop: a cheap process
// census in the steady state, and a bounded remediation session combining
// census, screen matching, and corrective clicks when the census deviates.
package monitor

import (
	"context"
	"image"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"screenmon/internal/config"
	"screenmon/internal/sysinfo"
	"screenmon/internal/vision"
)

// observeDelay is the pause after a checking iteration that found no
// stuck marker. The screen is assumed to be mid-transition and only
// needs a brief look later; this is deliberately not configurable.
const observeDelay = 5 * time.Second

// ProcessCounter samples the process census.
type ProcessCounter interface {
	Count(ctx context.Context, name string) int
}

// Matcher runs the two template-matching operations.
type Matcher interface {
	LocateBest(paths []string, threshold float64, region *vision.Region) vision.Location
	CountMatches(path string, threshold float64, region *vision.Region) int
}

// Clicker injects a pointer click at absolute screen coordinates.
type Clicker interface {
	Click(x, y int) error
}

// AlertWriter appends records to the shared alert log.
type AlertWriter interface {
	Append(message string) error
}

// SnapshotTaker captures a host resource snapshot for alert records.
type SnapshotTaker interface {
	Collect() sysinfo.Snapshot
}

// SessionRecorder persists finished sessions for operator review.
type SessionRecorder interface {
	Record(ctx context.Context, sess Session) error
}

// Controller runs one remediation session per invocation. It owns the
// retry/timeout policy: check for full health, otherwise look for the
// stuck marker, click it if found, wait, repeat until recovered or the
// timeout elapses.
type Controller struct {
	cfg     *config.Config
	census  ProcessCounter
	matcher Matcher
	clicker Clicker
	alerts  AlertWriter
	history SessionRecorder // optional
	sysinfo SnapshotTaker   // optional
	clock   Clock
	logger  *slog.Logger

	stuckRegion   *vision.Region
	successRegion *vision.Region
}

// NewController builds a controller from the validated configuration and
// capabilities. Malformed search areas degrade to full-screen search with
// a warning; they never fail construction.
func NewController(
	cfg *config.Config,
	census ProcessCounter,
	matcher Matcher,
	clicker Clicker,
	alerts AlertWriter,
	clock Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		cfg:           cfg,
		census:        census,
		matcher:       matcher,
		clicker:       clicker,
		alerts:        alerts,
		clock:         clock,
		logger:        logger,
		stuckRegion:   parseRegion(cfg.Stuck.SearchArea, "stuck", logger),
		successRegion: parseRegion(cfg.Success.SearchArea, "success", logger),
	}
}

// WithHistory attaches a session recorder.
func (c *Controller) WithHistory(recorder SessionRecorder) *Controller {
	c.history = recorder
	return c
}

// WithSysinfo attaches a host-snapshot collector whose summary is included
// in the session-start alert record.
func (c *Controller) WithSysinfo(taker SnapshotTaker) *Controller {
	c.sysinfo = taker
	return c
}

func parseRegion(s, kind string, logger *slog.Logger) *vision.Region {
	region, err := vision.ParseRegion(s)
	if err != nil {
		logger.Warn("malformed search area, using full screen", "kind", kind, "error", err)
		return nil
	}
	return region
}

// Run executes one remediation session and returns it in its terminal
// state. It returns only when the host has recovered, the timeout has
// elapsed, or ctx was canceled.
func (c *Controller) Run(ctx context.Context) Session {
	sess := Session{
		ID:        uuid.NewString(),
		StartedAt: c.clock.Now(),
	}
	logger := c.logger.With("session_id", sess.ID)
	logger.Info("entering remediation", "timeout", c.cfg.Monitor.Timeout)

	c.appendAlert(logger, c.entryMessage())

	for {
		if ctx.Err() != nil {
			logger.Warn("remediation interrupted by shutdown")
			sess.Outcome = OutcomeAborted
			break
		}

		elapsed := c.clock.Now().Sub(sess.StartedAt)
		if elapsed >= c.cfg.Monitor.Timeout {
			logger.Error("remediation timed out", "elapsed", elapsed)
			c.appendAlert(logger, "automatic remediation timed out, problem unresolved")
			sess.Outcome = OutcomeTimedOut
			break
		}

		sess.Iterations++
		sess.ProcessCount = c.census.Count(ctx, c.cfg.Process.Name)
		sess.SuccessCount = c.matcher.CountMatches(
			c.cfg.Success.Template, c.cfg.Success.Threshold, c.successRegion)

		logger.Debug("checking",
			"processes", sess.ProcessCount, "required", c.cfg.Process.RequiredCount,
			"success_markers", sess.SuccessCount, "required_markers", c.cfg.Success.RequiredCount)

		// Recovery needs both conditions in the same iteration: a lucky
		// marker count alone must not end the session.
		if sess.ProcessCount == c.cfg.Process.RequiredCount &&
			sess.SuccessCount >= c.cfg.Success.RequiredCount {
			logger.Info("host recovered", "iterations", sess.Iterations)
			sess.Outcome = OutcomeRecovered
			break
		}

		loc := c.matcher.LocateBest(
			c.cfg.Stuck.Templates, c.cfg.Stuck.Threshold, c.stuckRegion)
		if loc.Found {
			logger.Warn("stuck marker found", "center_x", loc.Center.X, "center_y", loc.Center.Y)
			c.clickAt(logger, loc.Center)
			c.clock.Sleep(ctx, c.cfg.Click.RetryDelay)
		} else {
			logger.Debug("no stuck marker, observing")
			c.clock.Sleep(ctx, observeDelay)
		}
	}

	sess.EndedAt = c.clock.Now()
	c.recordSession(ctx, logger, sess)
	return sess
}

func (c *Controller) entryMessage() string {
	msg := "host state anomalous, starting automatic remediation"
	if c.sysinfo != nil {
		msg += " (" + c.sysinfo.Collect().String() + ")"
	}
	return msg
}

func (c *Controller) clickAt(logger *slog.Logger, center image.Point) {
	if !c.cfg.Click.Enabled {
		logger.Info("click disabled, skipping injection")
		return
	}

	x := center.X + c.cfg.Click.OffsetX
	y := center.Y + c.cfg.Click.OffsetY
	logger.Info("clicking", "x", x, "y", y)
	if err := c.clicker.Click(x, y); err != nil {
		logger.Error("click injection failed", "error", err)
	}
}

func (c *Controller) appendAlert(logger *slog.Logger, message string) {
	if err := c.alerts.Append(message); err != nil {
		logger.Error("writing alert record failed", "error", err)
	}
}

func (c *Controller) recordSession(ctx context.Context, logger *slog.Logger, sess Session) {
	if c.history == nil {
		return
	}
	if err := c.history.Record(ctx, sess); err != nil {
		logger.Error("recording session history failed", "error", err)
	}
}
