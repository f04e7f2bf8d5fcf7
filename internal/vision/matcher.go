// Package vision implements the template-matching primitives the monitor
// uses to read the screen: locating the single best match of a reference
// image (where to click) and counting spatially distinct matches (how many
// instances look healthy).
package vision

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "image/jpeg"
	"image/png"
)

// Grabber captures the current display contents, optionally restricted to
// a region in absolute screen coordinates.
type Grabber interface {
	Grab(region *Region) (image.Image, error)
}

// Location is the outcome of a best-match search. Center is in absolute
// screen coordinates: when the search was restricted to a region, the
// region offset has already been added back.
type Location struct {
	Found  bool
	Center image.Point
}

// Matcher runs template matching against freshly captured frames. It never
// returns errors: every capture, load, or decode failure is logged and
// degraded to "no match" so the remediation loop keeps running.
type Matcher struct {
	grabber     Grabber
	logger      *slog.Logger
	snapshotDir string
	now         func() time.Time
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithSnapshotDir enables saving the captured frame as a PNG whenever a
// stuck template matches. Save failures are logged only.
func WithSnapshotDir(dir string) Option {
	return func(m *Matcher) { m.snapshotDir = dir }
}

// NewMatcher creates a matcher over the given capture capability.
func NewMatcher(grabber Grabber, logger *slog.Logger, opts ...Option) *Matcher {
	m := &Matcher{
		grabber: grabber,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// LocateBest captures one frame and tries each template path in order,
// returning the center of the first whose best alignment scores at or
// above threshold. Matching is full-color: the stuck target is typically
// a large, distinctively colored dialog. Templates that are missing or
// fail to decode are skipped with a warning.
func (m *Matcher) LocateBest(paths []string, threshold float64, region *Region) Location {
	img, err := m.grabber.Grab(region)
	if err != nil {
		m.logger.Error("frame capture failed", "error", err)
		return Location{}
	}
	frame := colorPlanes(img)

	for _, path := range paths {
		tmplImg, err := loadImage(path)
		if err != nil {
			m.logger.Warn("skipping stuck template", "template", path, "error", err)
			continue
		}

		tmpl := colorPlanes(tmplImg)
		score, loc, ok := bestMatch(frame, tmpl)
		if !ok {
			m.logger.Warn("template larger than frame, skipping",
				"template", path, "frame_w", frame[0].w, "frame_h", frame[0].h)
			continue
		}

		m.logger.Debug("stuck template scored",
			"template", filepath.Base(path), "score", score, "threshold", threshold)

		if score >= threshold {
			m.logger.Info("stuck template matched",
				"template", filepath.Base(path), "score", score)
			m.saveSnapshot(img)

			center := loc.Add(image.Pt(tmpl[0].w/2, tmpl[0].h/2))
			if region != nil {
				center = center.Add(region.Offset())
			}
			return Location{Found: true, Center: center}
		}
	}
	return Location{}
}

// CountMatches captures one frame and counts spatially distinct alignments
// of the template scoring at or above threshold. Matching is done on a
// single luminance channel: the success target is a small repeated icon
// where color fidelity buys nothing. Overlapping candidates collapse into
// one detection; an isolated candidate still counts as one.
func (m *Matcher) CountMatches(path string, threshold float64, region *Region) int {
	tmplImg, err := loadImage(path)
	if err != nil {
		m.logger.Warn("success template unavailable", "template", path, "error", err)
		return 0
	}

	img, err := m.grabber.Grab(region)
	if err != nil {
		m.logger.Error("frame capture failed", "error", err)
		return 0
	}

	frame := grayPlanes(img)
	tmpl := grayPlanes(tmplImg)

	pts := matchesAbove(frame, tmpl, threshold)
	if len(pts) == 0 {
		return 0
	}

	tw, th := tmpl[0].w, tmpl[0].h
	rects := make([]image.Rectangle, len(pts))
	for i, pt := range pts {
		rects[i] = image.Rect(pt.X, pt.Y, pt.X+tw, pt.Y+th)
	}
	return len(groupRectangles(rects, defaultGroupEps))
}

func (m *Matcher) saveSnapshot(img image.Image) {
	if m.snapshotDir == "" {
		return
	}
	path, err := writeSnapshot(m.snapshotDir, img, m.now())
	if err != nil {
		m.logger.Error("saving stuck snapshot failed", "error", err)
		return
	}
	m.logger.Info("stuck snapshot saved", "path", path)
}

// writeSnapshot stores the frame as a timestamped PNG inside dir.
func writeSnapshot(dir string, img image.Image, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating snapshot directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("stuck_snapshot_%s.png", now.Format("20060102_150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating snapshot file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}
	return path, nil
}

// loadImage reads and decodes a template image from disk. Templates are
// loaded on every use; the monitor runs for weeks and operators replace
// template files without restarting it.
func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening template: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding template: %w", err)
	}
	return img, nil
}
