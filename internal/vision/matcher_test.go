package vision

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"screenmon/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGrabber serves a fixed frame, cropping it like a real capture when a
// region is supplied.
type fakeGrabber struct {
	frame *image.RGBA
	err   error
	grabs int
}

func (g *fakeGrabber) Grab(region *Region) (image.Image, error) {
	g.grabs++
	if g.err != nil {
		return nil, g.err
	}
	if region == nil {
		return g.frame, nil
	}
	crop := image.NewRGBA(image.Rect(0, 0, region.Right-region.Left, region.Bottom-region.Top))
	draw.Draw(crop, crop.Bounds(), g.frame, image.Pt(region.Left, region.Top), draw.Src)
	return crop, nil
}

// patternImage returns a w*h image with position-dependent colors, so an
// exact copy correlates perfectly and nothing else does.
func patternImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(40 + x*17 + y*3),
				G: uint8(200 - x*11 + y*7),
				B: uint8(90 + x*5 + y*13),
				A: 255,
			})
		}
	}
	return img
}

func uniformFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{40, 40, 40, 255}), image.Point{}, draw.Src)
	return img
}

func pasteAt(dst *image.RGBA, src image.Image, x, y int) {
	b := src.Bounds()
	draw.Draw(dst, image.Rect(x, y, x+b.Dx(), y+b.Dy()), src, b.Min, draw.Src)
}

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestLocateBestFindsPatternCenter(t *testing.T) {
	t.Parallel()

	tmpl := patternImage(10, 8)
	frame := uniformFrame(60, 40)
	pasteAt(frame, tmpl, 20, 12)

	dir := t.TempDir()
	tmplPath := writePNG(t, dir, "stuck.png", tmpl)

	grabber := &fakeGrabber{frame: frame}
	m := NewMatcher(grabber, logging.NewNop().Logger)

	loc := m.LocateBest([]string{tmplPath}, 0.95, nil)
	require.True(t, loc.Found)
	assert.Equal(t, image.Pt(25, 16), loc.Center, "center = top-left + half template size")
	assert.Equal(t, 1, grabber.grabs, "one capture shared across templates")
}

func TestLocateBestAddsRegionOffset(t *testing.T) {
	t.Parallel()

	tmpl := patternImage(10, 8)
	frame := uniformFrame(200, 150)
	pasteAt(frame, tmpl, 120, 62)

	dir := t.TempDir()
	tmplPath := writePNG(t, dir, "stuck.png", tmpl)

	// Region covering the right half of the frame; the patch sits at
	// (20, 12) in region-local coordinates.
	region := &Region{Left: 100, Top: 50, Right: 200, Bottom: 150}
	m := NewMatcher(&fakeGrabber{frame: frame}, logging.NewNop().Logger)

	loc := m.LocateBest([]string{tmplPath}, 0.95, region)
	require.True(t, loc.Found)
	assert.Equal(t, image.Pt(125, 66), loc.Center, "center reported in absolute screen coordinates")
}

func TestLocateBestBelowThreshold(t *testing.T) {
	t.Parallel()

	// The frame never contains the template pattern.
	frame := uniformFrame(60, 40)
	pasteAt(frame, patternImage(10, 8), 20, 12)

	other := image.NewRGBA(image.Rect(0, 0, 10, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 10; x++ {
			// Inverted pattern: correlates negatively with the patch.
			c := patternImage(10, 8).RGBAAt(x, y)
			other.Set(x, y, color.RGBA{255 - c.R, 255 - c.G, 255 - c.B, 255})
		}
	}

	dir := t.TempDir()
	tmplPath := writePNG(t, dir, "other.png", other)

	m := NewMatcher(&fakeGrabber{frame: frame}, logging.NewNop().Logger)
	loc := m.LocateBest([]string{tmplPath}, 0.8, nil)
	assert.False(t, loc.Found)
	assert.Equal(t, image.Point{}, loc.Center)
}

func TestLocateBestTriesTemplatesInOrder(t *testing.T) {
	t.Parallel()

	present := patternImage(10, 8)
	frame := uniformFrame(60, 40)
	pasteAt(frame, present, 6, 6)

	absent := uniformFrame(10, 8) // zero-variance template never scores

	dir := t.TempDir()
	absentPath := writePNG(t, dir, "absent.png", absent)
	presentPath := writePNG(t, dir, "present.png", present)
	missingPath := filepath.Join(dir, "missing.png")

	m := NewMatcher(&fakeGrabber{frame: frame}, logging.NewNop().Logger)
	loc := m.LocateBest([]string{missingPath, absentPath, presentPath}, 0.95, nil)
	require.True(t, loc.Found, "later template still matches after earlier ones miss")
	assert.Equal(t, image.Pt(11, 10), loc.Center)
}

func TestLocateBestDegradesOnFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	garbage := filepath.Join(dir, "broken.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))

	t.Run("capture error", func(t *testing.T) {
		m := NewMatcher(&fakeGrabber{err: fmt.Errorf("display asleep")}, logging.NewNop().Logger)
		loc := m.LocateBest([]string{garbage}, 0.8, nil)
		assert.False(t, loc.Found)
	})

	t.Run("undecodable template", func(t *testing.T) {
		m := NewMatcher(&fakeGrabber{frame: uniformFrame(40, 40)}, logging.NewNop().Logger)
		loc := m.LocateBest([]string{garbage}, 0.8, nil)
		assert.False(t, loc.Found)
	})

	t.Run("missing template", func(t *testing.T) {
		m := NewMatcher(&fakeGrabber{frame: uniformFrame(40, 40)}, logging.NewNop().Logger)
		loc := m.LocateBest([]string{filepath.Join(dir, "nope.png")}, 0.8, nil)
		assert.False(t, loc.Found)
	})

	t.Run("template larger than frame", func(t *testing.T) {
		dir := t.TempDir()
		big := writePNG(t, dir, "big.png", patternImage(100, 100))
		m := NewMatcher(&fakeGrabber{frame: uniformFrame(40, 40)}, logging.NewNop().Logger)
		loc := m.LocateBest([]string{big}, 0.8, nil)
		assert.False(t, loc.Found)
	})
}

func TestCountMatches(t *testing.T) {
	t.Parallel()

	icon := patternImage(6, 6)
	dir := t.TempDir()
	iconPath := writePNG(t, dir, "icon.png", icon)

	tests := []struct {
		name      string
		positions []image.Point
		want      int
	}{
		{"none", nil, 0},
		{"single isolated match counts", []image.Point{{10, 10}}, 1},
		{"two far apart", []image.Point{{10, 10}, {50, 22}}, 2},
		{"three spread out", []image.Point{{4, 4}, {34, 8}, {64, 26}}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			frame := uniformFrame(80, 40)
			for _, pt := range tt.positions {
				pasteAt(frame, icon, pt.X, pt.Y)
			}
			m := NewMatcher(&fakeGrabber{frame: frame}, logging.NewNop().Logger)
			assert.Equal(t, tt.want, m.CountMatches(iconPath, 0.95, nil))
		})
	}
}

func TestCountMatchesRespectsRegion(t *testing.T) {
	t.Parallel()

	icon := patternImage(6, 6)
	frame := uniformFrame(120, 60)
	pasteAt(frame, icon, 10, 10) // outside the region
	pasteAt(frame, icon, 70, 20) // inside

	dir := t.TempDir()
	iconPath := writePNG(t, dir, "icon.png", icon)

	m := NewMatcher(&fakeGrabber{frame: frame}, logging.NewNop().Logger)
	region := &Region{Left: 60, Top: 0, Right: 120, Bottom: 60}
	assert.Equal(t, 1, m.CountMatches(iconPath, 0.95, region))
}

func TestCountMatchesDegradesToZero(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := NewMatcher(&fakeGrabber{err: fmt.Errorf("capture failed")}, logging.NewNop().Logger)
	iconPath := writePNG(t, dir, "icon.png", patternImage(6, 6))

	assert.Equal(t, 0, m.CountMatches(filepath.Join(dir, "missing.png"), 0.9, nil))
	assert.Equal(t, 0, m.CountMatches(iconPath, 0.9, nil), "capture failure degrades to zero")
}

func TestMatchThresholdIsInclusive(t *testing.T) {
	t.Parallel()

	tmplImg := patternImage(6, 6)
	frame := uniformFrame(40, 30)
	pasteAt(frame, tmplImg, 12, 9)

	framePlanes := grayPlanes(frame)
	tmplPlanes := grayPlanes(tmplImg)

	score, loc, ok := bestMatch(framePlanes, tmplPlanes)
	require.True(t, ok)
	require.Equal(t, image.Pt(12, 9), loc)

	// found iff max >= threshold: the exact score passes, anything
	// strictly above it does not.
	atThreshold := matchesAbove(framePlanes, tmplPlanes, score)
	assert.Contains(t, atThreshold, image.Pt(12, 9))

	aboveThreshold := matchesAbove(framePlanes, tmplPlanes, score+1e-6)
	assert.NotContains(t, aboveThreshold, image.Pt(12, 9))
}

func TestSnapshotSavedOnStuckMatch(t *testing.T) {
	t.Parallel()

	tmpl := patternImage(10, 8)
	frame := uniformFrame(60, 40)
	pasteAt(frame, tmpl, 20, 12)

	dir := t.TempDir()
	tmplPath := writePNG(t, dir, "stuck.png", tmpl)
	snapDir := filepath.Join(dir, "snaps")

	m := NewMatcher(&fakeGrabber{frame: frame}, logging.NewNop().Logger, WithSnapshotDir(snapDir))
	loc := m.LocateBest([]string{tmplPath}, 0.95, nil)
	require.True(t, loc.Found)

	entries, err := os.ReadDir(snapDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "stuck_snapshot_")
}
