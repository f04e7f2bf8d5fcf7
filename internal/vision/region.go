package vision

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// Region restricts matching to a rectangular sub-area of the display,
// expressed in absolute screen coordinates.
type Region struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Rect returns the region as an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}

// Offset returns the translation from region-local to absolute screen
// coordinates.
func (r Region) Offset() image.Point {
	return image.Pt(r.Left, r.Top)
}

func (r Region) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", r.Left, r.Top, r.Right, r.Bottom)
}

// ParseRegion parses a "left,top,right,bottom" string. An empty string is
// not an error; it means unrestricted search and returns nil. Callers are
// expected to treat a parse error the same way after logging a warning:
// a malformed region falls back to full-screen search, it never aborts.
func ParseRegion(s string) (*Region, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("region %q: want 4 comma-separated integers, got %d", s, len(parts))
	}

	vals := make([]int, 4)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("region %q: %w", s, err)
		}
		vals[i] = n
	}

	r := Region{Left: vals[0], Top: vals[1], Right: vals[2], Bottom: vals[3]}
	if r.Right <= r.Left || r.Bottom <= r.Top {
		return nil, fmt.Errorf("region %q: empty or inverted rectangle", s)
	}
	return &r, nil
}
