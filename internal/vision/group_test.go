package vision

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupRectangles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		rects     []image.Rectangle
		wantCount int
	}{
		{
			name:      "empty",
			rects:     nil,
			wantCount: 0,
		},
		{
			name:      "singleton survives",
			rects:     []image.Rectangle{image.Rect(10, 10, 30, 30)},
			wantCount: 1,
		},
		{
			name: "heavy overlap collapses",
			rects: []image.Rectangle{
				image.Rect(10, 10, 30, 30),
				image.Rect(11, 11, 31, 31),
			},
			wantCount: 1,
		},
		{
			name: "disjoint stay apart",
			rects: []image.Rectangle{
				image.Rect(10, 10, 30, 30),
				image.Rect(100, 100, 120, 120),
			},
			wantCount: 2,
		},
		{
			name: "transitive chain merges",
			rects: []image.Rectangle{
				image.Rect(10, 10, 30, 30),
				image.Rect(15, 10, 35, 30),
				image.Rect(20, 10, 40, 30),
			},
			wantCount: 1,
		},
		{
			name: "two clusters plus singleton",
			rects: []image.Rectangle{
				image.Rect(10, 10, 30, 30),
				image.Rect(12, 10, 32, 30),
				image.Rect(200, 200, 220, 220),
				image.Rect(201, 201, 221, 221),
				image.Rect(400, 50, 420, 70),
			},
			wantCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := groupRectangles(tt.rects, defaultGroupEps)
			assert.Len(t, got, tt.wantCount)
		})
	}
}

func TestGroupRectanglesAveragesCluster(t *testing.T) {
	t.Parallel()

	rects := []image.Rectangle{
		image.Rect(10, 10, 30, 30),
		image.Rect(14, 14, 34, 34),
	}
	got := groupRectangles(rects, defaultGroupEps)
	assert.Equal(t, []image.Rectangle{image.Rect(12, 12, 32, 32)}, got)
}
