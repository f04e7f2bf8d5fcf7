package vision

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    *Region
		wantErr bool
	}{
		{"empty means unrestricted", "", nil, false},
		{"whitespace only", "   ", nil, false},
		{"valid", "10,20,110,220", &Region{10, 20, 110, 220}, false},
		{"valid with spaces", " 10 , 20 , 110 , 220 ", &Region{10, 20, 110, 220}, false},
		{"too few parts", "10,20,110", nil, true},
		{"too many parts", "10,20,110,220,330", nil, true},
		{"non-numeric", "10,20,abc,220", nil, true},
		{"inverted", "110,20,10,220", nil, true},
		{"zero area", "10,20,10,220", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseRegion(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegionOffset(t *testing.T) {
	t.Parallel()
	r := Region{Left: 100, Top: 50, Right: 300, Bottom: 250}
	assert.Equal(t, image.Pt(100, 50), r.Offset())
	assert.Equal(t, image.Rect(100, 50, 300, 250), r.Rect())
}
