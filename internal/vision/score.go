package vision

import (
	"image"
	"math"
)

// plane is one channel of pixel data as float64 intensities.
type plane struct {
	w, h int
	pix  []float64
}

// colorPlanes splits an image into R, G, B planes.
func colorPlanes(img image.Image) []*plane {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	planes := []*plane{
		{w: w, h: h, pix: make([]float64, w*h)},
		{w: w, h: h, pix: make([]float64, w*h)},
		{w: w, h: h, pix: make([]float64, w*h)},
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := y*w + x
			planes[0].pix[i] = float64(r >> 8)
			planes[1].pix[i] = float64(g >> 8)
			planes[2].pix[i] = float64(bl >> 8)
		}
	}
	return planes
}

// grayPlanes reduces an image to a single luminance plane.
func grayPlanes(img image.Image) []*plane {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	p := &plane{w: w, h: h, pix: make([]float64, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			p.pix[y*w+x] = 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(bl>>8)
		}
	}
	return []*plane{p}
}

// integralImage holds summed-area tables over one plane so any window's
// sum and sum of squares come back in constant time. Tables are one cell
// wider and taller than the plane; row and column zero stay at zero.
type integralImage struct {
	w    int // table width, plane width + 1
	sum  []float64
	sum2 []float64
}

func newIntegralImage(p *plane) *integralImage {
	w1 := p.w + 1
	ii := &integralImage{
		w:    w1,
		sum:  make([]float64, w1*(p.h+1)),
		sum2: make([]float64, w1*(p.h+1)),
	}
	for y := 0; y < p.h; y++ {
		var rowSum, rowSum2 float64
		for x := 0; x < p.w; x++ {
			v := p.pix[y*p.w+x]
			rowSum += v
			rowSum2 += v * v
			i := (y+1)*w1 + x + 1
			ii.sum[i] = ii.sum[i-w1] + rowSum
			ii.sum2[i] = ii.sum2[i-w1] + rowSum2
		}
	}
	return ii
}

// window returns the sum and sum of squares of the w*h window whose
// top-left plane coordinate is (x, y).
func (ii *integralImage) window(x, y, w, h int) (s, s2 float64) {
	a := y*ii.w + x
	b := y*ii.w + x + w
	c := (y+h)*ii.w + x
	d := (y+h)*ii.w + x + w
	s = ii.sum[d] - ii.sum[b] - ii.sum[c] + ii.sum[a]
	s2 = ii.sum2[d] - ii.sum2[b] - ii.sum2[c] + ii.sum2[a]
	return s, s2
}

func integralImages(frame []*plane) []*integralImage {
	ints := make([]*integralImage, len(frame))
	for c, p := range frame {
		ints[c] = newIntegralImage(p)
	}
	return ints
}

// templateStats holds per-channel statistics precomputed once per template.
type templateStats struct {
	mean   []float64 // per channel
	sqDiff []float64 // per channel: sum of (T - mean)^2
}

func computeTemplateStats(tmpl []*plane) templateStats {
	n := float64(tmpl[0].w * tmpl[0].h)
	stats := templateStats{
		mean:   make([]float64, len(tmpl)),
		sqDiff: make([]float64, len(tmpl)),
	}
	for c, p := range tmpl {
		var sum float64
		for _, v := range p.pix {
			sum += v
		}
		stats.mean[c] = sum / n
		for _, v := range p.pix {
			d := v - stats.mean[c]
			stats.sqDiff[c] += d * d
		}
	}
	return stats
}

// scoreAt computes the normalized cross-correlation of the template with
// the frame window at offset (ox, oy). Both sides are mean-subtracted per
// channel over the window; channels contribute jointly to one score. The
// window's own sums come from the frame's integral images, leaving only
// the cross term as a per-pixel pass. The result is in [-1, 1]; a
// structureless window (zero variance) scores 0.
func scoreAt(frame, tmpl []*plane, stats templateStats, ints []*integralImage, ox, oy int) float64 {
	tw, th := tmpl[0].w, tmpl[0].h
	n := float64(tw * th)

	var num, denF, denT float64
	for c := range tmpl {
		fp, tp := frame[c], tmpl[c]

		sumF, sumF2 := ints[c].window(ox, oy, tw, th)

		var sumFT float64
		for y := 0; y < th; y++ {
			fRow := fp.pix[(oy+y)*fp.w+ox:]
			tRow := tp.pix[y*tw:]
			for x := 0; x < tw; x++ {
				sumFT += fRow[x] * tRow[x]
			}
		}

		meanF := sumF / n
		num += sumFT - n*meanF*stats.mean[c]
		denF += sumF2 - n*meanF*meanF
		denT += stats.sqDiff[c]
	}

	// Rounding can push a flat window's variance a hair below zero.
	if denF < 0 {
		denF = 0
	}
	den := math.Sqrt(denF * denT)
	if den <= 1e-9 {
		return 0
	}
	return num / den
}

// bestMatch scans every alignment of tmpl within frame and returns the
// maximum score and its top-left offset. Returns ok=false when the
// template does not fit inside the frame.
func bestMatch(frame, tmpl []*plane) (score float64, loc image.Point, ok bool) {
	fw, fh := frame[0].w, frame[0].h
	tw, th := tmpl[0].w, tmpl[0].h
	if tw > fw || th > fh || tw == 0 || th == 0 {
		return 0, image.Point{}, false
	}

	stats := computeTemplateStats(tmpl)
	ints := integralImages(frame)
	best := math.Inf(-1)
	var bestLoc image.Point
	for oy := 0; oy <= fh-th; oy++ {
		for ox := 0; ox <= fw-tw; ox++ {
			s := scoreAt(frame, tmpl, stats, ints, ox, oy)
			if s > best {
				best = s
				bestLoc = image.Pt(ox, oy)
			}
		}
	}
	return best, bestLoc, true
}

// matchesAbove returns the top-left offsets of every alignment whose score
// meets the threshold. The comparison is inclusive.
func matchesAbove(frame, tmpl []*plane, threshold float64) []image.Point {
	fw, fh := frame[0].w, frame[0].h
	tw, th := tmpl[0].w, tmpl[0].h
	if tw > fw || th > fh || tw == 0 || th == 0 {
		return nil
	}

	stats := computeTemplateStats(tmpl)
	ints := integralImages(frame)
	var pts []image.Point
	for oy := 0; oy <= fh-th; oy++ {
		for ox := 0; ox <= fw-tw; ox++ {
			if scoreAt(frame, tmpl, stats, ints, ox, oy) >= threshold {
				pts = append(pts, image.Pt(ox, oy))
			}
		}
	}
	return pts
}
