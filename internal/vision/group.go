package vision

import "image"

// defaultGroupEps is the relative position tolerance under which two
// candidate boxes are considered the same detection.
const defaultGroupEps = 0.5

// groupRectangles clusters candidate boxes whose positions and sizes agree
// within eps, transitively, and returns one representative (averaged) box
// per cluster. A box with no similar neighbor forms its own cluster: a
// singleton detection counts, it is not discarded.
func groupRectangles(rects []image.Rectangle, eps float64) []image.Rectangle {
	n := len(rects)
	if n == 0 {
		return nil
	}

	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if similarRects(rects[i], rects[j], eps) {
				union(i, j)
			}
		}
	}

	type acc struct {
		x0, y0, x1, y1, count int
	}
	clusters := make(map[int]*acc)
	order := make([]int, 0)
	for i, r := range rects {
		root := find(i)
		a, ok := clusters[root]
		if !ok {
			a = &acc{}
			clusters[root] = a
			order = append(order, root)
		}
		a.x0 += r.Min.X
		a.y0 += r.Min.Y
		a.x1 += r.Max.X
		a.y1 += r.Max.Y
		a.count++
	}

	grouped := make([]image.Rectangle, 0, len(order))
	for _, root := range order {
		a := clusters[root]
		grouped = append(grouped, image.Rect(
			a.x0/a.count, a.y0/a.count, a.x1/a.count, a.y1/a.count))
	}
	return grouped
}

// similarRects reports whether two boxes are close enough in position and
// size to be the same detection. The tolerance scales with box size.
func similarRects(a, b image.Rectangle, eps float64) bool {
	delta := eps * 0.5 * float64(min(a.Dx(), b.Dx())+min(a.Dy(), b.Dy()))
	return abs(a.Min.X-b.Min.X) <= int(delta) &&
		abs(a.Min.Y-b.Min.Y) <= int(delta) &&
		abs(a.Max.X-b.Max.X) <= int(delta) &&
		abs(a.Max.Y-b.Max.Y) <= int(delta)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
