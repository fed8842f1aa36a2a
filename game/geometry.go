package game

// RectsOverlap checks for intersection between two axis-aligned rectangles.
// The test is strict: rectangles that merely touch edges do not overlap.
func RectsOverlap(a, b Rect) bool {
	if a.X < b.X+b.W && a.X+a.W > b.X {
		if a.Y < b.Y+b.H && a.Y+a.H > b.Y {
			return true
		}
	}
	return false
}

// PointInAnyWall reports whether the point (x, y) lies inside any wall. Each
// wall covers the half-open region [X, X+Width) x [Y, Y+Height). Called on
// every move and every bot tick; it allocates nothing and is O(len(walls)).
func PointInAnyWall(x, y float64, walls []Wall) bool {
	for i := range walls {
		w := &walls[i]
		if x >= w.X && x < w.X+w.Width && y >= w.Y && y < w.Y+w.Height {
			return true
		}
	}
	return false
}

// rectInAnyWall checks a full rectangle against the maze, used for actor and
// resource placement where a point test is too coarse.
func rectInAnyWall(r Rect, walls []Wall) bool {
	for i := range walls {
		if RectsOverlap(r, walls[i].Rect()) {
			return true
		}
	}
	return false
}
