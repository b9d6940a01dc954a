package geom

import "math"

// SqDist returns the squared euclidean distance between two points.
// Comparisons should use this form to avoid the square root.
func SqDist(ax, ay, bx, by float64) float64 {
	dx := ax - bx
	dy := ay - by
	return dx*dx + dy*dy
}

// Dist returns the euclidean distance between two points.
// Only needed where an actual magnitude is shown to the player.
func Dist(ax, ay, bx, by float64) float64 {
	return math.Sqrt(SqDist(ax, ay, bx, by))
}
