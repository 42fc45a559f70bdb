// Package geometry provides basic geometric types used throughout the application.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Point2D represents a 2D point with floating-point coordinates.
// Points are recorded in image (canvas) pixel space and are immutable
// once stored.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// PathLength returns the cumulative Euclidean length of the polyline
// through the given points, summing the distance between each pair of
// consecutive points. Fewer than two points have zero length.
func PathLength(points []Point2D) float64 {
	if len(points) < 2 {
		return 0
	}
	segments := make([]float64, len(points)-1)
	for i := 1; i < len(points); i++ {
		segments[i-1] = points[i-1].Distance(points[i])
	}
	return floats.Sum(segments)
}
