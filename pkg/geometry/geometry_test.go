package geometry

import (
	"math"
	"testing"
)

func TestPoint2DDistance(t *testing.T) {
	p1 := NewPoint2D(0, 0)
	p2 := NewPoint2D(3, 4)
	distance := p1.Distance(p2)

	expected := 5.0
	if math.Abs(distance-expected) > 1e-10 {
		t.Errorf("Distance failed: expected %v, got %v", expected, distance)
	}
}

func TestPoint2DDistanceSymmetric(t *testing.T) {
	p1 := NewPoint2D(12.5, -3)
	p2 := NewPoint2D(-7, 40.25)

	if d1, d2 := p1.Distance(p2), p2.Distance(p1); d1 != d2 {
		t.Errorf("Distance not symmetric: %v vs %v", d1, d2)
	}
}

func TestPathLengthEmpty(t *testing.T) {
	if l := PathLength(nil); l != 0 {
		t.Errorf("PathLength(nil) = %v, want 0", l)
	}
	if l := PathLength([]Point2D{{X: 10, Y: 10}}); l != 0 {
		t.Errorf("PathLength of single point = %v, want 0", l)
	}
}

func TestPathLength(t *testing.T) {
	points := []Point2D{
		NewPoint2D(0, 0),
		NewPoint2D(50, 0),
		NewPoint2D(50, 50),
	}
	length := PathLength(points)

	expected := 100.0
	if math.Abs(length-expected) > 1e-10 {
		t.Errorf("PathLength failed: expected %v, got %v", expected, length)
	}
}

func TestPathLengthDiagonal(t *testing.T) {
	points := []Point2D{
		NewPoint2D(0, 0),
		NewPoint2D(3, 4),
		NewPoint2D(6, 8),
	}
	length := PathLength(points)

	expected := 10.0
	if math.Abs(length-expected) > 1e-10 {
		t.Errorf("PathLength failed: expected %v, got %v", expected, length)
	}
}
