package session

import "photo-ruler/pkg/geometry"

// PathKind tags a draw command with the point list it came from, so the
// renderer can color reference and measurement geometry distinctly.
type PathKind int

const (
	KindReference PathKind = iota
	KindMeasurement
)

// Marker is a circle to draw at a recorded point.
type Marker struct {
	Center geometry.Point2D
	Kind   PathKind
}

// Segment is a line to draw between two consecutive recorded points.
type Segment struct {
	From geometry.Point2D
	To   geometry.Point2D
	Kind PathKind
}

// RenderPlan is the ordered set of draw commands the presentation layer
// executes on top of the photo: one marker per point, one segment per
// consecutive pair, and the current measurement (or guidance) string.
type RenderPlan struct {
	Markers  []Marker
	Segments []Segment
	Label    string
}

// RenderPlan builds the draw commands for the session's current state.
func (s *Session) RenderPlan() RenderPlan {
	var plan RenderPlan

	appendPath := func(points []geometry.Point2D, kind PathKind) {
		for i, p := range points {
			plan.Markers = append(plan.Markers, Marker{Center: p, Kind: kind})
			if i > 0 {
				plan.Segments = append(plan.Segments, Segment{
					From: points[i-1],
					To:   p,
					Kind: kind,
				})
			}
		}
	}

	appendPath(s.refPoints, KindReference)
	appendPath(s.measurePoints, KindMeasurement)
	plan.Label = s.CurrentMeasurement().String()
	return plan
}
