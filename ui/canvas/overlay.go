// Package canvas provides overlay types for the photo canvas.
package canvas

import (
	"image/color"

	"photo-ruler/pkg/geometry"
)

// Overlay represents the drawable annotations on top of the photo: point
// markers, path segments, and the measurement label. Coordinates are in
// image space; the canvas scales them by the current zoom when drawing.
type Overlay struct {
	Circles []OverlayCircle
	Lines   []OverlayLine
	Labels  []OverlayLabel
}

// OverlayCircle is a point marker.
type OverlayCircle struct {
	Center geometry.Point2D
	Radius float64
	Color  color.RGBA
	Filled bool
}

// OverlayLine is a path segment between two recorded points.
type OverlayLine struct {
	From      geometry.Point2D
	To        geometry.Point2D
	Color     color.RGBA
	Thickness int
}

// OverlayLabel is text anchored at an image-space position. It is drawn
// with the built-in 3x5 bitmap font so no font dependencies are needed in
// the raster path.
type OverlayLabel struct {
	Text   string
	Anchor geometry.Point2D
	Color  color.RGBA
	Scale  int // Pixel multiplier per font cell, 1-6
}
