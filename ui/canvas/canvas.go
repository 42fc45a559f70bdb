// Package canvas provides a photo canvas with pan, zoom, and click capture.
package canvas

import (
	"image"
	"image/color"
	"math"

	"photo-ruler/internal/photo"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25

	// tapMoveThreshold separates taps from pans: presses that move at most
	// this many pixels between start and release count as clicks, larger
	// movements pan the viewport and are never forwarded as clicks.
	tapMoveThreshold = 5.0
)

// PhotoCanvas displays the loaded photo with pan and zoom, forwards clicks
// in image coordinates, and draws the measurement overlay.
type PhotoCanvas struct {
	widget.BaseWidget

	// Photo being measured (nil until loaded)
	layer *photo.Layer

	// Annotations drawn over the photo
	overlay *Overlay

	// Display state
	raster *fynecanvas.Raster
	zoom   float64

	// Container
	scroll  *zoomScroll
	content *clickableContent
	imgSize fyne.Size

	// Fit to window
	fitToWindow    bool
	lastScrollSize fyne.Size

	// Callbacks
	onZoomChange func(zoom float64)
	onClick      func(x, y float64) // Click at image coordinates
}

// zoomScroll wraps a scroll container but intercepts wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *PhotoCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *PhotoCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	// Use wheel for zoom, not scroll
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

// Pan moves the viewport by the given delta, clamped to the content.
func (zs *zoomScroll) Pan(dx, dy float32) {
	contentSize := zs.scroll.Content.Size()
	viewSize := zs.scroll.Size()

	clamp := func(v, max float32) float32 {
		if v < 0 {
			return 0
		}
		if v > max {
			return max
		}
		return v
	}

	zs.scroll.Offset = fyne.Position{
		X: clamp(zs.scroll.Offset.X-dx, contentSize.Width-viewSize.Width),
		Y: clamp(zs.scroll.Offset.Y-dy, contentSize.Height-viewSize.Height),
	}
	zs.scroll.Refresh()
}

// Size returns the scroll container's size.
func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

// Refresh refreshes the scroll container.
func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

// Resize sets the size of the scroll container.
func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// clickableContent wraps the raster to handle mouse and touch events,
// disambiguating taps from pans.
type clickableContent struct {
	widget.BaseWidget
	canvas *PhotoCanvas
	raster *fynecanvas.Raster

	dragging  bool
	dragStart fyne.Position
	dragMoved float64 // Accumulated movement in canvas pixels
}

func newClickableContent(pc *PhotoCanvas, raster *fynecanvas.Raster) *clickableContent {
	cc := &clickableContent{
		canvas: pc,
		raster: raster,
	}
	cc.ExtendBaseWidget(cc)
	return cc
}

func (cc *clickableContent) CreateRenderer() fyne.WidgetRenderer {
	return &clickableContentRenderer{content: cc}
}

func (cc *clickableContent) MinSize() fyne.Size {
	return cc.raster.MinSize()
}

// Dragged accumulates movement; once it exceeds the tap threshold the
// gesture becomes a pan and the viewport follows the pointer.
func (cc *clickableContent) Dragged(ev *fyne.DragEvent) {
	if !cc.dragging {
		cc.dragging = true
		cc.dragStart = ev.Position
		cc.dragMoved = 0
	}
	cc.dragMoved += math.Hypot(float64(ev.Dragged.DX), float64(ev.Dragged.DY))

	if cc.dragMoved > tapMoveThreshold {
		cc.canvas.scroll.Pan(ev.Dragged.DX, ev.Dragged.DY)
	}
}

// DragEnd treats a press that never moved beyond the threshold as a click
// at its starting position.
func (cc *clickableContent) DragEnd() {
	if cc.dragging && cc.dragMoved <= tapMoveThreshold {
		cc.forwardClick(cc.dragStart)
	}
	cc.dragging = false
	cc.dragMoved = 0
}

func (cc *clickableContent) Scrolled(ev *fyne.ScrollEvent) {
	// Use mouse wheel for zooming
	if ev.Scrolled.DY > 0 {
		cc.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		cc.canvas.ZoomOut()
	}
}

// Tapped handles plain click events.
func (cc *clickableContent) Tapped(ev *fyne.PointEvent) {
	cc.forwardClick(ev.Position)
}

func (cc *clickableContent) forwardClick(pos fyne.Position) {
	if cc.canvas.onClick == nil {
		return
	}

	// Workaround for Fyne bug: reject clicks outside widget bounds.
	// pos should be relative to the widget, so check for valid range.
	size := cc.Size()
	if pos.X < 0 || pos.Y < 0 || pos.X > size.Width || pos.Y > size.Height {
		return
	}

	// Convert widget position through scroll offset and zoom to image
	// coordinates.
	scrollOffset := cc.canvas.scroll.Offset()
	canvasX := float64(pos.X + scrollOffset.X)
	canvasY := float64(pos.Y + scrollOffset.Y)

	imgX := canvasX / cc.canvas.zoom
	imgY := canvasY / cc.canvas.zoom

	cc.canvas.onClick(imgX, imgY)
}

type clickableContentRenderer struct {
	content *clickableContent
}

func (r *clickableContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *clickableContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *clickableContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *clickableContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *clickableContentRenderer) Destroy() {}

// NewPhotoCanvas creates a new photo canvas.
func NewPhotoCanvas() *PhotoCanvas {
	pc := &PhotoCanvas{
		zoom:    1.0,
		imgSize: fyne.NewSize(400, 300),
	}

	pc.raster = fynecanvas.NewRaster(pc.draw)
	pc.raster.ScaleMode = fynecanvas.ImageScalePixels
	pc.raster.SetMinSize(pc.imgSize)

	pc.content = newClickableContent(pc, pc.raster)
	pc.scroll = newZoomScroll(pc.content, pc)

	pc.ExtendBaseWidget(pc)
	return pc
}

// CreateRenderer returns the renderer for the canvas widget.
func (pc *PhotoCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(pc.scroll)
}

// Container returns the canvas container for embedding in layouts.
func (pc *PhotoCanvas) Container() fyne.CanvasObject {
	return pc.scroll
}

// SetPhoto sets the photo to display. A nil layer clears the canvas.
func (pc *PhotoCanvas) SetPhoto(layer *photo.Layer) {
	pc.layer = layer
	pc.updateContentSize()
}

// Photo returns the currently displayed photo, or nil.
func (pc *PhotoCanvas) Photo() *photo.Layer {
	return pc.layer
}

// SetOverlay replaces the measurement overlay.
func (pc *PhotoCanvas) SetOverlay(overlay *Overlay) {
	pc.overlay = overlay
	pc.Refresh()
}

// ClearOverlay removes all annotations.
func (pc *PhotoCanvas) ClearOverlay() {
	pc.overlay = nil
	pc.Refresh()
}

// SetZoom sets the zoom level.
func (pc *PhotoCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	pc.zoom = zoom
	pc.updateContentSize()

	if pc.onZoomChange != nil {
		pc.onZoomChange(zoom)
	}
}

// Zoom returns the current zoom level.
func (pc *PhotoCanvas) Zoom() float64 {
	return pc.zoom
}

// ZoomIn increases the zoom level.
func (pc *PhotoCanvas) ZoomIn() {
	pc.SetZoom(pc.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (pc *PhotoCanvas) ZoomOut() {
	pc.SetZoom(pc.zoom / zoomStep)
}

// FitToWindow adjusts zoom to fit the photo in the visible area.
func (pc *PhotoCanvas) FitToWindow() {
	if pc.layer == nil || pc.layer.Width == 0 || pc.layer.Height == 0 {
		return
	}

	viewSize := pc.scroll.Size()
	if viewSize.Width <= 0 || viewSize.Height <= 0 {
		return
	}

	zoomX := float64(viewSize.Width) / float64(pc.layer.Width)
	zoomY := float64(viewSize.Height) / float64(pc.layer.Height)

	zoom := zoomX
	if zoomY < zoomX {
		zoom = zoomY
	}

	pc.SetZoom(zoom * 0.95) // Leave a small margin
}

// SetFitToWindow enables or disables auto-fit on resize.
func (pc *PhotoCanvas) SetFitToWindow(fit bool) {
	pc.fitToWindow = fit
	if fit {
		pc.FitToWindow()
	}
}

// GetFitToWindow returns the current fit-to-window state.
func (pc *PhotoCanvas) GetFitToWindow() bool {
	return pc.fitToWindow
}

// OnZoomChange sets a callback for zoom changes.
func (pc *PhotoCanvas) OnZoomChange(callback func(zoom float64)) {
	pc.onZoomChange = callback
}

// OnClick sets a callback for click events. Coordinates are in image
// space (not zoomed); resize and zoom never alter previously forwarded
// coordinates.
func (pc *PhotoCanvas) OnClick(callback func(x, y float64)) {
	pc.onClick = callback
}

// Refresh refreshes the canvas display.
func (pc *PhotoCanvas) Refresh() {
	pc.raster.Refresh()
}

// updateContentSize updates the content size based on the photo and zoom.
func (pc *PhotoCanvas) updateContentSize() {
	if pc.layer == nil || pc.layer.Width == 0 || pc.layer.Height == 0 {
		pc.imgSize = fyne.NewSize(400, 300)
	} else {
		width := float32(float64(pc.layer.Width) * pc.zoom)
		height := float32(float64(pc.layer.Height) * pc.zoom)
		pc.imgSize = fyne.NewSize(width, height)
	}

	pc.raster.SetMinSize(pc.imgSize)
	pc.raster.Resize(pc.imgSize)
	if pc.content != nil {
		pc.content.Resize(pc.imgSize)
		pc.content.Refresh()
	}
	pc.raster.Refresh()
	if pc.scroll != nil {
		pc.scroll.Refresh()
	}
}

// draw is the raster drawing function.
func (pc *PhotoCanvas) draw(w, h int) image.Image {
	// Auto-fit when the viewport size changes; a layout-only recompute
	// that never touches recorded point coordinates.
	currentSize := fyne.NewSize(float32(w), float32(h))
	if pc.fitToWindow && currentSize != pc.lastScrollSize && w > 0 && h > 0 {
		pc.lastScrollSize = currentSize
		go func() {
			pc.FitToWindow()
		}()
	}

	output := image.NewRGBA(image.Rect(0, 0, w, h))

	// Fill with black background (set alpha channel)
	for i := 3; i < len(output.Pix); i += 4 {
		output.Pix[i] = 255
	}

	if pc.layer != nil && pc.layer.Image != nil && pc.layer.Visible {
		pc.compositePhoto(output, w, h)
	}

	if pc.overlay != nil {
		pc.drawOverlay(output, pc.overlay)
	}

	return output
}

// compositePhoto draws the photo onto the output scaled by the current
// zoom, using nearest-neighbor sampling and blending by the layer's
// opacity.
func (pc *PhotoCanvas) compositePhoto(output *image.RGBA, w, h int) {
	src := pc.layer.Image
	srcBounds := src.Bounds()

	opacity := pc.layer.Opacity
	if opacity > 1 {
		opacity = 1
	}
	if opacity <= 0 {
		return
	}

	for y := 0; y < h; y++ {
		srcY := int(float64(y)/pc.zoom) + srcBounds.Min.Y
		if srcY < srcBounds.Min.Y || srcY >= srcBounds.Max.Y {
			continue
		}
		for x := 0; x < w; x++ {
			srcX := int(float64(x)/pc.zoom) + srcBounds.Min.X
			if srcX < srcBounds.Min.X || srcX >= srcBounds.Max.X {
				continue
			}
			if opacity >= 1 {
				output.Set(x, y, src.At(srcX, srcY))
				continue
			}

			sr, sg, sb, _ := src.At(srcX, srcY).RGBA()
			dst := output.RGBAAt(x, y)
			blend := func(s uint32, d uint8) uint8 {
				return uint8(float64(s>>8)*opacity + float64(d)*(1-opacity))
			}
			output.SetRGBA(x, y, color.RGBA{
				R: blend(sr, dst.R),
				G: blend(sg, dst.G),
				B: blend(sb, dst.B),
				A: 255,
			})
		}
	}
}
