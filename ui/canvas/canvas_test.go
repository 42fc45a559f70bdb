package canvas

import (
	"image"
	"image/color"
	"testing"

	"photo-ruler/internal/photo"

	"fyne.io/fyne/v2"
)

var _ fyne.Widget = (*PhotoCanvas)(nil)

func solidLayer(w, h int, c color.RGBA, opacity float64) *photo.Layer {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return &photo.Layer{Image: img, Width: w, Height: h, Visible: true, Opacity: opacity}
}

func TestCreateRenderer(t *testing.T) {
	pc := NewPhotoCanvas()
	if r := pc.CreateRenderer(); r == nil {
		t.Fatal("CreateRenderer returned nil")
	}
}

func TestDrawWithoutPhotoIsBlack(t *testing.T) {
	pc := NewPhotoCanvas()

	out := pc.draw(8, 8).(*image.RGBA)
	px := out.RGBAAt(4, 4)
	if px.R != 0 || px.G != 0 || px.B != 0 || px.A != 255 {
		t.Errorf("background pixel = %+v, want opaque black", px)
	}
}

func TestDrawFullOpacityCopiesPixels(t *testing.T) {
	pc := NewPhotoCanvas()
	pc.layer = solidLayer(4, 4, color.RGBA{R: 200, G: 100, B: 50, A: 255}, 1.0)

	out := pc.draw(4, 4).(*image.RGBA)
	px := out.RGBAAt(2, 2)
	if px.R != 200 || px.G != 100 || px.B != 50 {
		t.Errorf("pixel = %+v, want (200, 100, 50)", px)
	}
}

func TestDrawAppliesLayerOpacity(t *testing.T) {
	pc := NewPhotoCanvas()
	pc.layer = solidLayer(4, 4, color.RGBA{R: 200, G: 100, B: 50, A: 255}, 0.5)

	// Half opacity over the black background halves each channel.
	out := pc.draw(4, 4).(*image.RGBA)
	px := out.RGBAAt(2, 2)
	if px.R != 100 || px.G != 50 || px.B != 25 {
		t.Errorf("pixel = %+v, want (100, 50, 25)", px)
	}
	if px.A != 255 {
		t.Errorf("alpha = %d, want 255", px.A)
	}
}

func TestDrawSkipsInvisibleLayer(t *testing.T) {
	pc := NewPhotoCanvas()
	pc.layer = solidLayer(4, 4, color.RGBA{R: 200, G: 100, B: 50, A: 255}, 1.0)
	pc.layer.Visible = false

	out := pc.draw(4, 4).(*image.RGBA)
	px := out.RGBAAt(2, 2)
	if px.R != 0 || px.G != 0 || px.B != 0 {
		t.Errorf("pixel = %+v, want black for hidden layer", px)
	}
}
