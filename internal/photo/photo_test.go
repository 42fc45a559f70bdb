package photo

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestPNG writes a small solid-color PNG and returns its path.
func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return path
}

func TestLoadPNG(t *testing.T) {
	path := writeTestPNG(t, 64, 48)

	layer, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if layer.Format != "png" {
		t.Errorf("format = %q, want png", layer.Format)
	}
	if layer.Width != 64 || layer.Height != 48 {
		t.Errorf("dimensions = %dx%d, want 64x48", layer.Width, layer.Height)
	}
	if !layer.Visible || layer.Opacity != 1.0 {
		t.Error("loaded layer should default to visible at full opacity")
	}
}

func TestLoadRejectsWrongContentType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("definitely not pixels"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrInvalidFile) {
		t.Errorf("expected ErrInvalidFile for text content, got %v", err)
	}
}

func TestLoadRejectsOversizedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	// Sparse file just over the limit; no need to write real pixels.
	if err := f.Truncate(MaxFileSize + 1); err != nil {
		f.Close()
		t.Skipf("cannot create sparse file: %v", err)
	}
	f.Close()

	_, err = Load(path)
	if !errors.Is(err, ErrInvalidFile) {
		t.Errorf("expected ErrInvalidFile for oversized file, got %v", err)
	}
}

func TestLoadReportsDecodeFailure(t *testing.T) {
	// A valid PNG signature followed by garbage sniffs as image/png but
	// fails to decode.
	data := append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, []byte("corrupted")...)
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrImageDecode) {
		t.Errorf("expected ErrImageDecode for corrupt contents, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.png"))
	if !errors.Is(err, ErrInvalidFile) {
		t.Errorf("expected ErrInvalidFile for missing file, got %v", err)
	}
}
