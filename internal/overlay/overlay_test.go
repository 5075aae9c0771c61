package overlay

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func createSolidImage(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func createImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test-image.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, createSolidImage(width, height, c)); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestScale(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		pct          float64
		wantW, wantH int
	}{
		{"100 percent unchanged", 40, 20, 100, 40, 20},
		{"50 percent halves", 40, 20, 50, 20, 10},
		{"10 percent", 200, 100, 10, 20, 10},
		{"rounds down", 25, 25, 50, 12, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scale(createSolidImage(tt.w, tt.h, color.NRGBA{255, 0, 0, 255}), tt.pct)
			if got.Bounds().Dx() != tt.wantW || got.Bounds().Dy() != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d",
					got.Bounds().Dx(), got.Bounds().Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestScale_FullSizeReturnsSameImage(t *testing.T) {
	img := createSolidImage(40, 20, color.NRGBA{255, 0, 0, 255})
	if got := Scale(img, 100); got != image.Image(img) {
		t.Error("Scale(img, 100) should return the input unchanged")
	}
}

func TestCompose_OpacityZeroLeavesSourceUntouched(t *testing.T) {
	srcPath := createImageFile(t, 100, 100, color.NRGBA{200, 50, 50, 255})
	markPath := createImageFile(t, 20, 20, color.NRGBA{0, 0, 255, 255})

	got, err := Compose(srcPath, markPath, Params{
		Position:        BottomRight,
		Margin:          10,
		Opacity:         0,
		ScalePercentage: 100,
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	want := color.NRGBA{200, 50, 50, 255}
	for _, pt := range []image.Point{{0, 0}, {50, 50}, {85, 85}, {99, 99}} {
		if c := color.NRGBAModel.Convert(got.At(pt.X, pt.Y)); c != want {
			t.Errorf("pixel (%d,%d): got %v, want source color %v", pt.X, pt.Y, c, want)
		}
	}
}

func TestCompose_OpacityOneReplacesWatermarkRegion(t *testing.T) {
	srcPath := createImageFile(t, 100, 100, color.NRGBA{200, 50, 50, 255})
	markPath := createImageFile(t, 20, 20, color.NRGBA{0, 0, 255, 255})

	got, err := Compose(srcPath, markPath, Params{
		Position:        TopLeft,
		Margin:          10,
		Opacity:         1,
		ScalePercentage: 100,
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	// Watermark occupies (10,10)-(30,30); fully opaque pixels replace the
	// source entirely.
	markColor := color.NRGBA{0, 0, 255, 255}
	srcColor := color.NRGBA{200, 50, 50, 255}

	if c := color.NRGBAModel.Convert(got.At(15, 15)); c != markColor {
		t.Errorf("inside watermark: got %v, want %v", c, markColor)
	}
	if c := color.NRGBAModel.Convert(got.At(50, 50)); c != srcColor {
		t.Errorf("outside watermark: got %v, want %v", c, srcColor)
	}
	if c := color.NRGBAModel.Convert(got.At(5, 5)); c != srcColor {
		t.Errorf("inside margin: got %v, want %v", c, srcColor)
	}
}

func TestCompose_HalfOpacityBlends(t *testing.T) {
	srcPath := createImageFile(t, 100, 100, color.NRGBA{0, 0, 0, 255})
	markPath := createImageFile(t, 20, 20, color.NRGBA{255, 255, 255, 255})

	got, err := Compose(srcPath, markPath, Params{
		Position:        TopLeft,
		Margin:          0,
		Opacity:         0.5,
		ScalePercentage: 100,
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	c := color.NRGBAModel.Convert(got.At(10, 10)).(color.NRGBA)
	if c.R < 120 || c.R > 135 {
		t.Errorf("blended pixel: got %v, want roughly half gray", c)
	}
}

func TestCompose_DefaultsToBottomRightForUnknownPosition(t *testing.T) {
	srcPath := createImageFile(t, 100, 100, color.NRGBA{200, 50, 50, 255})
	markPath := createImageFile(t, 20, 20, color.NRGBA{0, 0, 255, 255})

	got, err := Compose(srcPath, markPath, Params{
		Position:        "somewhere",
		Margin:          0,
		Opacity:         1,
		ScalePercentage: 100,
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if c := color.NRGBAModel.Convert(got.At(90, 90)); c != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("bottom-right region: got %v, want watermark color", c)
	}
}

func TestCompose_ScaledWatermark(t *testing.T) {
	srcPath := createImageFile(t, 100, 100, color.NRGBA{200, 50, 50, 255})
	markPath := createImageFile(t, 40, 40, color.NRGBA{0, 0, 255, 255})

	// 50% scaling gives a 20x20 mark at (80,80)-(100,100).
	got, err := Compose(srcPath, markPath, Params{
		Position:        BottomRight,
		Margin:          0,
		Opacity:         1,
		ScalePercentage: 50,
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if c := color.NRGBAModel.Convert(got.At(90, 90)); c != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("scaled watermark region: got %v, want watermark color", c)
	}
	if c := color.NRGBAModel.Convert(got.At(70, 70)); c != (color.NRGBA{200, 50, 50, 255}) {
		t.Errorf("outside scaled watermark: got %v, want source color", c)
	}
}

func TestCompose_OversizedWatermarkClips(t *testing.T) {
	srcPath := createImageFile(t, 50, 50, color.NRGBA{200, 50, 50, 255})
	markPath := createImageFile(t, 80, 80, color.NRGBA{0, 0, 255, 255})

	// Negative placement is passed through; the compositor clips and the
	// output keeps the source dimensions.
	got, err := Compose(srcPath, markPath, Params{
		Position:        BottomRight,
		Margin:          10,
		Opacity:         1,
		ScalePercentage: 100,
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if got.Bounds().Dx() != 50 || got.Bounds().Dy() != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", got.Bounds().Dx(), got.Bounds().Dy())
	}
}

func TestCompose_MissingInput(t *testing.T) {
	markPath := createImageFile(t, 20, 20, color.NRGBA{0, 0, 255, 255})

	if _, err := Compose(filepath.Join(t.TempDir(), "nope.png"), markPath, Params{ScalePercentage: 100}); err == nil {
		t.Error("Compose should fail for a missing input file")
	}
}

func TestCompose_CorruptWatermark(t *testing.T) {
	srcPath := createImageFile(t, 100, 100, color.NRGBA{200, 50, 50, 255})
	bad := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := Compose(srcPath, bad, Params{ScalePercentage: 100}); err == nil {
		t.Error("Compose should fail for an undecodable watermark file")
	}
}
