package vision

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func splitImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				img.Set(x, y, color.RGBA{R: 16, G: 16, B: 16, A: 255})
			} else {
				img.Set(x, y, color.RGBA{R: 240, G: 240, B: 240, A: 255})
			}
		}
	}
	return img
}

// isBinary reports whether every pixel is pure black or pure white.
func isBinary(img image.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g, _ := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			if g.Y != 0 && g.Y != 255 {
				return false
			}
		}
	}
	return true
}

func TestEnhance_Disabled(t *testing.T) {
	src := splitImage(64, 32)
	out := Enhance(src, Options{Enabled: false})
	assert.Same(t, src, out, "disabled pipeline must hand the image back untouched")
}

func TestEnhance_ResizeBounds(t *testing.T) {
	tests := []struct {
		name      string
		srcWidth  int
		maxWidth  int
		wantWidth int
	}{
		{name: "oversized photo is capped", srcWidth: 2000, maxWidth: 0, wantWidth: DefaultMaxWidth},
		{name: "tiny photo is upscaled", srcWidth: 100, maxWidth: 0, wantWidth: 600},
		{name: "working range is untouched", srcWidth: 800, maxWidth: 0, wantWidth: 800},
		{name: "explicit cap wins", srcWidth: 1200, maxWidth: 900, wantWidth: 900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := splitImage(tt.srcWidth, tt.srcWidth/2)
			out := Enhance(src, Options{Enabled: true, MaxWidth: tt.maxWidth, Binarize: BinarizeOff})
			assert.Equal(t, tt.wantWidth, out.Bounds().Dx())
		})
	}
}

func TestEnhance_PreservesAspectRatio(t *testing.T) {
	src := splitImage(2000, 500) // 4:1
	out := Enhance(src, Options{Enabled: true, Binarize: BinarizeOff})
	require.Equal(t, DefaultMaxWidth, out.Bounds().Dx())
	assert.Equal(t, DefaultMaxWidth/4, out.Bounds().Dy())
}

func TestEnhance_Binarize(t *testing.T) {
	t.Run("forced on yields a two-level image", func(t *testing.T) {
		out := Enhance(splitImage(640, 64), Options{Enabled: true, Binarize: BinarizeOn})
		assert.True(t, isBinary(out))
	})

	t.Run("auto thresholds high-contrast print", func(t *testing.T) {
		out := Enhance(splitImage(640, 64), Options{Enabled: true, Binarize: BinarizeAuto})
		assert.True(t, isBinary(out))
	})

	t.Run("auto leaves flat images alone", func(t *testing.T) {
		out := Enhance(solidImage(640, 64, color.RGBA{R: 128, G: 128, B: 128, A: 255}),
			Options{Enabled: true, Binarize: BinarizeAuto})
		assert.False(t, isBinary(out), "a flat gray image should not be thresholded")
	})

	t.Run("forced off never thresholds", func(t *testing.T) {
		out := Enhance(splitImage(640, 64), Options{Enabled: true, Binarize: BinarizeOff})
		assert.False(t, isBinary(out), "sharpening leaves intermediate levels at the edge")
	})
}

func TestEnhance_DoesNotMutateInput(t *testing.T) {
	src := splitImage(640, 64)
	before := src.RGBAAt(1, 1)
	Enhance(src, Options{Enabled: true, Binarize: BinarizeOn})
	assert.Equal(t, before, src.RGBAAt(1, 1))
}

func TestOtsuLevel_Bimodal(t *testing.T) {
	level := otsuLevel(splitImage(64, 64))
	assert.Greater(t, level, uint8(16))
	assert.Less(t, level, uint8(240))
}

func TestLuminanceSpread(t *testing.T) {
	assert.InDelta(t, 0, luminanceSpread(solidImage(64, 64, color.White)), 0.01)
	assert.Greater(t, luminanceSpread(splitImage(64, 64)), binarizeSpread)
}

func TestParseBinarizeMode(t *testing.T) {
	tests := []struct {
		input string
		want  BinarizeMode
		ok    bool
	}{
		{"", BinarizeAuto, true},
		{"auto", BinarizeAuto, true},
		{"on", BinarizeOn, true},
		{"always", BinarizeOn, true},
		{"off", BinarizeOff, true},
		{"never", BinarizeOff, true},
		{"sometimes", BinarizeAuto, false},
	}

	for _, tt := range tests {
		mode, ok := ParseBinarizeMode(tt.input)
		assert.Equal(t, tt.want, mode, "input %q", tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
	}
}

func TestBinarizeMode_String(t *testing.T) {
	assert.Equal(t, "auto", BinarizeAuto.String())
	assert.Equal(t, "on", BinarizeOn.String())
	assert.Equal(t, "off", BinarizeOff.String())
}
