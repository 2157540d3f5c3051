package vision

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// BinarizeMode selects how the Otsu threshold step is applied.
type BinarizeMode int

const (
	// BinarizeAuto thresholds only when the luminance spread suggests
	// clean high-contrast print.
	BinarizeAuto BinarizeMode = iota
	// BinarizeOn always thresholds.
	BinarizeOn
	// BinarizeOff never thresholds.
	BinarizeOff
)

// ParseBinarizeMode resolves a config value to a BinarizeMode.
func ParseBinarizeMode(s string) (BinarizeMode, bool) {
	switch s {
	case "", "auto":
		return BinarizeAuto, true
	case "on", "always", "true":
		return BinarizeOn, true
	case "off", "never", "false":
		return BinarizeOff, true
	default:
		return BinarizeAuto, false
	}
}

// String returns the config spelling of the mode.
func (m BinarizeMode) String() string {
	switch m {
	case BinarizeOn:
		return "on"
	case BinarizeOff:
		return "off"
	default:
		return "auto"
	}
}

const (
	// DefaultMaxWidth bounds the working image width. Tesseract gains
	// little beyond this size while recognition time keeps growing.
	DefaultMaxWidth = 1600

	// minWidth is the floor below which small photos are upscaled so
	// glyphs have enough pixels to recognize.
	minWidth = 600

	// lowContrastSpread marks washed-out photos that need a contrast
	// stretch before sharpening.
	lowContrastSpread = 0.12

	// binarizeSpread is the luminance spread above which auto mode
	// trusts Otsu thresholding not to eat the glyphs.
	binarizeSpread = 0.25
)

// Options control preprocessing ahead of OCR.
type Options struct {
	// Enabled toggles the whole pipeline; when false, images reach the
	// engine untouched apart from orientation.
	Enabled bool
	// MaxWidth caps the working width; zero means DefaultMaxWidth.
	MaxWidth int
	// Binarize selects the thresholding behavior.
	Binarize BinarizeMode
}

// DefaultOptions returns the pipeline configuration used when nothing is
// overridden.
func DefaultOptions() Options {
	return Options{Enabled: true, MaxWidth: DefaultMaxWidth}
}

// Enhance runs the OCR preprocessing pipeline: grayscale, contrast
// stretch for washed-out photos, mild sharpen, resize into the working
// range, and optional Otsu binarization. The input image is never
// mutated; with the pipeline disabled it is returned as-is.
func Enhance(img image.Image, opts Options) image.Image {
	if !opts.Enabled {
		return img
	}

	maxWidth := opts.MaxWidth
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}

	var out image.Image = imaging.Grayscale(img)

	spread := luminanceSpread(out)
	if spread < lowContrastSpread {
		out = imaging.AdjustContrast(out, 25)
	}
	out = imaging.Sharpen(out, 0.6)

	switch width := out.Bounds().Dx(); {
	case width > maxWidth:
		out = imaging.Resize(out, maxWidth, 0, imaging.Lanczos)
	case width > 0 && width < minWidth:
		out = imaging.Resize(out, minWidth, 0, imaging.Lanczos)
	}

	if shouldBinarize(opts.Binarize, spread) {
		smoothed := blur.Gaussian(out, 1.0)
		return segment.Threshold(smoothed, otsuLevel(smoothed))
	}
	return out
}

func shouldBinarize(mode BinarizeMode, spread float64) bool {
	switch mode {
	case BinarizeOn:
		return true
	case BinarizeOff:
		return false
	default:
		return spread >= binarizeSpread
	}
}

// luminanceSpread estimates contrast as the standard deviation of CIE
// lightness over a coarse sample grid, in [0,1].
func luminanceSpread(img image.Image) float64 {
	const grid = 64

	b := img.Bounds()
	if b.Empty() {
		return 0
	}
	stepX := b.Dx()/grid + 1
	stepY := b.Dy()/grid + 1

	var values []float64
	for y := b.Min.Y; y < b.Max.Y; y += stepY {
		for x := b.Min.X; x < b.Max.X; x += stepX {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			l, _, _ := c.Lab()
			values = append(values, l)
		}
	}
	if len(values) == 0 {
		return 0
	}

	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

// otsuLevel computes the Otsu threshold over the grayscale histogram:
// the level that maximizes the between-class variance of the two pixel
// populations it induces. Well-separated modes leave a plateau of
// equally good levels between them; the midpoint keeps the threshold
// centered instead of hugging the dark mode.
func otsuLevel(img image.Image) uint8 {
	var hist [256]int
	total := 0

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g, _ := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			hist[g.Y]++
			total++
		}
	}
	if total == 0 {
		return 128
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var sumB, wB, best float64
	lo, hi := -1, -1
	for i := 0; i < 256; i++ {
		wB += float64(hist[i])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(i) * float64(hist[i])
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		switch {
		case between > best:
			best = between
			lo, hi = i, i
		case between == best && lo >= 0:
			hi = i
		}
	}
	if lo < 0 {
		return 128
	}
	return uint8((lo + hi) / 2)
}
