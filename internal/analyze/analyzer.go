// Package analyze classifies page images by sampled color statistics. The
// classification decides whether a page is a true color plate (left untouched
// downstream) or a scanned text page that benefits from enhancement.
package analyze

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Defaults tuned for nb.no book scans.
const (
	// MaxSamples bounds how many pixels are visited per image.
	MaxSamples = 5000

	// DefaultHueTolerance is the channel divergence a sample must exceed to
	// count as colorful.
	DefaultHueTolerance = 30

	// DefaultColorThreshold is the colorful sample share at which a page is
	// classified as colorful.
	DefaultColorThreshold = 0.4

	// DefaultTargetWhite is the luma the brightest sample is lifted to.
	DefaultTargetWhite = 245

	// minChannelSpread is the max-min channel distance a sample must also
	// exceed; it filters out near-gray pixels with mild channel noise.
	minChannelSpread = 50

	// maxBrightnessFactor caps the brightness lift so near-black pages are
	// not blown out.
	maxBrightnessFactor = 2.0
)

// Classification is the sampled color profile of one page image. It is
// consumed immediately by the enhancement step and the run report; it is not
// persisted.
type Classification struct {
	Colorful       bool    `yaml:"colorful"`
	ColorShare     float64 `yaml:"colorshare"`
	MeanSaturation float64 `yaml:"meansaturation"`
	Samples        int     `yaml:"samples"`
}

// Analyzer samples pixels with a fixed stride and applies the configured
// thresholds. The zero value is not usable; call New or fill in every field.
type Analyzer struct {
	MaxSamples     int
	HueTolerance   int
	ColorThreshold float64
}

// New creates an analyzer with the default thresholds.
func New() *Analyzer {
	return &Analyzer{
		MaxSamples:     MaxSamples,
		HueTolerance:   DefaultHueTolerance,
		ColorThreshold: DefaultColorThreshold,
	}
}

// Classify samples the image and reports whether it is colorful: the share of
// sampled pixels whose channels diverge beyond the tolerance meets the
// threshold. MeanSaturation is the average HSV saturation of the samples,
// carried along for logging and the run report.
func (a *Analyzer) Classify(img image.Image) Classification {
	bounds := img.Bounds()
	width := bounds.Dx()
	total := width * bounds.Dy()
	if total == 0 {
		return Classification{}
	}

	stride := total / a.MaxSamples
	if stride < 1 {
		stride = 1
	}

	var colorSamples, samples int
	var saturationSum float64

	for i := 0; i < total; i += stride {
		x := bounds.Min.X + i%width
		y := bounds.Min.Y + i/width
		r, g, b := rgb8(img, x, y)
		samples++

		if maxChannelDiff(r, g, b) > a.HueTolerance && channelSpread(r, g, b) > minChannelSpread {
			colorSamples++
		}

		c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
		_, s, _ := c.Hsv()
		saturationSum += s
	}

	share := float64(colorSamples) / float64(samples)
	return Classification{
		Colorful:       share >= a.ColorThreshold,
		ColorShare:     share,
		MeanSaturation: saturationSum / float64(samples),
		Samples:        samples,
	}
}

// BrightnessFactor estimates the multiplier that lifts the brightest sampled
// pixel to targetWhite. Returns 1.0 for an all-black image and never more
// than 2.0.
func (a *Analyzer) BrightnessFactor(img image.Image, targetWhite float64) float64 {
	bounds := img.Bounds()
	width := bounds.Dx()
	total := width * bounds.Dy()
	if total == 0 {
		return 1.0
	}

	stride := total / a.MaxSamples
	if stride < 1 {
		stride = 1
	}

	brightest := 0.0
	for i := 0; i < total; i += stride {
		x := bounds.Min.X + i%width
		y := bounds.Min.Y + i/width
		r, g, b := rgb8(img, x, y)

		if luma := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b); luma > brightest {
			brightest = luma
		}
	}

	if brightest == 0 {
		return 1.0
	}

	factor := targetWhite / brightest
	if factor > maxBrightnessFactor {
		factor = maxBrightnessFactor
	}
	return factor
}

// rgb8 reads the pixel at (x, y) as 8-bit channels.
func rgb8(img image.Image, x, y int) (int, int, int) {
	r, g, b, _ := img.At(x, y).RGBA()
	// Convert from 16-bit to 8-bit
	return int(r >> 8), int(g >> 8), int(b >> 8)
}

func maxChannelDiff(r, g, b int) int {
	d := abs(r - g)
	if v := abs(r - b); v > d {
		d = v
	}
	if v := abs(g - b); v > d {
		d = v
	}
	return d
}

func channelSpread(r, g, b int) int {
	max, min := r, r
	if g > max {
		max = g
	}
	if b > max {
		max = b
	}
	if g < min {
		min = g
	}
	if b < min {
		min = b
	}
	return max - min
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
