// Package enhance applies deterministic contrast/brightness/saturation
// transforms to composed page images. The amount of brightening is adapted
// per page from sampled color statistics.
package enhance

import (
	"image"

	"github.com/SurgeonTalus/nbno/internal/analyze"
	"github.com/anthonynsimon/bild/adjust"
	"github.com/disintegration/imaging"
)

// Mode selects which of the two pipelines a run applies to non-colorful pages.
type Mode string

const (
	// ModeColor keeps the page in RGB and tones down saturation.
	ModeColor Mode = "color"

	// ModeGrayscale converts the page to luminance before adjusting.
	ModeGrayscale Mode = "gray"
)

// Profile collects the tunables shared by both enhancement pipelines. Factors
// are multiplicative: 1.0 leaves the corresponding property unchanged.
type Profile struct {
	ContrastFactor     float64 `yaml:"contrastfactor"`
	BaselineBrightness float64 `yaml:"baselinebrightness"`
	SaturationFactor   float64 `yaml:"saturationfactor"`
	TargetWhite        float64 `yaml:"targetwhite"`
	ColorThreshold     float64 `yaml:"colorthreshold"`
	HueTolerance       int     `yaml:"huetolerance"`
}

// DefaultProfile matches the constants tuned for nb.no book scans.
func DefaultProfile() Profile {
	return Profile{
		ContrastFactor:     1.2,
		BaselineBrightness: 1.2,
		SaturationFactor:   0.7,
		TargetWhite:        analyze.DefaultTargetWhite,
		ColorThreshold:     analyze.DefaultColorThreshold,
		HueTolerance:       analyze.DefaultHueTolerance,
	}
}

// Enhancer applies the profile's transforms. It never fails on a valid
// decoded image; every step is a clamped numeric transform.
type Enhancer struct {
	Profile  Profile
	analyzer *analyze.Analyzer
}

// New creates an enhancer whose classification thresholds come from the
// profile.
func New(profile Profile) *Enhancer {
	return &Enhancer{
		Profile: profile,
		analyzer: &analyze.Analyzer{
			MaxSamples:     analyze.MaxSamples,
			HueTolerance:   profile.HueTolerance,
			ColorThreshold: profile.ColorThreshold,
		},
	}
}

// Classify samples the image with the profile's thresholds.
func (e *Enhancer) Classify(img image.Image) analyze.Classification {
	return e.analyzer.Classify(img)
}

// Enhance runs the mode-selected pipeline. Callers are expected to skip
// enhancement entirely for pages Classify reports as colorful.
func (e *Enhancer) Enhance(img image.Image, mode Mode) image.Image {
	if mode == ModeGrayscale {
		return e.EnhanceGrayscale(img)
	}
	return e.EnhanceColor(img)
}

// EnhanceGrayscale converts the page to luminance, stretches contrast, then
// lifts brightness toward white. The result stays a three-channel image with
// equal channels so downstream handling is uniform.
func (e *Enhancer) EnhanceGrayscale(img image.Image) image.Image {
	gray := imaging.Grayscale(img)
	out := adjust.Contrast(gray, e.Profile.ContrastFactor-1)
	return adjust.Brightness(out, e.brightnessFactor(out)-1)
}

// EnhanceColor applies the same contrast/brightness pipeline on the RGB
// channels, then tones down saturation to counter oversaturated scans.
func (e *Enhancer) EnhanceColor(img image.Image) image.Image {
	out := adjust.Contrast(img, e.Profile.ContrastFactor-1)
	out = adjust.Brightness(out, e.brightnessFactor(out)-1)
	return adjust.Saturation(out, e.Profile.SaturationFactor-1)
}

// brightnessFactor combines the sampled estimate with the baseline lift,
// capped at 2.0 like the estimate itself.
func (e *Enhancer) brightnessFactor(img image.Image) float64 {
	factor := e.analyzer.BrightnessFactor(img, e.Profile.TargetWhite) * e.Profile.BaselineBrightness
	if factor > 2.0 {
		factor = 2.0
	}
	return factor
}
