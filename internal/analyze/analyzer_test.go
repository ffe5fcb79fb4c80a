package analyze

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func uniformImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		build        func() *image.RGBA
		wantColorful bool
	}{
		{
			name: "uniform gray is never colorful",
			build: func() *image.RGBA {
				return uniformImage(100, 100, color.RGBA{128, 128, 128, 255})
			},
			wantColorful: false,
		},
		{
			name: "white page is not colorful",
			build: func() *image.RGBA {
				return uniformImage(100, 100, color.RGBA{250, 250, 250, 255})
			},
			wantColorful: false,
		},
		{
			name: "pure red page is colorful",
			build: func() *image.RGBA {
				return uniformImage(100, 100, color.RGBA{255, 0, 0, 255})
			},
			wantColorful: true,
		},
		{
			name: "half red half gray is colorful at 0.4",
			build: func() *image.RGBA {
				img := uniformImage(100, 100, color.RGBA{128, 128, 128, 255})
				for y := 0; y < 50; y++ {
					for x := 0; x < 100; x++ {
						img.SetRGBA(x, y, color.RGBA{255, 0, 0, 255})
					}
				}
				return img
			},
			wantColorful: true,
		},
		{
			name: "mild channel noise stays gray",
			build: func() *image.RGBA {
				// Divergence above the hue tolerance but below the spread gate.
				return uniformImage(100, 100, color.RGBA{160, 120, 130, 255})
			},
			wantColorful: false,
		},
	}

	analyzer := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzer.Classify(tt.build())
			if got.Colorful != tt.wantColorful {
				t.Errorf("Colorful: got %v (share %.3f), want %v", got.Colorful, got.ColorShare, tt.wantColorful)
			}
			if got.Samples == 0 {
				t.Error("expected at least one sample")
			}
		})
	}
}

func TestClassifyShares(t *testing.T) {
	analyzer := New()

	gray := analyzer.Classify(uniformImage(80, 80, color.RGBA{90, 90, 90, 255}))
	if gray.ColorShare != 0 {
		t.Errorf("gray ColorShare: got %.3f, want 0", gray.ColorShare)
	}
	if gray.MeanSaturation != 0 {
		t.Errorf("gray MeanSaturation: got %.3f, want 0", gray.MeanSaturation)
	}

	red := analyzer.Classify(uniformImage(80, 80, color.RGBA{255, 0, 0, 255}))
	if red.ColorShare != 1 {
		t.Errorf("red ColorShare: got %.3f, want 1", red.ColorShare)
	}
	if red.MeanSaturation < 0.99 {
		t.Errorf("red MeanSaturation: got %.3f, want ~1", red.MeanSaturation)
	}
}

func TestBrightnessFactor(t *testing.T) {
	tests := []struct {
		name string
		fill color.RGBA
		want float64
	}{
		{
			name: "black page falls back to 1.0",
			fill: color.RGBA{0, 0, 0, 255},
			want: 1.0,
		},
		{
			name: "dark page hits the 2.0 cap",
			fill: color.RGBA{100, 100, 100, 255}, // luma 100, 245/100 > 2
			want: 2.0,
		},
		{
			name: "mid gray is lifted proportionally",
			fill: color.RGBA{200, 200, 200, 255}, // 245/200
			want: 1.225,
		},
		{
			name: "already white barely changes",
			fill: color.RGBA{245, 245, 245, 255},
			want: 1.0,
		},
	}

	analyzer := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := uniformImage(100, 100, tt.fill)
			got := analyzer.BrightnessFactor(img, DefaultTargetWhite)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("BrightnessFactor: got %.4f, want %.4f", got, tt.want)
			}
		})
	}
}

func TestBrightnessFactorBounds(t *testing.T) {
	analyzer := New()

	// For any max luma in (0, 245] the factor stays within [1, 2].
	for _, v := range []uint8{10, 50, 122, 200, 245} {
		img := uniformImage(50, 50, color.RGBA{v, v, v, 255})
		factor := analyzer.BrightnessFactor(img, DefaultTargetWhite)
		if factor < 1.0 || factor > 2.0 {
			t.Errorf("luma %d: factor %.3f outside [1, 2]", v, factor)
		}
	}
}
