// Package pdfgen assembles page images into paginated PDF documents.
package pdfgen

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG format decoder
	"os"

	"github.com/jung-kurt/gofpdf"
)

// Builder assembles an ordered list of page JPEGs into a single PDF. Each
// page of the document is sized to its image at the configured resolution.
type Builder struct {
	DPI float64
}

// NewBuilder creates a builder emitting pages at 100 dpi, which keeps the
// documents printable without re-encoding the scans.
func NewBuilder() *Builder {
	return &Builder{DPI: 100}
}

// Build writes a PDF embedding each image as one full-bleed page, in input
// order. Fails if the list is empty or any image cannot be read.
func (b *Builder) Build(outPath string, imagePaths []string) error {
	if len(imagePaths) == 0 {
		return fmt.Errorf("no page images to assemble into %s", outPath)
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	for _, path := range imagePaths {
		width, height, err := imageSize(path)
		if err != nil {
			return fmt.Errorf("failed to size page image %s: %w", path, err)
		}

		// Pixel dimensions to PDF points at the builder's resolution.
		widthPt := float64(width) * 72.0 / b.DPI
		heightPt := float64(height) * 72.0 / b.DPI

		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: widthPt, Ht: heightPt})
		pdf.ImageOptions(path, 0, 0, widthPt, heightPt, false, gofpdf.ImageOptions{ImageType: "JPG"}, 0, "")
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	return nil
}

// imageSize reads only the image header, not the full raster.
func imageSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
