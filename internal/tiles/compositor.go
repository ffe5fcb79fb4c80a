package tiles

import (
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"os"

	"github.com/SurgeonTalus/nbno/internal/iiif"
	"github.com/anthonynsimon/bild/imgio"
)

const jpegQuality = 90

// PartialSuffix is appended to the output path when a page could not be
// fully composed. Partial files never count as done for resume purposes, but
// keep the tiles that were already fetched.
const PartialSuffix = ".partial"

// ComposePage downloads every tile of a page in row-major order, pastes them
// onto a full-size canvas and saves the result as a JPEG at outPath.
//
// If outPath already exists the page is skipped and the existing path is
// returned unchanged; the file on disk is the single source of truth for
// "already done". When a tile fetch fails, the partially assembled canvas is
// persisted to outPath+PartialSuffix before the error is surfaced, so a later
// run does not lose the tiles that did arrive. Completed pages are written via
// a rename, so outPath never holds a half-written file.
func ComposePage(geom iiif.PageGeometry, tileSize int, fetcher TileFetcher, outPath string) (string, error) {
	if _, err := os.Stat(outPath); err == nil {
		slog.Debug("Page already downloaded, skipping", "path", outPath)
		return outPath, nil
	}

	grid, err := ComputeGrid(geom.Width, geom.Height, tileSize, tileSize)
	if err != nil {
		return "", fmt.Errorf("page %s: %w", geom.ID, err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, geom.Width, geom.Height))

	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Columns; col++ {
			region := grid.TileRegion(col, row)

			tile, err := fetcher.FetchTile(geom.TileURL, region)
			if err != nil {
				partialPath := outPath + PartialSuffix
				if saveErr := imgio.Save(partialPath, canvas, imgio.JPEGEncoder(jpegQuality)); saveErr != nil {
					slog.Error("Failed to persist partial page", "path", partialPath, "error", saveErr)
				} else {
					slog.Warn("Persisted partial page", "path", partialPath, "row", row, "col", col)
				}
				return "", err
			}

			bounds := tile.Bounds()
			target := image.Rect(region.X, region.Y, region.X+bounds.Dx(), region.Y+bounds.Dy())
			draw.Draw(canvas, target, tile, bounds.Min, draw.Src)
		}
	}

	tmpPath := outPath + ".tmp"
	if err := imgio.Save(tmpPath, canvas, imgio.JPEGEncoder(jpegQuality)); err != nil {
		return "", fmt.Errorf("failed to save page %s: %w", geom.ID, err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return "", fmt.Errorf("failed to save page %s: %w", geom.ID, err)
	}

	// A fresh complete page supersedes any partial left by an earlier run.
	_ = os.Remove(outPath + PartialSuffix)

	return outPath, nil
}
