package tiles

import (
	"errors"
	"fmt"
)

// ErrInvalidGeometry is returned when a page or tile dimension is not a
// positive pixel count.
var ErrInvalidGeometry = errors.New("invalid page geometry")

// Grid describes the tile layout covering a page: Columns*TileWidth and
// Rows*TileHeight always reach at least the page edges.
type Grid struct {
	Columns    int
	Rows       int
	TileWidth  int
	TileHeight int
}

// Region is the fetch rectangle for one tile. Regions on the last column or
// row may extend past the page edge; the image service clips them.
type Region struct {
	X int
	Y int
	W int
	H int
}

// ComputeGrid returns the column/row grid covering a page of the given pixel
// dimensions with tiles of the given size.
func ComputeGrid(pageWidth, pageHeight, tileWidth, tileHeight int) (Grid, error) {
	if pageWidth <= 0 || pageHeight <= 0 || tileWidth <= 0 || tileHeight <= 0 {
		return Grid{}, fmt.Errorf("%w: page %dx%d, tile %dx%d", ErrInvalidGeometry, pageWidth, pageHeight, tileWidth, tileHeight)
	}

	return Grid{
		Columns:    (pageWidth + tileWidth - 1) / tileWidth,
		Rows:       (pageHeight + tileHeight - 1) / tileHeight,
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
	}, nil
}

// TileRegion returns the fetch rectangle for the tile at grid cell (col, row).
func (g Grid) TileRegion(col, row int) Region {
	return Region{
		X: col * g.TileWidth,
		Y: row * g.TileHeight,
		W: g.TileWidth,
		H: g.TileHeight,
	}
}
