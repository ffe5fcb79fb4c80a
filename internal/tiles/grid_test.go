package tiles

import (
	"errors"
	"testing"
)

func TestComputeGrid(t *testing.T) {
	tests := []struct {
		name        string
		pageW       int
		pageH       int
		tileW       int
		tileH       int
		wantColumns int
		wantRows    int
	}{
		{
			name:  "book page with 1024 tiles",
			pageW: 2000, pageH: 1500, tileW: 1024, tileH: 1024,
			wantColumns: 2, wantRows: 2,
		},
		{
			name:  "page smaller than one tile",
			pageW: 600, pageH: 900, tileW: 1024, tileH: 1024,
			wantColumns: 1, wantRows: 1,
		},
		{
			name:  "exact multiple",
			pageW: 2048, pageH: 1024, tileW: 1024, tileH: 1024,
			wantColumns: 2, wantRows: 1,
		},
		{
			name:  "one pixel over a tile boundary",
			pageW: 1025, pageH: 1024, tileW: 1024, tileH: 1024,
			wantColumns: 2, wantRows: 1,
		},
		{
			name:  "map page with 4096 tiles",
			pageW: 9000, pageH: 7000, tileW: 4096, tileH: 4096,
			wantColumns: 3, wantRows: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := ComputeGrid(tt.pageW, tt.pageH, tt.tileW, tt.tileH)
			if err != nil {
				t.Fatalf("ComputeGrid failed: %v", err)
			}

			if grid.Columns != tt.wantColumns || grid.Rows != tt.wantRows {
				t.Errorf("grid: got %dx%d, want %dx%d", grid.Columns, grid.Rows, tt.wantColumns, tt.wantRows)
			}

			// The grid must cover the whole page.
			if grid.Columns*tt.tileW < tt.pageW {
				t.Errorf("columns*tileWidth = %d does not cover page width %d", grid.Columns*tt.tileW, tt.pageW)
			}
			if grid.Rows*tt.tileH < tt.pageH {
				t.Errorf("rows*tileHeight = %d does not cover page height %d", grid.Rows*tt.tileH, tt.pageH)
			}
		})
	}
}

func TestComputeGridInvalidGeometry(t *testing.T) {
	tests := []struct {
		name  string
		pageW int
		pageH int
		tileW int
		tileH int
	}{
		{"zero page width", 0, 100, 1024, 1024},
		{"negative page height", 100, -1, 1024, 1024},
		{"zero tile width", 100, 100, 0, 1024},
		{"negative tile height", 100, 100, 1024, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeGrid(tt.pageW, tt.pageH, tt.tileW, tt.tileH)
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("expected ErrInvalidGeometry, got %v", err)
			}
		})
	}
}

func TestTileRegion(t *testing.T) {
	grid, err := ComputeGrid(2000, 1500, 1024, 1024)
	if err != nil {
		t.Fatalf("ComputeGrid failed: %v", err)
	}

	want := []struct {
		col, row   int
		x, y, w, h int
	}{
		{0, 0, 0, 0, 1024, 1024},
		{1, 0, 1024, 0, 1024, 1024},
		{0, 1, 0, 1024, 1024, 1024},
		{1, 1, 1024, 1024, 1024, 1024},
	}

	for _, w := range want {
		region := grid.TileRegion(w.col, w.row)
		if region.X != w.x || region.Y != w.y || region.W != w.w || region.H != w.h {
			t.Errorf("TileRegion(%d,%d): got (%d,%d,%d,%d), want (%d,%d,%d,%d)",
				w.col, w.row, region.X, region.Y, region.W, region.H, w.x, w.y, w.w, w.h)
		}
	}
}

func TestTileURL(t *testing.T) {
	region := Region{X: 1024, Y: 2048, W: 1024, H: 1024}
	got := TileURL("https://example.org/iiif/page1", region)
	want := "https://example.org/iiif/page1/1024,2048,1024,1024/full/0/native.jpg"
	if got != want {
		t.Errorf("TileURL: got %s, want %s", got, want)
	}
}
