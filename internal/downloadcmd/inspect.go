package downloadcmd

import (
	"fmt"
	"os"

	"github.com/SurgeonTalus/nbno/internal/iiif"
	"github.com/SurgeonTalus/nbno/internal/tiles"
)

// Inspect resolves the manifest for the given identifier and prints a
// summary without downloading anything.
func Inspect(rawID string) error {
	mediaType, id, err := iiif.ParseID(rawID)
	if err != nil {
		return err
	}

	resolver := iiif.NewResolver()
	if base := os.Getenv("NBNO_API_BASE"); base != "" {
		resolver.APIBase = base
	}

	pub, err := resolver.Resolve(mediaType, id)
	if err != nil {
		return err
	}

	fmt.Printf("Title:        %s\n", pub.Title)
	fmt.Printf("Media type:   %s\n", pub.MediaType)
	fmt.Printf("Pages:        %d (%d usable)\n", len(pub.Pages), pub.UsablePages())
	fmt.Printf("Tile size:    %dx%d\n", mediaType.TileSize(), mediaType.TileSize())
	fmt.Printf("Directory:    %s\n", SanitizeTitle(pub.Title))

	if len(pub.Pages) > 0 {
		first := pub.Pages[0]
		fmt.Printf("First page:   %s (%dx%d px)\n", first.ID, first.Width, first.Height)

		tileSize := mediaType.TileSize()
		if grid, err := tiles.ComputeGrid(first.Width, first.Height, tileSize, tileSize); err == nil {
			fmt.Printf("Tile grid:    %d columns x %d rows\n", grid.Columns, grid.Rows)
		}
	}

	return nil
}
