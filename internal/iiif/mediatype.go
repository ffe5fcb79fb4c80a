package iiif

import (
	"fmt"
	"strings"
)

// MediaType identifies the kind of digitized publication. The values match
// the prefixes nb.no uses in its URN identifiers.
type MediaType string

const (
	MediaBook      MediaType = "digibok"
	MediaJournal   MediaType = "digitidsskrift"
	MediaNewspaper MediaType = "digavis"
	MediaMap       MediaType = "digikart"
)

// TileSize returns the tile edge length the image service uses for this media
// type. Books and journals are served in 1024px tiles, everything else in
// 4096px tiles.
func (m MediaType) TileSize() int {
	switch m {
	case MediaBook, MediaJournal:
		return 1024
	default:
		return 4096
	}
}

// trailingPages is the number of canvases at the end of the manifest that are
// not part of the readable work. Book manifests carry five extra scans
// (binding and color checker) after the last page.
func (m MediaType) trailingPages() int {
	if m == MediaBook {
		return 5
	}
	return 0
}

// PageID derives the short page identifier from a canvas @id. Newspaper
// canvas IDs carry the page token second to last, map IDs spread it over the
// last two tokens, everything else keeps it last.
func (m MediaType) PageID(canvasID string) string {
	parts := strings.Split(canvasID, "_")
	switch m {
	case MediaNewspaper:
		if len(parts) >= 2 {
			return parts[len(parts)-2]
		}
	case MediaMap:
		if len(parts) >= 2 {
			return parts[len(parts)-2] + "_" + parts[len(parts)-1]
		}
	}
	return parts[len(parts)-1]
}

// ParseID splits a combined identifier like "digibok_2008051404065" (or a full
// URN containing it) into its media type and catalog number.
func ParseID(raw string) (MediaType, string, error) {
	i := strings.Index(raw, "dig")
	if i < 0 {
		return "", "", fmt.Errorf("identifier %q does not contain a dig<type>_ marker", raw)
	}
	rest := raw[i:]
	j := strings.Index(rest, "_")
	if j < 1 || j == len(rest)-1 {
		return "", "", fmt.Errorf("identifier %q does not contain a dig<type>_ marker", raw)
	}
	return MediaType(rest[:j]), rest[j+1:], nil
}
