package tiles

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"net/http"
	"time"
)

// TileFetchError reports a failed fetch or decode of a single tile. It is a
// per-page condition: the compositor persists what it has and the workflow
// moves on to the next page.
type TileFetchError struct {
	URL string
	Err error
}

func (e *TileFetchError) Error() string {
	return fmt.Sprintf("tile fetch %s: %v", e.URL, e.Err)
}

func (e *TileFetchError) Unwrap() error {
	return e.Err
}

// TileFetcher is the capability the compositor needs: fetch one tile region
// from an image service and decode it into a raster.
type TileFetcher interface {
	FetchTile(serviceBase string, region Region) (image.Image, error)
}

// Fetcher retrieves page tiles from a IIIF image service over HTTP.
type Fetcher struct {
	HTTPClient *http.Client
	UserAgent  string
}

// NewFetcher creates a tile fetcher with a bounded per-request timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		UserAgent: "Mozilla/5.0",
	}
}

// TileURL builds the IIIF image request for one region at full resolution.
func TileURL(serviceBase string, r Region) string {
	return fmt.Sprintf("%s/%d,%d,%d,%d/full/0/native.jpg", serviceBase, r.X, r.Y, r.W, r.H)
}

// FetchTile downloads and decodes a single tile image.
func (f *Fetcher) FetchTile(serviceBase string, region Region) (image.Image, error) {
	url := TileURL(serviceBase, region)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, &TileFetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.UserAgent)

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, &TileFetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TileFetchError{URL: url, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, &TileFetchError{URL: url, Err: fmt.Errorf("decode: %w", err)}
	}

	return img, nil
}
