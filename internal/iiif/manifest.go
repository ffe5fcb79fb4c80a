package iiif

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// DefaultAPIBase is the nb.no IIIF catalog endpoint. The media type and
// catalog number are appended to it when requesting a manifest.
const DefaultAPIBase = "https://api.nb.no/catalog/v1/iiif/URN:NBN:no-nb"

const userAgent = "Mozilla/5.0"

// ErrManifestFetch marks manifest resolution failures. A run cannot proceed
// past one: without the manifest there is no page list to download.
var ErrManifestFetch = errors.New("manifest fetch failed")

// PageGeometry holds the resolved dimensions and tile service endpoint of a
// single page. Immutable once resolved.
type PageGeometry struct {
	ID      string
	Width   int
	Height  int
	TileURL string
}

// Publication is the resolved manifest: title plus the ordered page list.
type Publication struct {
	ID        string
	MediaType MediaType
	Title     string
	Pages     []PageGeometry
}

// UsablePages returns the number of pages intended for output. Book manifests
// list trailing binding scans that are excluded here.
func (p *Publication) UsablePages() int {
	n := len(p.Pages) - p.MediaType.trailingPages()
	if n < 0 {
		return 0
	}
	return n
}

// Resolver fetches and parses IIIF manifests from the catalog API.
type Resolver struct {
	APIBase    string
	HTTPClient *http.Client
}

// NewResolver creates a resolver against the public nb.no API.
func NewResolver() *Resolver {
	return &Resolver{
		APIBase: DefaultAPIBase,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// manifest mirrors the subset of the IIIF presentation manifest we consume.
type manifest struct {
	Label     json.RawMessage `json:"label"`
	Sequences []struct {
		Canvases []canvas `json:"canvases"`
	} `json:"sequences"`
}

type canvas struct {
	ID     string `json:"@id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Images []struct {
		Resource struct {
			Service struct {
				ID string `json:"@id"`
			} `json:"service"`
		} `json:"resource"`
	} `json:"images"`
}

// Resolve fetches the manifest for a publication and returns its title and
// per-page geometry in manifest order.
func (r *Resolver) Resolve(mediaType MediaType, id string) (*Publication, error) {
	url := fmt.Sprintf("%s_%s_%s/manifest", r.APIBase, mediaType, id)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestFetch, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: manifest request returned status %d", ErrManifestFetch, resp.StatusCode)
	}

	var m manifest
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: malformed manifest JSON: %v", ErrManifestFetch, err)
	}

	if len(m.Sequences) == 0 {
		return nil, fmt.Errorf("%w: manifest has no sequences", ErrManifestFetch)
	}

	pub := &Publication{
		ID:        id,
		MediaType: mediaType,
		Title:     id,
	}
	if title := parseLabel(m.Label); title != "" {
		pub.Title = title
	}

	for _, c := range m.Sequences[0].Canvases {
		if len(c.Images) == 0 {
			slog.Warn("Canvas has no image resource, skipping", "canvas", c.ID)
			continue
		}
		pub.Pages = append(pub.Pages, PageGeometry{
			ID:      mediaType.PageID(c.ID),
			Width:   c.Width,
			Height:  c.Height,
			TileURL: c.Images[0].Resource.Service.ID,
		})
	}

	slog.Info("Resolved manifest", "id", id, "title", pub.Title, "pages", len(pub.Pages))
	return pub, nil
}

// parseLabel handles the three label shapes the API serves: a plain string, a
// list of strings, or a language map of string lists.
func parseLabel(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0]
	}

	var byLang map[string][]string
	if err := json.Unmarshal(raw, &byLang); err == nil {
		for _, values := range byLang {
			if len(values) > 0 {
				return values[0]
			}
		}
	}

	return ""
}
