// Package downloadcmd drives a full download run: manifest resolution, page
// composition with resume, per-page enhancement and PDF assembly.
package downloadcmd

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SurgeonTalus/nbno/internal/enhance"
	"github.com/SurgeonTalus/nbno/internal/iiif"
	"github.com/SurgeonTalus/nbno/internal/pdfgen"
	"github.com/SurgeonTalus/nbno/internal/tiles"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
)

const jpegQuality = 90

// Options are the download command's parameters after flag parsing.
type Options struct {
	RawID     string
	Start     int    // 1-based inclusive, 0/1 means first page
	Stop      int    // 1-based exclusive, 0 means all usable pages
	Mode      string // "gray", "color" or empty to prompt
	OutputDir string // output root, empty means NBNO_OUTPUT_DIR or ~/Downloads

	// Stdin is where the interactive mode prompt reads from; defaults to
	// os.Stdin.
	Stdin io.Reader
}

// Execute runs a complete download: resolve the manifest, compose every page
// in the requested range that is not already on disk, then assemble the
// original and enhanced PDFs. Per-page failures are logged and skipped; only
// manifest failures abort the run.
func Execute(opts Options) error {
	mediaType, id, err := iiif.ParseID(opts.RawID)
	if err != nil {
		return err
	}

	resolver := iiif.NewResolver()
	if base := os.Getenv("NBNO_API_BASE"); base != "" {
		resolver.APIBase = base
	}

	fetcher := tiles.NewFetcher()
	if raw := os.Getenv("NBNO_HTTP_TIMEOUT"); raw != "" {
		if timeout, err := time.ParseDuration(raw); err == nil {
			resolver.HTTPClient.Timeout = timeout
			fetcher.HTTPClient.Timeout = timeout
		} else {
			slog.Warn("Ignoring invalid NBNO_HTTP_TIMEOUT", "value", raw)
		}
	}

	pub, err := resolver.Resolve(mediaType, id)
	if err != nil {
		return err
	}

	mode, err := resolveMode(opts.Mode, opts.Stdin)
	if err != nil {
		return err
	}

	title := SanitizeTitle(pub.Title)
	if title == "" {
		title = id
	}

	baseDir := filepath.Join(outputRoot(opts.OutputDir), title)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	pageIDs := make([]string, len(pub.Pages))
	for i, page := range pub.Pages {
		pageIDs[i] = page.ID
	}

	done := SnapshotDone(baseDir, pageIDs)
	resume := ComputeResumePoint(pageIDs, done)

	start := opts.Start - 1
	if start < 0 {
		start = 0
	}
	if resume > start {
		slog.Info("Resuming after already-downloaded pages", "resume_index", resume)
		start = resume
	}

	stop := opts.Stop
	if stop <= 0 {
		stop = pub.UsablePages()
	}
	if stop > len(pub.Pages) {
		stop = len(pub.Pages)
	}

	report := &RunReport{
		Config: RunConfig{
			ID:        opts.RawID,
			MediaType: string(mediaType),
			Title:     pub.Title,
			Mode:      string(mode),
			Start:     start + 1,
			Stop:      stop,
			Timestamp: time.Now().Format("2006-01-02_15-04-05"),
		},
	}

	tileSize := mediaType.TileSize()
	downloaded := make(map[string]bool)

	for i := start; i < stop; i++ {
		page := pub.Pages[i]
		outPath := filepath.Join(baseDir, page.ID+".jpg")

		if _, err := tiles.ComposePage(page, tileSize, fetcher, outPath); err != nil {
			slog.Error("Page download failed", "page", page.ID, "error", err)
			report.Pages = append(report.Pages, PageResult{PageID: page.ID, Status: "failed", Error: err.Error()})
			report.Failed++
			continue
		}

		downloaded[page.ID] = true
		slog.Info("Saved page", "page", page.ID, "progress", fmt.Sprintf("%d/%d", i+1, stop))
	}

	// Every page present on disk goes into the PDFs, in manifest order, so
	// earlier partial runs are picked up too.
	var pagePaths []string
	var pageOrder []string
	for _, page := range pub.Pages {
		path := filepath.Join(baseDir, page.ID+".jpg")
		if _, err := os.Stat(path); err == nil {
			pagePaths = append(pagePaths, path)
			pageOrder = append(pageOrder, page.ID)
		}
	}

	if len(pagePaths) == 0 {
		return fmt.Errorf("no pages on disk for %s, nothing to assemble", opts.RawID)
	}

	builder := pdfgen.NewBuilder()

	originalPDF := filepath.Join(baseDir, title+"_original.pdf")
	if err := builder.Build(originalPDF, pagePaths); err != nil {
		return err
	}
	slog.Info("Wrote original PDF", "path", originalPDF)

	enhancedPaths, tmpFiles := enhancePages(pagePaths, pageOrder, mode, downloaded, report)

	enhancedPDF := filepath.Join(baseDir, title+"_enhanced.pdf")
	err = builder.Build(enhancedPDF, enhancedPaths)
	for _, tmp := range tmpFiles {
		_ = os.Remove(tmp)
	}
	if err != nil {
		return err
	}
	slog.Info("Wrote enhanced PDF", "path", enhancedPDF)

	reportPath := filepath.Join(baseDir, "run_report.yaml")
	if err := report.Save(reportPath); err != nil {
		slog.Warn("Failed to write run report", "error", err)
	}

	fmt.Printf("\nDownload complete!\n")
	fmt.Printf("  Pages downloaded: %d\n", report.Downloaded)
	fmt.Printf("  Pages skipped (already on disk): %d\n", report.Skipped)
	fmt.Printf("  Pages failed: %d\n", report.Failed)
	fmt.Printf("  Original PDF: %s\n", originalPDF)
	fmt.Printf("  Enhanced PDF: %s\n", enhancedPDF)
	if report.Failed > 0 {
		fmt.Printf("\nRe-run the same command to retry the failed pages.\n")
	}

	return nil
}

// enhancePages classifies each page and writes an enhanced temp copy for the
// non-colorful ones. Colorful pages pass through untouched. Returns the page
// list for the enhanced PDF plus the temp files to clean up afterwards.
func enhancePages(pagePaths, pageOrder []string, mode enhance.Mode, downloaded map[string]bool, report *RunReport) ([]string, []string) {
	enhancer := enhance.New(enhance.DefaultProfile())

	enhancedPaths := make([]string, 0, len(pagePaths))
	var tmpFiles []string

	for i, path := range pagePaths {
		pageID := pageOrder[i]

		result := PageResult{PageID: pageID, Status: "skipped"}
		if downloaded[pageID] {
			result.Status = "downloaded"
		}

		img, err := imaging.Open(path)
		if err != nil {
			// The original PDF already embedded this file, so keep it rather
			// than dropping the page from the enhanced document.
			slog.Warn("Failed to decode page for enhancement", "page", pageID, "error", err)
			enhancedPaths = append(enhancedPaths, path)
			appendResult(report, result)
			continue
		}

		classification := enhancer.Classify(img)
		result.Colorful = classification.Colorful
		result.ColorShare = classification.ColorShare
		slog.Debug("Classified page",
			"page", pageID,
			"colorful", classification.Colorful,
			"color_share", fmt.Sprintf("%.3f", classification.ColorShare),
			"mean_saturation", fmt.Sprintf("%.3f", classification.MeanSaturation))

		if classification.Colorful {
			// True color plates are left untouched.
			enhancedPaths = append(enhancedPaths, path)
			appendResult(report, result)
			continue
		}

		out := enhancer.Enhance(img, mode)
		tmpPath := path + "_tmp.jpg"
		if err := imgio.Save(tmpPath, out, imgio.JPEGEncoder(jpegQuality)); err != nil {
			slog.Warn("Failed to save enhanced page, keeping original", "page", pageID, "error", err)
			enhancedPaths = append(enhancedPaths, path)
			appendResult(report, result)
			continue
		}

		result.Enhanced = true
		enhancedPaths = append(enhancedPaths, tmpPath)
		tmpFiles = append(tmpFiles, tmpPath)
		appendResult(report, result)
	}

	return enhancedPaths, tmpFiles
}

func appendResult(report *RunReport, result PageResult) {
	report.Pages = append(report.Pages, result)
	switch result.Status {
	case "downloaded":
		report.Downloaded++
	case "skipped":
		report.Skipped++
	}
}

// resolveMode maps the --mode flag to an enhancement mode, prompting
// interactively when the flag was omitted.
func resolveMode(flag string, stdin io.Reader) (enhance.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "gray", "grayscale", "g":
		return enhance.ModeGrayscale, nil
	case "color", "colour", "c":
		return enhance.ModeColor, nil
	case "":
	default:
		return "", fmt.Errorf("unknown mode %q, expected gray or color", flag)
	}

	if stdin == nil {
		stdin = os.Stdin
	}

	fmt.Print("Press 'g' for grayscale enhancement or Enter for color (-30% saturation): ")
	choice, _ := bufio.NewReader(stdin).ReadString('\n')
	if strings.ToLower(strings.TrimSpace(choice)) == "g" {
		return enhance.ModeGrayscale, nil
	}
	return enhance.ModeColor, nil
}

// outputRoot picks the directory downloads land in: the flag, then
// NBNO_OUTPUT_DIR, then ~/Downloads.
func outputRoot(flag string) string {
	if flag != "" {
		return flag
	}
	if dir := os.Getenv("NBNO_OUTPUT_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "Downloads"
	}
	return filepath.Join(home, "Downloads")
}
