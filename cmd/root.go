package cmd

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "nbno",
		Short: "Download digitized publications from the National Library of Norway",
		Long: `nbno downloads digitized books, journals, newspapers and maps from api.nb.no.

Each page is reassembled from the library's IIIF tile service at full
resolution, saved as a JPEG, and bundled into two PDFs: one untouched and one
with per-page contrast/brightness enhancement for easier reading.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			if verbose {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	// Add subcommands
	cmd.AddCommand(newDownloadCmd())
	cmd.AddCommand(newInspectCmd())

	return cmd
}
