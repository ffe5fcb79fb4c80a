package cmd

import (
	"fmt"

	"github.com/SurgeonTalus/nbno/internal/downloadcmd"
	"github.com/spf13/cobra"
)

// newDownloadCmd creates the download command
func newDownloadCmd() *cobra.Command {
	var id string
	var start int
	var stop int
	var mode string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download a publication and assemble original + enhanced PDFs",
		Long: `Download every page of a publication from the National Library of Norway.

The --id flag takes the combined identifier shown on nb.no, which encodes both
the media type and the catalog number (for example digibok_2008051404065).
Pages already present in the output directory are skipped, so an interrupted
download can be resumed by running the same command again.`,
		Example: `  # Download a book
  nbno download --id digibok_2008051404065

  # Download pages 10-49 of a newspaper with grayscale enhancement
  nbno download --id digavis_aftenposten_null_null_19450508_86_216_1 --start 10 --stop 50 --mode gray

  # Download into a specific directory without the interactive mode prompt
  nbno download --id digikart_2016012668000 --mode color --output ./maps`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				return fmt.Errorf("--id is required")
			}

			return downloadcmd.Execute(downloadcmd.Options{
				RawID:     id,
				Start:     start,
				Stop:      stop,
				Mode:      mode,
				OutputDir: outputDir,
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Publication identifier, e.g. digibok_2008051404065 (required)")
	cmd.Flags().IntVar(&start, "start", 1, "First page to download (1-based, inclusive)")
	cmd.Flags().IntVar(&stop, "stop", 0, "Page to stop before (1-based, exclusive; 0 means all pages)")
	cmd.Flags().StringVar(&mode, "mode", "", "Enhancement mode: gray or color (prompts when omitted)")
	cmd.Flags().StringVar(&outputDir, "output", "", "Output directory (defaults to ~/Downloads)")

	_ = cmd.MarkFlagRequired("id")

	return cmd
}
