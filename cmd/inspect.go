package cmd

import (
	"fmt"

	"github.com/SurgeonTalus/nbno/internal/downloadcmd"
	"github.com/spf13/cobra"
)

// newInspectCmd creates the inspect command
func newInspectCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show manifest details for a publication without downloading",
		Long: `Resolve the IIIF manifest for a publication and print its title, page count
and page geometry. Useful for checking what a download would fetch and for
picking --start/--stop ranges.`,
		Example: `  nbno inspect --id digibok_2008051404065`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				return fmt.Errorf("--id is required")
			}

			return downloadcmd.Inspect(id)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Publication identifier, e.g. digibok_2008051404065 (required)")

	_ = cmd.MarkFlagRequired("id")

	return cmd
}
