package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/battleship/internal/dependencies/random"
	"github.com/mcoot/battleship/internal/services/fleet"
)

func newFleetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fleet",
		Short: "Fleet layout helpers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "random",
		Short: "Print a random valid fleet layout",
		Long: `Print a random fleet layout that satisfies the placement rules.

With --output json the matrix can be passed straight to SetPositions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout := fleet.RandomLayout(random.New()).Snapshot()
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(layout)
			return nil
		},
	})

	return cmd
}
