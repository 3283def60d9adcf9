package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"walletscan/internal/ui"
)

var tipCmd = &cobra.Command{
	Use:   "tip",
	Short: "Show the latest block number of the configured endpoint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spin := ui.NewSpinner("Fetching latest block…")
		spin.Start()
		tip, err := newClient().BlockNumber(cmd.Context())
		spin.Stop()
		if err != nil {
			return fmt.Errorf("fetching latest block: %w", err)
		}
		fmt.Printf("Latest block: %s\n", ui.Val(fmt.Sprintf("%d", tip)))
		return nil
	},
}
