package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"walletscan/internal/logging"
	"walletscan/internal/scan"
	"walletscan/internal/ui"
)

var (
	locFrom  uint64
	locBatch uint64
)

var locateCmd = &cobra.Command{
	Use:   "locate <address>",
	Short: "Find the block of an address's first transaction",
	Long: `Binary-search the chain for the earliest block containing a
transaction that involves the address, as sender or receiver.

Examples:
  walletscan locate 0xd8da6bf26964af9d7eed9e03e53415d37aa96045
  walletscan locate 0xd8da…6045 --from 1000000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		address, err := parseAddress(args[0])
		if err != nil {
			return err
		}

		batch := cfg.BatchSize
		if locBatch > 0 {
			batch = locBatch
		}
		low := cfg.StartBlock
		if cmd.Flags().Changed("from") {
			low = locFrom
		}

		ctx := cmd.Context()
		client := newClient()

		spin := ui.NewSpinner("Fetching latest block…")
		spin.Start()
		tip, err := client.BlockNumber(ctx)
		spin.Stop()
		if err != nil {
			return fmt.Errorf("fetching latest block: %w", err)
		}

		spin = ui.NewSpinner(fmt.Sprintf("Searching blocks %d-%d…", low, tip))
		spin.Start()
		loc, err := scan.NewLocator(client, batch, scan.LogObserver{Log: logging.Logger()}).
			Locate(ctx, address, low, tip)
		spin.Stop()
		if err != nil {
			return fmt.Errorf("locating first activity: %w", err)
		}

		if !loc.Found {
			fmt.Println(ui.Meta("No transactions found for this address."))
		} else {
			fmt.Printf("First activity of %s at block %s\n",
				ui.Addr(ui.TruncateAddr(address)), ui.Val(fmt.Sprintf("%d", loc.Block)))
		}
		if loc.Degraded {
			fmt.Println(ui.Warn("some block ranges could not be fetched; the result may be off"))
		}
		return nil
	},
}

func init() {
	locateCmd.Flags().Uint64Var(&locFrom, "from", 0, "lowest block to search (default: config start_block)")
	locateCmd.Flags().Uint64Var(&locBatch, "batch-size", 0, "blocks per batched RPC request (default: config batch_size)")
}
