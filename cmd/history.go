package cmd

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"walletscan/internal/chain"
	"walletscan/internal/logging"
	"walletscan/internal/report"
	"walletscan/internal/scan"
	"walletscan/internal/ui"
)

var (
	histFrom  uint64
	histMax   int
	histBatch uint64
	histPlain bool
)

var historyCmd = &cobra.Command{
	Use:   "history <address>",
	Short: "Find a wallet's creation block and its recent transactions",
	Long: `Locate the first block in which an address appears as sender or
receiver, then walk backward from the chain tip collecting its most
recent transactions, and print a summary.

Only eth_blockNumber and eth_getBlockByNumber are used, so this works
against endpoints without address indexing — at the cost of scanning
block ranges in batches.

Examples:
  walletscan history 0xd8da6bf26964af9d7eed9e03e53415d37aa96045
  walletscan history 0xd8da…6045 --max 25 --from 10000000
  walletscan history 0xd8da…6045 --plain --rpc-url https://rpc.ankr.com/eth`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		address, err := parseAddress(args[0])
		if err != nil {
			return err
		}

		batch := cfg.BatchSize
		if histBatch > 0 {
			batch = histBatch
		}
		maxTx := cfg.MaxTransactions
		if histMax > 0 {
			maxTx = histMax
		}
		low := cfg.StartBlock
		if cmd.Flags().Changed("from") {
			low = histFrom
		}

		ctx := cmd.Context()
		client := newClient()
		obs := scan.LogObserver{Log: logging.Logger()}

		spin := ui.NewSpinner("Fetching latest block…")
		spin.Start()
		tip, err := client.BlockNumber(ctx)
		spin.Stop()
		if err != nil {
			return fmt.Errorf("fetching latest block: %w", err)
		}
		fmt.Printf("Latest block: %s\n", ui.Val(fmt.Sprintf("%d", tip)))

		spin = ui.NewSpinner(fmt.Sprintf("Searching first activity of %s…", ui.Addr(ui.TruncateAddr(address))))
		spin.Start()
		loc, err := scan.NewLocator(client, batch, obs).Locate(ctx, address, low, tip)
		spin.Stop()
		if err != nil {
			return fmt.Errorf("locating first activity: %w", err)
		}
		if !loc.Found {
			fmt.Println(ui.Meta("No transactions found for this address."))
			if loc.Degraded {
				fmt.Println(ui.Warn("some block ranges could not be fetched; results may be incomplete"))
			}
			return nil
		}
		fmt.Printf("First activity at block %s\n", ui.Val(fmt.Sprintf("%d", loc.Block)))

		var txs []chain.Transaction
		if histPlain {
			txs, err = scan.NewScanner(client, batch, obs).Scan(ctx, address, loc.Block, tip, maxTx)
		} else {
			txs, err = scanWithProgress(ctx, client, address, loc.Block, tip, batch, maxTx)
		}
		if err != nil {
			return fmt.Errorf("scanning recent transactions: %w", err)
		}

		fmt.Println(report.Render(address, loc, txs, cfg.Currency))
		return nil
	},
}

// scanWithProgress runs the reverse scan behind a Bubble Tea progress bar.
// When the progress view exits first (quit key, display failure) the scan is
// cancelled and awaited, so results are never read while the scan goroutine
// is still writing them.
func scanWithProgress(ctx context.Context, fetcher scan.Fetcher, address string, low, high, batch uint64, maxTx int, opts ...tea.ProgramOption) ([]chain.Transaction, error) {
	prog := tea.NewProgram(ui.NewProgressModel("Scanning blocks", high-low+1), opts...)

	scanCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var txs []chain.Transaction
	var scanErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		s := scan.NewScanner(fetcher, batch, progressObserver{prog})
		txs, scanErr = s.Scan(scanCtx, address, low, high, maxTx)
		prog.Send(ui.DoneMsg{})
	}()

	_, runErr := prog.Run()
	cancel()
	<-done
	if runErr != nil {
		return nil, runErr
	}
	if errors.Is(scanErr, context.Canceled) && ctx.Err() == nil {
		// The user quit the progress view; report what was collected.
		scanErr = nil
	}
	return txs, scanErr
}

// progressObserver forwards scanner events into the progress display.
type progressObserver struct {
	prog *tea.Program
}

func (o progressObserver) SearchNarrowed(start, end uint64) {}

func (o progressObserver) BatchSkipped(from, to uint64, err error) {
	o.prog.Send(ui.NoteMsg{Text: fmt.Sprintf("skipped blocks %d-%d: %v", from, to, err)})
}

func (o progressObserver) BlocksScanned(count uint64) {
	o.prog.Send(ui.ProgressMsg{Blocks: count})
}

func (o progressObserver) TransactionsCollected(total int) {
	o.prog.Send(ui.FoundMsg{Total: total})
}

func init() {
	historyCmd.Flags().Uint64Var(&histFrom, "from", 0, "lowest block to search (default: config start_block)")
	historyCmd.Flags().IntVar(&histMax, "max", 0, "max transactions to collect (default: config max_transactions)")
	historyCmd.Flags().Uint64Var(&histBatch, "batch-size", 0, "blocks per batched RPC request (default: config batch_size)")
	historyCmd.Flags().BoolVar(&histPlain, "plain", false, "disable the progress UI")
}
