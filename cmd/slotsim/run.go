package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fastprodman/slotledger/internal/ledger"
	"github.com/fastprodman/slotledger/internal/services/game"
	"github.com/fastprodman/slotledger/internal/slot"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	var (
		rounds  int
		bet     float64
		balance float64
		show    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate a batch of rounds and print the totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rounds <= 0 {
				return errors.New("--rounds must be positive")
			}

			eng, err := opts.engine(cmd)
			if err != nil {
				return err
			}

			led, err := ledger.New(balance)
			if err != nil {
				return fmt.Errorf("init ledger: %w", err)
			}

			svc := game.New(led, eng, rounds)

			res, err := svc.Simulate(cmd.Context(), game.SimRequest{Count: float64(rounds), Bet: bet})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if show {
				for i, r := range res.Rounds {
					fmt.Fprintf(out, "%6d  %s  %.2f\n", i+1, slot.Render(r.Grid), r.Winnings)
				}
			}

			st := svc.Stats()

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "rounds\t%d\n", len(res.Rounds))
			fmt.Fprintf(tw, "total wagered\t%.2f\n", st.TotalWagered)
			fmt.Fprintf(tw, "total paid out\t%.2f\n", st.TotalPaidOut)
			fmt.Fprintf(tw, "net result\t%.2f\n", res.NetResult)
			fmt.Fprintf(tw, "rtp\t%.2f%%\n", st.RTP)
			fmt.Fprintf(tw, "final balance\t%.2f\n", st.Balance)

			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&rounds, "rounds", 1000, "Number of rounds")
	cmd.Flags().Float64Var(&bet, "bet", 1, "Wager per round")
	cmd.Flags().Float64Var(&balance, "balance", 1000, "Starting balance")
	cmd.Flags().BoolVar(&show, "show", false, "Print every grid")

	return cmd
}
