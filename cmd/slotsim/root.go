package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastprodman/slotledger/internal/slot"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

type rootOptions struct {
	configPath string
	seed       uint64
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "slotsim",
		Short:         "Run the slot machine offline against a throwaway ledger",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML machine configuration (default: built-in 3x3, x5)")
	cmd.PersistentFlags().Uint64Var(&opts.seed, "seed", 0, "RNG seed for reproducible output (default: random)")

	cmd.AddCommand(
		newRunCmd(opts),
		newRenderCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// engine builds the slot engine from the persistent flags.
func (o *rootOptions) engine(cmd *cobra.Command) (*slot.Engine, error) {
	cfg := slot.DefaultConfig()

	if o.configPath != "" {
		var err error

		cfg, err = slot.LoadConfig(o.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	src := slot.DefaultSource()
	if cmd.Flags().Changed("seed") {
		src = slot.NewSeededSource(o.seed)
	}

	return slot.New(cfg, src)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the slotsim version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "slotsim", version)
		},
	}
}
