package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRenderCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Generate one grid and print it in wire format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := opts.engine(cmd)
			if err != nil {
				return err
			}

			grid := eng.Generate()

			fmt.Fprintln(cmd.OutOrStdout(), grid.String())

			return nil
		},
	}
}
