package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scanners currently visible to every backend.",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := newRegistry()
			devices := reg.ListDevices(cmd.Context())

			if len(devices) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no scanners found")
				return nil
			}

			for _, d := range devices {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-10s %s\n", d.ID, d.Backend, d.Name)
			}
			return nil
		},
	}
}
