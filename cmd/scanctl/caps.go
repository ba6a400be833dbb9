package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCapsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "caps <device-id>",
		Short: "Print the capabilities advertised by one scanner.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := newRegistry()
			caps, err := reg.Capabilities(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sources:         %v\n", caps.Sources)
			fmt.Fprintf(out, "dpis:            %v\n", caps.Dpis)
			fmt.Fprintf(out, "color modes:     %v\n", caps.ColorModes)
			fmt.Fprintf(out, "page sizes:      %v\n", caps.PageSizes)
			fmt.Fprintf(out, "supports duplex: %v\n", caps.SupportsDuplex)
			return nil
		},
	}
}
