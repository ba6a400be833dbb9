package main

import (
	"github.com/spf13/cobra"

	"github.com/scanbridge/scanbridge/backend/escl"
	"github.com/scanbridge/scanbridge/backend/native/ica"
	"github.com/scanbridge/scanbridge/backend/native/sane"
	"github.com/scanbridge/scanbridge/backend/native/twain"
	"github.com/scanbridge/scanbridge/backend/native/wia"
	"github.com/scanbridge/scanbridge/internal/logging"
	"github.com/scanbridge/scanbridge/registry"
)

// newRegistry builds the composition root shared by every subcommand:
// the eSCL backend plus every platform's native adapter, whichever of
// those actually have anything to report on the host they're running
// on.
func newRegistry() *registry.Registry {
	return registry.New(
		escl.NewBackend(),
		wia.NewBackend(),
		ica.NewBackend(),
		twain.NewBackend(),
		sane.NewBackend(),
	)
}

func newRootCommand() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "scanctl",
		Short: "Discover and drive document scanners through ScanBridge.",
		Long: `scanctl talks to scanners over eSCL (AirPrint/AirScan) and the
native OS scanning frameworks (WIA, ICA, TWAIN, SANE) through one
backend-agnostic registry.`,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Initialize(logLevel, nil)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newCapsCommand())
	cmd.AddCommand(newScanCommand())

	return cmd
}
