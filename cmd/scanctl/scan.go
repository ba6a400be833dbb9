package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scanbridge/scanbridge/abstract"
)

func newScanCommand() *cobra.Command {
	var (
		source    string
		duplex    bool
		dpi       int
		colorMode string
		pageSize  string
		outDir    string
	)

	cmd := &cobra.Command{
		Use:   "scan <device-id>",
		Short: "Run a scan job and write each page's bytes to --out.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := parseSource(source)
			if err != nil {
				return err
			}
			cm, err := parseColorMode(colorMode)
			if err != nil {
				return err
			}
			size, err := parsePageSize(pageSize)
			if err != nil {
				return err
			}

			cfg := abstract.ScanConfig{
				Source:    src,
				Duplex:    duplex,
				Dpi:       dpi,
				ColorMode: cm,
				PageSize:  size,
			}

			return runScan(cmd, args[0], cfg, outDir)
		},
	}

	cmd.Flags().StringVar(&source, "source", "flatbed", "scan source: flatbed, adf, adf-duplex")
	cmd.Flags().BoolVar(&duplex, "duplex", false, "scan both sides of each sheet")
	cmd.Flags().IntVar(&dpi, "dpi", 300, "scan resolution in DPI")
	cmd.Flags().StringVar(&colorMode, "color", "color", "color mode: color, gray, bw")
	cmd.Flags().StringVar(&pageSize, "page-size", "a4", "page size: a4, letter, legal")
	cmd.Flags().StringVar(&outDir, "out", ".", "directory to write scanned pages into")

	return cmd
}

func runScan(cmd *cobra.Command, deviceID string, cfg abstract.ScanConfig, outDir string) error {
	reg := newRegistry()
	ctx := cmd.Context()

	caps, err := reg.Capabilities(ctx, deviceID)
	if err != nil {
		return fmt.Errorf("fetching capabilities: %w", err)
	}
	if err := cfg.Validate(caps); err != nil {
		return fmt.Errorf("invalid scan configuration: %w", err)
	}

	session, err := reg.StartScan(ctx, deviceID, cfg)
	if err != nil {
		return fmt.Errorf("starting scan: %w", err)
	}
	defer session.Close()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var page *os.File
	pageIndex := -1

	for {
		event, err := session.NextEvent(ctx)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		switch event.Type {
		case abstract.EventPageStarted:
			pageIndex = event.Index
			path := filepath.Join(outDir, fmt.Sprintf("page-%03d.bin", pageIndex))
			page, err = os.Create(path)
			if err != nil {
				return err
			}

		case abstract.EventPageData:
			if page == nil {
				return fmt.Errorf("received page data before PageStarted")
			}
			if _, err := page.Write(event.Data); err != nil {
				return err
			}

		case abstract.EventPageComplete:
			if page != nil {
				if err := page.Close(); err != nil {
					return err
				}
				page = nil
			}
			fmt.Fprintf(out, "page %d: %dx%d @ %d dpi (%s)\n", event.Meta.Index, event.Meta.WidthPx, event.Meta.HeightPx, event.Meta.Dpi, event.Meta.ColorMode)

		case abstract.EventJobComplete:
			fmt.Fprintln(out, "scan complete")
			return nil
		}
	}
}

func parseSource(s string) (abstract.ScanSource, error) {
	switch strings.ToLower(s) {
	case "flatbed":
		return abstract.SourceFlatbed, nil
	case "adf":
		return abstract.SourceADF, nil
	case "adf-duplex":
		return abstract.SourceADFDuplex, nil
	default:
		return 0, fmt.Errorf("unknown source %q (want flatbed, adf, adf-duplex)", s)
	}
}

func parseColorMode(s string) (abstract.ColorMode, error) {
	switch strings.ToLower(s) {
	case "color":
		return abstract.ColorModeColor, nil
	case "gray", "grey", "grayscale":
		return abstract.ColorModeGray, nil
	case "bw", "blackandwhite":
		return abstract.ColorModeBW, nil
	default:
		return 0, fmt.Errorf("unknown color mode %q (want color, gray, bw)", s)
	}
}

func parsePageSize(s string) (abstract.PageSize, error) {
	switch strings.ToLower(s) {
	case "a4":
		return abstract.PageSizeA4, nil
	case "letter":
		return abstract.PageSizeLetter, nil
	case "legal":
		return abstract.PageSizeLegal, nil
	default:
		return abstract.PageSize{}, fmt.Errorf("unknown page size %q (want a4, letter, legal)", s)
	}
}
