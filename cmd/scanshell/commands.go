package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/scanbridge/scanbridge/abstract"
	"github.com/scanbridge/scanbridge/argv"
	"github.com/scanbridge/scanbridge/registry"
)

// newRootCommand builds the shell's command tree: list, caps, scan,
// help, and exit/quit, all routed through the one shared reg.
func newRootCommand(reg *registry.Registry) *argv.Command {
	root := &argv.Command{
		Name: "scanbridge",
		Help: "ScanBridge interactive shell",
		SubCommands: []argv.Command{
			newListCommand(reg),
			newCapsCommand(reg),
			newScanCommand(reg),
			newHelpCommand(),
			newExitCommand("exit"),
			newExitCommand("quit"),
		},
	}
	return root
}

func newListCommand(reg *registry.Registry) argv.Command {
	return argv.Command{
		Name: "list",
		Help: "list scanners visible to every backend",
		Handler: func(inv *argv.Invocation) error {
			devices := reg.ListDevices(context.Background())
			if len(devices) == 0 {
				fmt.Println("no scanners found")
				return nil
			}
			for _, d := range devices {
				fmt.Printf("%-24s %-10s %s\n", d.ID, d.Backend, d.Name)
			}
			return nil
		},
	}
}

func newCapsCommand(reg *registry.Registry) argv.Command {
	return argv.Command{
		Name: "caps",
		Help: "print a scanner's capabilities",
		Parameters: []argv.Parameter{
			{Name: "device-id", Help: "device id, as shown by list", Validate: argv.ValidateAny},
		},
		Handler: func(inv *argv.Invocation) error {
			id, _ := inv.Get("device-id")
			caps, err := reg.Capabilities(context.Background(), id)
			if err != nil {
				return err
			}
			fmt.Printf("sources:         %v\n", caps.Sources)
			fmt.Printf("dpis:            %v\n", caps.Dpis)
			fmt.Printf("color modes:     %v\n", caps.ColorModes)
			fmt.Printf("page sizes:      %v\n", caps.PageSizes)
			fmt.Printf("supports duplex: %v\n", caps.SupportsDuplex)
			return nil
		},
	}
}

func newScanCommand(reg *registry.Registry) argv.Command {
	return argv.Command{
		Name: "scan",
		Help: "scan a document and write its pages to --out",
		Options: []argv.Option{
			{Name: "--source", Help: "flatbed, adf, adf-duplex", Validate: argv.ValidateAny},
			{Name: "--dpi", Help: "resolution in DPI", Validate: argv.ValidateInt32},
			{Name: "--color", Help: "color, gray, bw", Validate: argv.ValidateAny},
			{Name: "--page-size", Help: "a4, letter, legal", Validate: argv.ValidateAny},
			{Name: "--out", Help: "output directory (default: current directory)", Validate: argv.ValidateAny},
			{Name: "--duplex", Help: "scan both sides of each sheet"},
		},
		Parameters: []argv.Parameter{
			{Name: "device-id", Help: "device id, as shown by list", Validate: argv.ValidateAny},
		},
		Handler: handleScan(reg),
	}
}

func handleScan(reg *registry.Registry) func(*argv.Invocation) error {
	return func(inv *argv.Invocation) error {
		id, _ := inv.Get("device-id")

		source := abstract.SourceFlatbed
		if v, ok := inv.Get("--source"); ok {
			parsed, err := parseSource(v)
			if err != nil {
				return err
			}
			source = parsed
		}

		colorMode := abstract.ColorModeColor
		if v, ok := inv.Get("--color"); ok {
			parsed, err := parseColorMode(v)
			if err != nil {
				return err
			}
			colorMode = parsed
		}

		pageSize := abstract.PageSizeA4
		if v, ok := inv.Get("--page-size"); ok {
			parsed, err := parsePageSize(v)
			if err != nil {
				return err
			}
			pageSize = parsed
		}

		dpi := 300
		if v, ok := inv.Get("--dpi"); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			dpi = n
		}

		outDir := "."
		if v, ok := inv.Get("--out"); ok {
			outDir = v
		}

		cfg := abstract.ScanConfig{
			Source:    source,
			Duplex:    inv.Present("--duplex"),
			Dpi:       dpi,
			ColorMode: colorMode,
			PageSize:  pageSize,
		}

		return runScan(reg, id, cfg, outDir)
	}
}

func runScan(reg *registry.Registry, deviceID string, cfg abstract.ScanConfig, outDir string) error {
	ctx := context.Background()

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

	var page *os.File
	for {
		event, err := session.NextEvent(ctx)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		switch event.Type {
		case abstract.EventPageStarted:
			path := filepath.Join(outDir, fmt.Sprintf("page-%03d.bin", event.Index))
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
			fmt.Printf("page %d: %dx%d @ %d dpi (%s)\n", event.Meta.Index, event.Meta.WidthPx, event.Meta.HeightPx, event.Meta.Dpi, event.Meta.ColorMode)

		case abstract.EventJobComplete:
			fmt.Println("scan complete")
			return nil
		}
	}
}

func newHelpCommand() argv.Command {
	return argv.Command{
		Name: "help",
		Help: "show available commands",
		Handler: func(inv *argv.Invocation) error {
			root := inv.Parent()
			if root == nil {
				root = inv
			}
			for _, sub := range root.Cmd().SubCommands {
				fmt.Printf("  %-10s %s\n", sub.Name, sub.Help)
			}
			return nil
		},
	}
}

func newExitCommand(name string) argv.Command {
	return argv.Command{
		Name: name,
		Help: "leave the shell",
		Handler: func(inv *argv.Invocation) error {
			return errExit
		},
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
