// ScanBridge interactive shell.
//
// scanshell wraps the same registry cmd/scanctl drives behind a
// liner-backed REPL, modeled on the teacher's cmd/mfp-shell: a
// history file under the user's config directory, argv.Tokenize for
// splitting each line, and a single root argv.Command tree dispatched
// per line.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/scanbridge/scanbridge/argv"
	"github.com/scanbridge/scanbridge/backend/escl"
	"github.com/scanbridge/scanbridge/backend/native/ica"
	"github.com/scanbridge/scanbridge/backend/native/sane"
	"github.com/scanbridge/scanbridge/backend/native/twain"
	"github.com/scanbridge/scanbridge/backend/native/wia"
	"github.com/scanbridge/scanbridge/internal/logging"
	"github.com/scanbridge/scanbridge/registry"
)

func main() {
	logging.Initialize("info", nil)

	reg := registry.New(
		escl.NewBackend(),
		wia.NewBackend(),
		ica.NewBackend(),
		twain.NewBackend(),
		sane.NewBackend(),
	)
	root := newRootCommand(reg)

	editline := liner.NewLiner()
	defer editline.Close()

	editline.SetCtrlCAborts(true)

	historyDir, err := os.UserConfigDir()
	if err == nil {
		historyDir = filepath.Join(historyDir, "scanbridge")
		os.MkdirAll(historyDir, 0o755)
	}
	historyPath := filepath.Join(historyDir, "scanshell.history")

	if file, err := os.Open(historyPath); err == nil {
		editline.ReadHistory(file)
		file.Close()
	}

	fmt.Println("ScanBridge interactive console.")
	fmt.Println("Type 'help' for a list of commands, 'exit' to quit.")

	for {
		line, err := editline.Prompt("scanbridge> ")
		if err != nil {
			fmt.Println()
			break
		}

		save, runErr := execLine(root, line)
		if save {
			editline.AppendHistory(strings.TrimSpace(line))
			if file, err := os.Create(historyPath); err == nil {
				editline.WriteHistory(file)
				file.Close()
			}
		}

		if runErr != nil {
			if runErr == errExit {
				break
			}
			fmt.Printf("%s\n", runErr)
		}
	}
}

// errExit is returned by the "exit"/"quit" command to unwind the
// REPL loop without printing itself as an error.
var errExit = fmt.Errorf("exit")

// execLine tokenizes and runs one line of input against root.
// savehistory reports whether line was well-formed enough to be worth
// remembering, mirroring the teacher's cmd/mfp-shell convention.
func execLine(root *argv.Command, line string) (savehistory bool, err error) {
	tokens, err := argv.Tokenize(line)
	if err != nil {
		return false, err
	}
	if len(tokens) == 0 {
		return false, nil
	}

	return true, root.Run(tokens)
}
