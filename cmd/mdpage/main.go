// Command mdpage parses Markdown documents into page-aware block elements.
//
// Usage:
//
//	mdpage parse [files...]     print parsed elements as JSON or a Go dump
//	mdpage preview [file]       render a styled text preview
//	mdpage segments [text...]   show grapheme segments and emoji flags
//	mdpage pages [file]         summarize the pages of a document
//
// Input is read from stdin when no file is given or the file is "-".
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kk-code-lab/mdpage/internal/debuglog"
	"github.com/kk-code-lab/mdpage/internal/document"
	"github.com/spf13/cobra"
	"pkt.systems/version"
)

const (
	exitIO    = 1
	exitUsage = 2
)

func init() {
	version.SetDefaultModule("github.com/kk-code-lab/mdpage")
}

// usageError marks errors caused by bad arguments or flags.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

// usageArgs wraps a positional argument validator so its failures exit with
// the usage code.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{err: err}
		}
		return nil
	}
}

func newRootCmd() *cobra.Command {
	var debugFile string
	root := &cobra.Command{
		Use:           "mdpage",
		Short:         "Parse Markdown into page-aware block elements",
		Version:       fmt.Sprint(version.Current()),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cmd.Flags().Changed("debug-log") {
				debuglog.Enable(debugFile)
			}
			if debuglog.Enabled() {
				debuglog.Debugf("%s %s: %s %q", version.Module(), version.Current(), cmd.Name(), args)
			}
		},
	}
	root.PersistentFlags().StringVar(&debugFile, "debug-log", "", "append debug output to this file")
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err: err}
	})

	root.AddCommand(
		newParseCmd(),
		newPreviewCmd(),
		newSegmentsCmd(),
		newPagesCmd(),
	)
	return root
}

// run executes the command line and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return 0
	}
	fmt.Fprintf(stderr, "mdpage: %v\n", err)
	var ue usageError
	if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") {
		return exitUsage
	}
	return exitIO
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// loadInput reads path, or stdin when path is empty or "-".
func loadInput(cmd *cobra.Command, path string) (document.Document, error) {
	if path == "" || path == "-" {
		return document.Read(cmd.InOrStdin(), "")
	}
	return document.Load(path)
}
