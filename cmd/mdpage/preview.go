package main

import (
	"io"
	"os"

	"github.com/kk-code-lab/mdpage/internal/preview"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultPreviewWidth = 80

func newPreviewCmd() *cobra.Command {
	var (
		width       int
		color       string
		placeholder string
		maxCell     int
	)
	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Render a styled text preview of a document",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if width < 0 {
				return usagef("--width must not be negative, got %d", width)
			}
			out := cmd.OutOrStdout()
			useColor, err := resolveColor(color, out)
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			doc, err := loadInput(cmd, path)
			if err != nil {
				return err
			}
			lines := preview.Render(doc.Parse(), preview.Options{
				EmojiPlaceholder: placeholder,
				MaxCellWidth:     maxCell,
			})
			return preview.Write(out, lines, preview.WriteOptions{
				Width: resolveWidth(width, out),
				Color: useColor,
			})
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 0, "wrap width (0 uses the terminal width, or 80)")
	cmd.Flags().StringVar(&color, "color", "auto", "ANSI styling: auto|always|never")
	cmd.Flags().StringVar(&placeholder, "emoji-placeholder", "", "text printed instead of each emoji")
	cmd.Flags().IntVar(&maxCell, "max-cell-width", 0, "cap for table column width (0 uses the default)")
	return cmd
}

func terminalFd(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}

func resolveWidth(flagWidth int, w io.Writer) int {
	if flagWidth > 0 {
		return flagWidth
	}
	if fd, ok := terminalFd(w); ok {
		if cols, _, err := term.GetSize(fd); err == nil && cols > 0 {
			return cols
		}
	}
	return defaultPreviewWidth
}

func resolveColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		_, tty := terminalFd(w)
		return tty, nil
	default:
		return false, usagef("unknown --color %q (want auto, always or never)", mode)
	}
}
