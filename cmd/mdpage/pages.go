package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/kk-code-lab/mdpage/internal/markdown"
	"github.com/spf13/cobra"
)

func newPagesCmd() *cobra.Command {
	var pf parseFlags
	cmd := &cobra.Command{
		Use:   "pages [file]",
		Short: "Summarize the pages of a document",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := pf.options()
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
			return writePages(cmd.OutOrStdout(), markdown.Paginate(doc.Parse(opts...)))
		},
	}
	pf.register(cmd.Flags())
	return cmd
}

func writePages(w io.Writer, pages [][]markdown.Element) error {
	var b strings.Builder
	fmt.Fprintf(&b, "pages: %d\n", len(pages))
	for i, page := range pages {
		fmt.Fprintf(&b, "page %d: %s\n", i+1, summarizePage(page))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// summarizePage lists element types in order, collapsing consecutive
// repeats into "type xN".
func summarizePage(page []markdown.Element) string {
	if len(page) == 0 {
		return "(empty)"
	}
	var parts []string
	for i := 0; i < len(page); {
		typ := page[i].Type()
		j := i + 1
		for j < len(page) && page[j].Type() == typ {
			j++
		}
		if n := j - i; n > 1 {
			parts = append(parts, fmt.Sprintf("%s x%d", typ, n))
		} else {
			parts = append(parts, typ.String())
		}
		i = j
	}
	return strings.Join(parts, ", ")
}
