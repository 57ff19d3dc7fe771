package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/kk-code-lab/mdpage/internal/markdown"
	"github.com/kk-code-lab/mdpage/internal/textseg"
	"github.com/kk-code-lab/mdpage/internal/textutil"
	"github.com/spf13/cobra"
)

func newSegmentsCmd() *cobra.Command {
	var spans bool
	cmd := &cobra.Command{
		Use:   "segments [text...]",
		Short: "Show how text splits into emoji and plain segments",
		Long: `Print the emoji and plain segments of the given text, one per line, with
their byte offsets. Arguments are joined with spaces; without arguments the
text is read from stdin. With --inline the text is parsed as inline Markdown
and the formatting spans are printed as JSON instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read <stdin>: %w", err)
				}
				text = strings.TrimRight(string(data), "\r\n")
			}
			if spans {
				return writeSpans(cmd.OutOrStdout(), text)
			}
			return writeSegments(cmd.OutOrStdout(), text)
		},
	}
	cmd.Flags().BoolVar(&spans, "inline", false, "print inline formatting spans as JSON")
	return cmd
}

func writeSpans(w io.Writer, text string) error {
	data, err := markdown.MarshalInlines(markdown.ParseInline(text))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeSegments(w io.Writer, text string) error {
	var b strings.Builder
	for _, seg := range textseg.Split(text) {
		kind := "text"
		shown := seg.Text
		if seg.IsEmoji {
			kind = "emoji"
		} else {
			shown, _ = textutil.ReplaceFormattingRunes(shown)
		}
		fmt.Fprintf(&b, "%d-%d\t%s\t%s\n", seg.Start, seg.End, kind, textutil.SanitizeTerminalText(shown))
	}
	fmt.Fprintf(&b, "clusters: %d\n", len(textseg.Clusters(text)))
	fmt.Fprintf(&b, "hasEmoji: %t\n", textseg.HasEmoji(text))
	fmt.Fprintf(&b, "countEmojis: %d\n", textseg.CountEmojis(text))
	_, err := io.WriteString(w, b.String())
	return err
}
