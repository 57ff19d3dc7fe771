package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/kk-code-lab/mdpage/internal/debuglog"
	"github.com/kk-code-lab/mdpage/internal/document"
	"github.com/kk-code-lab/mdpage/internal/markdown"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	formatJSON = "json"
	formatDump = "dump"

	maxParseWorkers = 8
)

type parseFlags struct {
	basePath   string
	indentStep int
}

func (f *parseFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.basePath, "base-path", "", "directory relative image paths resolve against (default: the document's directory)")
	flags.IntVar(&f.indentStep, "indent-step", 2, "spaces per list nesting level")
}

func (f *parseFlags) options() ([]markdown.Option, error) {
	if f.indentStep < 1 {
		return nil, usagef("--indent-step must be positive, got %d", f.indentStep)
	}
	opts := []markdown.Option{markdown.WithIndentStep(f.indentStep)}
	if f.basePath != "" {
		opts = append(opts, markdown.WithBasePath(f.basePath))
	}
	return opts, nil
}

var dumpConfig = litter.Options{
	StripPackageNames: true,
	HidePrivateFields: true,
	HideZeroValues:    true,
}

type parseResult struct {
	path     string
	elements []markdown.Element
	err      error
}

func newParseCmd() *cobra.Command {
	var (
		pf     parseFlags
		format string
		jobs   int
	)
	cmd := &cobra.Command{
		Use:   "parse [files...]",
		Short: "Parse documents and print their elements",
		Long: `Parse each document and print its elements in input order.

With a single input the JSON output is the element array itself. With several
inputs every document is printed as one {"path", "elements"} object per line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSON && format != formatDump {
				return usagef("unknown --format %q (want json or dump)", format)
			}
			opts, err := pf.options()
			if err != nil {
				return err
			}
			inputs := args
			if len(inputs) == 0 {
				inputs = []string{"-"}
			}
			results := parseAll(cmd, inputs, opts, jobs)
			return printResults(cmd.OutOrStdout(), cmd.ErrOrStderr(), results, format)
		},
	}
	pf.register(cmd.Flags())
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json|dump")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "parallel parsers (0 picks from the CPU count)")
	return cmd
}

func workerCount(jobs, inputs int) int {
	n := jobs
	if n <= 0 {
		n = runtime.NumCPU() - 1
		if n > maxParseWorkers {
			n = maxParseWorkers
		}
	}
	if n > inputs {
		n = inputs
	}
	if n < 1 {
		n = 1
	}
	return n
}

// parseAll parses inputs on a bounded pool of workers. Results keep the
// order of inputs regardless of completion order.
func parseAll(cmd *cobra.Command, inputs []string, opts []markdown.Option, jobs int) []parseResult {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]parseResult, len(inputs))
	work := make(chan int)

	workers := workerCount(jobs, len(inputs))
	debuglog.Debugf("parse: %d inputs, %d workers", len(inputs), workers)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx] = parseOne(cmd, inputs[idx], opts)
			}
		}()
	}

dispatch:
	for idx := range inputs {
		select {
		case work <- idx:
		case <-ctx.Done():
			for rest := idx; rest < len(inputs); rest++ {
				results[rest] = parseResult{path: inputs[rest], err: ctx.Err()}
			}
			break dispatch
		}
	}
	close(work)
	wg.Wait()
	return results
}

func parseOne(cmd *cobra.Command, path string, opts []markdown.Option) parseResult {
	if path != "-" {
		elements, err := document.ParseFile(path, opts...)
		return parseResult{path: path, elements: elements, err: err}
	}
	doc, err := loadInput(cmd, path)
	if err != nil {
		return parseResult{path: path, err: err}
	}
	return parseResult{path: path, elements: doc.Parse(opts...)}
}

type fileElements struct {
	Path     string          `json:"path"`
	Elements json.RawMessage `json:"elements"`
}

// printResults writes every successful result and reports failures on
// stderr. It returns an error when any input failed.
func printResults(stdout, stderr io.Writer, results []parseResult, format string) error {
	failed := 0
	for _, res := range results {
		if res.err != nil {
			failed++
			fmt.Fprintf(stderr, "mdpage: %v\n", res.err)
			continue
		}
		if err := printResult(stdout, res, format, len(results) > 1); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(results))
	}
	return nil
}

func printResult(w io.Writer, res parseResult, format string, multi bool) error {
	if format == formatDump {
		if multi {
			if _, err := fmt.Fprintf(w, "# %s\n", res.path); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintln(w, dumpConfig.Sdump(res.elements))
		return err
	}

	data, err := markdown.MarshalElements(res.elements)
	if err != nil {
		return fmt.Errorf("%s: %w", res.path, err)
	}
	if multi {
		data, err = json.Marshal(fileElements{Path: res.path, Elements: data})
		if err != nil {
			return fmt.Errorf("%s: %w", res.path, err)
		}
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
