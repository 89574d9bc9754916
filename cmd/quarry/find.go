package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mvickers/quarry/internal/editor"
	"github.com/mvickers/quarry/internal/search"
)

var (
	matchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	locStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)

func newFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find PATTERN FILE...",
		Short: "Print every match of PATTERN in the given files",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			ctx := buildContext(cfg, args[0], "")
			// Listing matches relies on the mark-all pass.
			ctx.SetMarkAll(true)

			total := 0
			for _, path := range args[1:] {
				n, err := findInFile(cmd, cfg.Output.Color, ctx, path)
				if err != nil {
					return err
				}
				total += n
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "%d match(es)\n", total)
			return nil
		},
	}
	return cmd
}

func findInFile(cmd *cobra.Command, color bool, ctx *search.Context, path string) (int, error) {
	doc, err := openDocument(path)
	if err != nil {
		return 0, err
	}

	// Find validates the pattern; the mark-all pass it triggers collects
	// every occurrence for printing.
	if _, err := search.Find(doc, ctx); err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}

	buf := doc.Buffer()
	for _, r := range doc.Occurrences() {
		point := buf.OffsetToPoint(r.Start)
		line := buf.LineText(point.Line)

		matched := buf.TextRange(r.Start, r.End)
		if color {
			start := int(point.Column)
			end := start + len(matched)
			if end <= len(line) {
				line = line[:start] + matchStyle.Render(line[start:end]) + line[end:]
			}
		}

		loc := fmt.Sprintf("%s:%d:%d:", path, point.Line+1, point.Column+1)
		if color {
			loc = locStyle.Render(loc)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", loc, line)
	}

	return len(doc.Occurrences()), nil
}

func openDocument(path string) (*editor.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return editor.NewDocumentFromReader(f)
}
