package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvickers/quarry/internal/config"
	"github.com/mvickers/quarry/internal/search"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "quarry",
		Short:         "Find and replace text in files",
		Long:          "quarry runs an editor-grade find/replace engine over files:\nliteral or regex patterns, whole-word and case-insensitive matching,\nand capture-group replacement templates.",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "path to configuration file")
	root.PersistentFlags().BoolP("match-case", "c", false, "case-sensitive matching")
	root.PersistentFlags().BoolP("word", "w", false, "match whole words only")
	root.PersistentFlags().BoolP("regex", "e", false, "treat the pattern as a regular expression")
	root.PersistentFlags().Bool("no-color", false, "disable colored output")

	root.AddCommand(newFindCmd())
	root.AddCommand(newReplaceCmd())
	root.AddCommand(newWatchCmd())

	return root
}

// loadSettings resolves the effective configuration: file values first,
// explicitly set flags on top.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("match-case") {
		cfg.Search.MatchCase, _ = cmd.Flags().GetBool("match-case")
	}
	if cmd.Flags().Changed("word") {
		cfg.Search.WholeWord, _ = cmd.Flags().GetBool("word")
	}
	if cmd.Flags().Changed("regex") {
		cfg.Search.Regex, _ = cmd.Flags().GetBool("regex")
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		cfg.Output.Color = false
	}

	return cfg, nil
}

// buildContext creates a search context from the effective settings.
func buildContext(cfg *config.Config, pattern, replacement string) *search.Context {
	ctx := search.NewReplaceContext(pattern, replacement)
	ctx.SetMatchCase(cfg.Search.MatchCase)
	ctx.SetWholeWord(cfg.Search.WholeWord)
	ctx.SetRegex(cfg.Search.Regex)
	ctx.SetMarkAll(cfg.Search.MarkAll)
	return ctx
}
