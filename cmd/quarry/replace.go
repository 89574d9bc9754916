package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvickers/quarry/internal/search"
)

func newReplaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replace PATTERN REPLACEMENT FILE...",
		Short: "Replace every match of PATTERN in the given files",
		Long: "Replace every match of PATTERN with REPLACEMENT.\n" +
			"With --regex, REPLACEMENT may reference capture groups ($1, $2, ...)\n" +
			"and use \\n and \\t escapes.\n" +
			"Without --write the rewritten text goes to stdout.",
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			write, _ := cmd.Flags().GetBool("write")

			ctx := buildContext(cfg, args[0], args[1])
			for _, path := range args[2:] {
				if err := replaceInFile(cmd, ctx, path, write); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolP("write", "W", false, "rewrite files in place instead of printing")
	return cmd
}

func replaceInFile(cmd *cobra.Command, ctx *search.Context, path string, write bool) error {
	doc, err := openDocument(path)
	if err != nil {
		return err
	}

	res, err := search.ReplaceAll(doc, ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if write {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if res.Count > 0 {
			if err := os.WriteFile(path, []byte(doc.Text()), info.Mode().Perm()); err != nil {
				return err
			}
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), doc.Text())
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d replacement(s)\n", path, res.Count)
	return nil
}
