package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/mvickers/quarry/internal/search"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch PATTERN FILE...",
		Short: "Re-count matches whenever the given files change",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			ctx := buildContext(cfg, args[0], "")
			ctx.SetMarkAll(true)

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return err
			}
			defer watcher.Close()

			for _, path := range args[1:] {
				if err := watcher.Add(path); err != nil {
					return fmt.Errorf("watching %s: %w", path, err)
				}
				reportCount(cmd, ctx, path)
			}

			signals := make(chan os.Signal, 1)
			signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

			for {
				select {
				case ev, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
						reportCount(cmd, ctx, ev.Name)
					}
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
				case <-signals:
					return nil
				}
			}
		},
	}
	return cmd
}

func reportCount(cmd *cobra.Command, ctx *search.Context, path string) {
	doc, err := openDocument(path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
		return
	}

	res := search.MarkAll(doc, ctx)
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d match(es)\n", path, res.Marked)
}
