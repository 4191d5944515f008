package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"voiceprep/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool
	var mismatch bool
	var match string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the voiceprep log or the realignment mismatch log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			path := filepath.Join(cfg.Paths.LogDir, "voiceprep.log")
			if mismatch {
				path = cfg.Realign.MismatchLog
			}
			out := cmd.OutOrStdout()
			emit := func(line string) { fmt.Fprintln(out, line) }

			if follow {
				runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return logs.Follow(runCtx, path, lines, match, emit)
			}

			result, err := logs.Tail(cmd.Context(), path, logs.TailOptions{Offset: -1, Limit: lines, Match: match})
			if err != nil {
				return err
			}
			for _, line := range result.Lines {
				emit(line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines until interrupted")
	cmd.Flags().BoolVar(&mismatch, "mismatch", false, "Show realign.mismatch_log instead of voiceprep.log")
	cmd.Flags().StringVar(&match, "grep", "", "Only show lines containing this text")
	return cmd
}
