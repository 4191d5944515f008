package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"voiceprep/internal/checkpoint"
	"voiceprep/internal/logging"
)

func newCheckpointsCommand(ctx *commandContext) *cobra.Command {
	var latestOnly bool

	cmd := &cobra.Command{
		Use:   "checkpoints",
		Short: "List transcription checkpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			store := checkpoint.New(cfg.Paths.CheckpointDir, cfg.Checkpoint.Prefix, cfg.Checkpoint.Keep, logging.NewNop())
			out := cmd.OutOrStdout()

			if latestOnly {
				latest, ok, err := store.Latest()
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no checkpoints in %s", store.Dir())
				}
				fmt.Fprintln(out, latest.Path)
				return nil
			}

			infos, err := store.List()
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				fmt.Fprintf(out, "No checkpoints in %s\n", store.Dir())
				return nil
			}
			fmt.Fprintf(out, "Checkpoints in %s (keeping %d)\n", store.Dir(), cfg.Checkpoint.Keep)
			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				rows = append(rows, []string{
					filepath.Base(info.Path),
					strconv.Itoa(info.Count),
					strconv.FormatInt(info.Size, 10),
					info.ModTime.Format("2006-01-02 15:04:05"),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Checkpoint", "Records", "Bytes", "Modified"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&latestOnly, "latest", false, "Print only the path of the newest checkpoint")
	return cmd
}
