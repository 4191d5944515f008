package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"voiceprep/internal/deps"
	"voiceprep/internal/preflight"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Show external tool and recognizer status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Config: %s\n", ctx.configPath)

			statuses := preflight.CheckSystemDeps(cfg)
			rows := make([][]string, 0, len(statuses)+1)
			for _, status := range statuses {
				rows = append(rows, []string{status.Name, status.Command, yesNo(status.Available), depDetail(status)})
			}
			engine := preflight.CheckEngineFromConfig(cmd.Context(), cfg)
			rows = append(rows, []string{engine.Name, cfg.Transcribe.Engine, yesNo(engine.Passed), engine.Detail})

			fmt.Fprintln(out, renderTable([]string{"Dependency", "Command", "Available", "Detail"}, rows, nil))
			return nil
		},
	}
}

func depDetail(status deps.Status) string {
	if status.Detail != "" {
		return status.Detail
	}
	return status.Description
}

// reportPreflight renders failing checks and returns an error when any failed.
func reportPreflight(out io.Writer, results []preflight.Result) error {
	failed := preflight.Failed(results)
	if len(failed) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(failed))
	for _, r := range failed {
		rows = append(rows, []string{r.Name, r.Detail})
	}
	fmt.Fprintln(out, renderTable([]string{"Preflight check", "Problem"}, rows, nil))
	if len(failed) == 1 {
		return fmt.Errorf("preflight: %s failed", failed[0].Name)
	}
	return fmt.Errorf("preflight: %d checks failed", len(failed))
}
