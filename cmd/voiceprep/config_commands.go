package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"voiceprep/internal/config"
	"voiceprep/internal/language"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		targetPath string
		overwrite  bool
		toStdout   bool
	)

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if toStdout {
				_, err := io.WriteString(out, config.Sample())
				return err
			}
			target, err := initTarget(targetPath, overwrite)
			if err != nil {
				return err
			}
			if err := config.CreateSample(target); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Next: set paths.audio_dir and realign.reference_file, then run `voiceprep config validate`.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing configuration file")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Print the sample configuration instead of writing it")
	return cmd
}

// initTarget resolves where `config init` writes and refuses to clobber an
// existing file unless overwrite is set.
func initTarget(raw string, overwrite bool) (string, error) {
	var (
		target string
		err    error
	)
	if raw = strings.TrimSpace(raw); raw == "" {
		target, err = config.DefaultConfigPath()
	} else {
		target, err = config.ExpandPath(raw)
	}
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	if overwrite {
		return target, nil
	}
	switch _, statErr := os.Stat(target); {
	case statErr == nil:
		return "", fmt.Errorf("%s already exists; pass --overwrite to replace it", target)
	case errors.Is(statErr, fs.ErrNotExist):
		return target, nil
	default:
		return "", fmt.Errorf("inspect %s: %w", target, statErr)
	}
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Validate configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(ctx.configFlagValue())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			tokens, err := language.ParseTokenSet(cfg.Transcribe.Languages)
			if err != nil {
				return fmt.Errorf("transcribe.languages: %w", err)
			}
			speaker := cfg.Paths.Speaker
			if speaker == "" {
				speaker = "(first sub-directory)"
			}
			rows := [][]string{
				{"Audio directory", cfg.Paths.AudioDir},
				{"Speaker", speaker},
				{"Annotation file", cfg.Paths.AnnotationFile},
				{"Checkpoints", fmt.Sprintf("%s (every %d clips, keep %d)", cfg.Paths.CheckpointDir, cfg.Checkpoint.SaveInterval, cfg.Checkpoint.Keep)},
				{"Engine", cfg.Transcribe.Engine},
				{"Languages", tokens.String()},
				{"Reference table", cfg.Realign.ReferenceFile},
				{"Thresholds", fmt.Sprintf("score >= %.1f, length ratio >= %.2f (%s)", cfg.Realign.MinScore, cfg.Realign.MinLengthRatio, cfg.Realign.Scorer)},
			}
			fmt.Fprintln(out, renderTable([]string{"Setting", "Value"}, rows, nil))
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
