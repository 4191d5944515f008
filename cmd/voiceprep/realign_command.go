package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"voiceprep/internal/logging"
	"voiceprep/internal/metrics"
	"voiceprep/internal/preflight"
	"voiceprep/internal/realign"
	"voiceprep/internal/reference"
	"voiceprep/internal/services"
)

func newRealignCommand(ctx *commandContext) *cobra.Command {
	var input string
	var referenceFile string
	var output string
	var scorer string
	var minScore float64
	var minLengthRatio float64
	var showMismatches int
	var skipPreflight bool

	cmd := &cobra.Command{
		Use:   "realign",
		Short: "Replace transcripts with their closest reference sentence",
		Long: `Realign a transcribed annotation file against a reference table.

For every record whose text carries a [TAG] ... [TAG] span, the span content
is fuzzy-matched against the reference sentences. Accepted matches replace
the content and add the sentence's character; rejected ones keep the
original text and are appended to the mismatch log for review.

Examples:
  voiceprep realign
  voiceprep realign --reference lines.yaml --min-score 80
  voiceprep realign --scorer token_set_ratio --show-mismatches 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if cmd.Flags().Changed("input") {
				cfg.Realign.InputFile = strings.TrimSpace(input)
			}
			if cmd.Flags().Changed("reference") {
				cfg.Realign.ReferenceFile = strings.TrimSpace(referenceFile)
			}
			if cmd.Flags().Changed("output") {
				cfg.Realign.OutputFile = strings.TrimSpace(output)
			}
			if cmd.Flags().Changed("scorer") {
				cfg.Realign.Scorer = strings.ToLower(strings.TrimSpace(scorer))
			}
			if cmd.Flags().Changed("min-score") {
				cfg.Realign.MinScore = minScore
			}
			if cmd.Flags().Changed("min-length-ratio") {
				cfg.Realign.MinLengthRatio = minLengthRatio
			}
			if err := cfg.ValidateRealign(); err != nil {
				return err
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			runCtx = services.WithRequestID(runCtx, uuid.NewString())

			if !skipPreflight {
				if err := reportPreflight(cmd.ErrOrStderr(), preflight.RunRealign(cfg)); err != nil {
					return err
				}
			}

			table, err := reference.Load(cfg.Realign.ReferenceFile)
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "realign", "load reference", cfg.Realign.ReferenceFile, err)
			}
			opts, err := realign.OptionsFromConfig(cfg)
			if err != nil {
				return err
			}

			mismatchWriter, err := logging.NewRotatingWriter(cfg.Realign.MismatchLog, logging.Rotation{
				MaxSizeMB:  cfg.Logging.MaxSizeMB,
				MaxBackups: cfg.Logging.MaxBackups,
				MaxAgeDays: cfg.Logging.MaxAgeDays,
			})
			if err != nil {
				return fmt.Errorf("open mismatch log: %w", err)
			}
			defer mismatchWriter.Close()

			recorder := metrics.New()
			job := realign.NewJob(opts, table, realign.NewMismatchLog(mismatchWriter), recorder, logger)
			summary, runErr := job.Run(runCtx)
			writeMetrics(logger, recorder, cfg.Metrics.TextfilePath)
			if runErr != nil {
				return runErr
			}

			out := cmd.OutOrStdout()
			printRealignSummary(out, opts, table.Len(), summary)
			printMismatches(out, summary.Mismatches, showMismatches)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Override realign.input_file")
	cmd.Flags().StringVar(&referenceFile, "reference", "", "Override realign.reference_file (CSV or YAML)")
	cmd.Flags().StringVar(&output, "output", "", "Override realign.output_file")
	cmd.Flags().StringVar(&scorer, "scorer", "", "Override realign.scorer")
	cmd.Flags().Float64Var(&minScore, "min-score", 0, "Override realign.min_score")
	cmd.Flags().Float64Var(&minLengthRatio, "min-length-ratio", 0, "Override realign.min_length_ratio")
	cmd.Flags().IntVar(&showMismatches, "show-mismatches", 20, "Number of rejected records to print (0 hides the table)")
	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Skip input and output path checks")
	return cmd
}

func printRealignSummary(out io.Writer, opts realign.Options, sentences int, summary realign.Summary) {
	rows := [][]string{
		{"Input", opts.InputPath},
		{"Output", opts.OutputPath},
		{"Reference sentences", strconv.Itoa(sentences)},
		{"Records", strconv.Itoa(summary.Total)},
		{"Matched", strconv.Itoa(summary.Matched)},
		{"Rejected", strconv.Itoa(summary.Rejected)},
		{"Untagged", strconv.Itoa(summary.Untagged)},
	}
	fmt.Fprintln(out, renderTable([]string{"Realignment", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
}

func printMismatches(out io.Writer, mismatches []realign.Mismatch, limit int) {
	if limit <= 0 || len(mismatches) == 0 {
		return
	}
	shown := mismatches
	if len(shown) > limit {
		shown = shown[:limit]
	}
	rows := make([][]string, 0, len(shown))
	for _, m := range shown {
		rows = append(rows, []string{
			truncate(m.Content, 40),
			truncate(m.Match, 40),
			strconv.FormatFloat(m.Score, 'f', 1, 64),
			m.Reason,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Content", "Closest match", "Score", "Reason"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	))
	if hidden := len(mismatches) - len(shown); hidden > 0 {
		fmt.Fprintf(out, "%d more in the mismatch log\n", hidden)
	}
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-1]) + "…"
}
