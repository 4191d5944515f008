package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"voiceprep/internal/checkpoint"
	"voiceprep/internal/config"
	"voiceprep/internal/deps"
	"voiceprep/internal/logging"
	"voiceprep/internal/media/audio"
	"voiceprep/internal/metrics"
	"voiceprep/internal/preflight"
	"voiceprep/internal/services"
	"voiceprep/internal/transcription"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var engine string
	var languages string
	var keepResampled bool
	var skipPreflight bool

	cmd := &cobra.Command{
		Use:   "transcribe [speaker]",
		Short: "Transcribe a speaker directory into a language-tagged annotation file",
		Long: `Transcribe every clip in one speaker directory. Each clip is probed,
resampled to the target rate, recognized, and written as
<path>|[LANG] text [LANG] when its detected language is in the configured set.

Progress is checkpointed every checkpoint.save_interval clips; rerunning the
command resumes from the newest checkpoint and skips clips already recorded.

Examples:
  voiceprep transcribe                 # First speaker directory
  voiceprep transcribe alice           # Specific speaker
  voiceprep transcribe --languages CJ  # Chinese and Japanese only`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if len(args) > 0 {
				cfg.Paths.Speaker = strings.TrimSpace(args[0])
			}
			if cmd.Flags().Changed("engine") {
				cfg.Transcribe.Engine = strings.ToLower(strings.TrimSpace(engine))
			}
			if cmd.Flags().Changed("languages") {
				cfg.Transcribe.Languages = strings.TrimSpace(languages)
			}
			if cmd.Flags().Changed("keep-resampled") {
				cfg.Transcribe.KeepResampled = keepResampled
			}
			if err := cfg.ValidateTranscribe(); err != nil {
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
				if err := checkTranscribeReadiness(cmd.ErrOrStderr(), cfg, preflight.RunTranscribe(runCtx, cfg)); err != nil {
					return err
				}
			}

			opts, err := transcription.OptionsFromConfig(cfg)
			if err != nil {
				return err
			}
			runCtx = services.WithSpeaker(runCtx, filepath.Base(opts.SpeakerDir))

			recognizer, err := transcription.NewRecognizer(cfg)
			if err != nil {
				return err
			}
			ffprobe := deps.ResolveFFprobe(cfg.FFmpegBinary(), cfg.FFprobeBinary())
			toolkit := audio.NewToolkit(cfg.FFmpegBinary(), ffprobe.Command)
			store := checkpoint.New(cfg.Paths.CheckpointDir, cfg.Checkpoint.Prefix, cfg.Checkpoint.Keep, logger)
			recorder := metrics.New()

			job, err := transcription.NewJob(opts, recognizer, toolkit, store, logger,
				transcription.WithMetrics(recorder),
				transcription.WithProgress(transcription.NewProgress(cmd.ErrOrStderr(), logger)),
			)
			if err != nil {
				return err
			}

			summary, runErr := job.Run(runCtx)
			writeMetrics(logger, recorder, cfg.Metrics.TextfilePath)
			printTranscribeSummary(cmd.OutOrStdout(), opts, summary)
			return runErr
		},
	}

	cmd.Flags().StringVar(&engine, "engine", "", "Override transcribe.engine (whisperx, openai)")
	cmd.Flags().StringVar(&languages, "languages", "", "Override transcribe.languages (CJE, CJ, C or zh,ja,...)")
	cmd.Flags().BoolVar(&keepResampled, "keep-resampled", false, "Keep resampled clips as processed_<name>.wav")
	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Skip directory, disk space and dependency checks")
	return cmd
}

func checkTranscribeReadiness(out io.Writer, cfg *config.Config, results []preflight.Result) error {
	for _, status := range deps.Missing(preflight.CheckSystemDeps(cfg)) {
		results = append(results, preflight.Result{Name: status.Name, Detail: depDetail(status)})
	}
	return reportPreflight(out, results)
}

func printTranscribeSummary(out io.Writer, opts transcription.Options, summary transcription.Summary) {
	rows := [][]string{
		{"Speaker directory", opts.SpeakerDir},
		{"Candidate clips", strconv.Itoa(summary.Total)},
		{"Transcribed", strconv.Itoa(summary.Processed)},
		{"Resumed from checkpoint", strconv.Itoa(summary.Resumed)},
		{"Too long", strconv.Itoa(summary.TooLong)},
		{"Unsupported language", strconv.Itoa(summary.Unsupported)},
		{"Failed", strconv.Itoa(summary.Failed)},
		{"Ignored processed_ copies", strconv.Itoa(summary.Skipped)},
		{"Records written", strconv.Itoa(summary.Records)},
	}
	if summary.Checkpoint != "" {
		rows = append(rows, []string{"Last checkpoint", summary.Checkpoint})
	}
	fmt.Fprintln(out, renderTable([]string{"Transcription", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
}

func writeMetrics(logger *slog.Logger, recorder *metrics.Recorder, path string) {
	if strings.TrimSpace(path) == "" {
		return
	}
	if err := recorder.WriteTextfile(path); err != nil {
		logging.WarnWithContext(logger, "metrics textfile write failed", "metrics_write_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check metrics.textfile_path permissions"),
			logging.String(logging.FieldImpact, "job counters were not exported"),
		)
	}
}
