package realign

import (
	"context"
	"fmt"
	"log/slog"

	"voiceprep/internal/annotation"
	"voiceprep/internal/config"
	"voiceprep/internal/fuzzy"
	"voiceprep/internal/logging"
	"voiceprep/internal/metrics"
	"voiceprep/internal/reference"
	"voiceprep/internal/services"
)

// Options configures a realignment run.
type Options struct {
	InputPath  string
	OutputPath string
	Thresholds Thresholds
	// Scorer defaults to fuzzy.WRatio.
	Scorer fuzzy.Scorer
}

// Summary counts realignment decisions.
type Summary struct {
	Total      int
	Matched    int
	Rejected   int
	Untagged   int
	Mismatches []Mismatch
}

// Job realigns one annotation file against a reference table.
type Job struct {
	opts     Options
	table    reference.Table
	mismatch *MismatchLog
	metrics  *metrics.Recorder
	logger   *slog.Logger
}

// NewJob assembles a job. mismatch may be nil to discard review entries.
func NewJob(opts Options, table reference.Table, mismatch *MismatchLog, recorder *metrics.Recorder, logger *slog.Logger) *Job {
	if opts.Scorer == nil {
		opts.Scorer = fuzzy.WRatio
	}
	if mismatch == nil {
		mismatch = NewMismatchLog(nil)
	}
	return &Job{
		opts:     opts,
		table:    table,
		mismatch: mismatch,
		metrics:  recorder,
		logger:   logging.NewComponentLogger(logger, "realign"),
	}
}

// OptionsFromConfig maps the [realign] section onto Options.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	scorer, err := fuzzy.ScorerByName(cfg.Realign.Scorer)
	if err != nil {
		return Options{}, services.Wrap(services.ErrConfiguration, "realign", "scorer", cfg.Realign.Scorer, err)
	}
	if cfg.Realign.Normalize {
		scorer = fuzzy.WithNormalization(scorer)
	}
	return Options{
		InputPath:  cfg.RealignInput(),
		OutputPath: cfg.Realign.OutputFile,
		Thresholds: Thresholds{
			MinScore:       cfg.Realign.MinScore,
			MinLengthRatio: cfg.Realign.MinLengthRatio,
		},
		Scorer: scorer,
	}, nil
}

// Run reads the input annotation file, realigns every record, and writes
// the output file.
func (j *Job) Run(ctx context.Context) (Summary, error) {
	var summary Summary
	ctx = services.WithStage(ctx, "realign")
	logger := logging.WithContext(ctx, j.logger)

	records, err := annotation.ReadFile(j.opts.InputPath)
	if err != nil {
		return summary, services.Wrap(services.ErrValidation, "realign", "read annotations", j.opts.InputPath, err)
	}
	if j.table.Len() == 0 {
		logging.WarnWithContext(logger, "reference table is empty", "reference_empty",
			logging.String(logging.FieldErrorHint, "check realign.reference_file"),
			logging.String(logging.FieldImpact, "every tagged record will be rejected"),
		)
	}

	logger.Info("realignment started",
		logging.String("input", j.opts.InputPath),
		logging.Int("records", len(records)),
		logging.Int("reference_rows", j.table.Len()),
		logging.Float64("min_score", j.opts.Thresholds.MinScore),
		logging.Float64("min_length_ratio", j.opts.Thresholds.MinLengthRatio),
	)

	sentences := j.table.Sentences()
	aligned := make([]annotation.AlignedRecord, 0, len(records))
	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Total++
		out, result, mismatch := j.alignRecord(record, sentences)
		aligned = append(aligned, out)
		j.metrics.RealignRecord(result)

		switch result {
		case metrics.ResultRejected:
			summary.Rejected++
			summary.Mismatches = append(summary.Mismatches, *mismatch)
			if err := j.mismatch.Append(*mismatch); err != nil {
				return summary, err
			}
			logger.Debug("match rejected",
				logging.String(logging.FieldFile, record.Path),
				logging.String("content", mismatch.Content),
				logging.String("match", mismatch.Match),
				logging.Float64("score", mismatch.Score),
				logging.String("reason", mismatch.Reason),
			)
		case metrics.ResultUntagged:
			summary.Untagged++
		default:
			summary.Matched++
		}
	}

	if err := annotation.WriteAlignedFile(j.opts.OutputPath, aligned); err != nil {
		return summary, fmt.Errorf("write realigned file: %w", err)
	}

	logger.Info("realignment completed",
		logging.String(logging.FieldEventType, "run_completed"),
		logging.Int("total", summary.Total),
		logging.Int("matched", summary.Matched),
		logging.Int("rejected", summary.Rejected),
		logging.Int("untagged", summary.Untagged),
		logging.String("output", j.opts.OutputPath),
	)
	return summary, nil
}

// alignRecord returns the output record and its outcome (one of the
// metrics.Result* realign values). Rejections also return the mismatch.
func (j *Job) alignRecord(record annotation.Record, sentences []string) (annotation.AlignedRecord, string, *Mismatch) {
	span, ok := annotation.ExtractSpan(record.Text)
	if !ok {
		return annotation.AlignedRecord{Path: record.Path, Text: record.Text}, metrics.ResultUntagged, nil
	}

	match, found := fuzzy.ExtractOne(span.Content, sentences, j.opts.Thresholds.MinScore, j.opts.Scorer)
	if found && j.opts.Thresholds.Accept(span.Content, match.Text, match.Score) {
		return annotation.AlignedRecord{
			Path:      record.Path,
			Character: j.table.Rows[match.Index].Character,
			Text:      span.Wrap(match.Text),
		}, metrics.ResultMatched, nil
	}

	reason := ReasonLengthRatio
	switch {
	case match.Index < 0:
		reason = ReasonNoReference
	case !found:
		reason = ReasonBelowMinScore
	}
	return annotation.AlignedRecord{Path: record.Path, Text: span.Wrap(span.Content)}, metrics.ResultRejected, &Mismatch{
		Path:    record.Path,
		Content: span.Content,
		Match:   match.Text,
		Score:   match.Score,
		Reason:  reason,
	}
}
