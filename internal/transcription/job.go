package transcription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"voiceprep/internal/annotation"
	"voiceprep/internal/checkpoint"
	"voiceprep/internal/fileutil"
	"voiceprep/internal/language"
	"voiceprep/internal/logging"
	"voiceprep/internal/media/ffprobe"
	"voiceprep/internal/metrics"
	"voiceprep/internal/services"
	"voiceprep/internal/speech"
)

// Media probes and resamples source clips.
type Media interface {
	Probe(ctx context.Context, path string) (ffprobe.Result, error)
	Resample(ctx context.Context, source, dest string, rate int) error
}

// Options configures a transcription run.
type Options struct {
	// SpeakerDir holds the clips to transcribe.
	SpeakerDir string
	// OutputPath receives the complete annotation file at the end of a run.
	OutputPath string
	// ScratchDir holds temporary resampled audio. Empty uses the system temp dir.
	ScratchDir string
	SampleRate int
	// MaxDurationSeconds skips longer clips; 0 disables the check.
	MaxDurationSeconds float64
	// KeepResampled moves each resampled clip next to its source as
	// processed_<stem>.wav and records that path instead.
	KeepResampled bool
	SaveInterval  int
	Languages     language.TokenSet
}

// Summary counts the outcome of every clip seen by a run.
type Summary struct {
	// Total is the number of candidate clips (processed_ copies excluded).
	Total int
	// Processed clips produced a new record in this run.
	Processed int
	// Resumed clips were already present in the checkpoint.
	Resumed int
	// Skipped counts processed_ copies ignored in the speaker directory.
	Skipped     int
	TooLong     int
	Unsupported int
	Failed      int
	// Records is the size of the final annotation set.
	Records    int
	Checkpoint string
}

type outcome int

const (
	outcomeProcessed outcome = iota
	outcomeTooLong
	outcomeUnsupported
)

// Job transcribes one speaker directory.
type Job struct {
	opts       Options
	recognizer speech.Recognizer
	media      Media
	store      *checkpoint.Store
	metrics    *metrics.Recorder
	progress   Progress
	logger     *slog.Logger
}

// Option customizes a Job.
type Option func(*Job)

// WithMetrics attaches a metrics recorder.
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(j *Job) { j.metrics = recorder }
}

// WithProgress sets the progress reporter.
func WithProgress(progress Progress) Option {
	return func(j *Job) {
		if progress != nil {
			j.progress = progress
		}
	}
}

// NewJob validates options and assembles a job.
func NewJob(opts Options, recognizer speech.Recognizer, media Media, store *checkpoint.Store, logger *slog.Logger, options ...Option) (*Job, error) {
	switch {
	case recognizer == nil:
		return nil, services.Wrap(services.ErrConfiguration, "transcribe", "init", "recognizer required", nil)
	case media == nil:
		return nil, services.Wrap(services.ErrConfiguration, "transcribe", "init", "media toolkit required", nil)
	case store == nil:
		return nil, services.Wrap(services.ErrConfiguration, "transcribe", "init", "checkpoint store required", nil)
	case opts.SpeakerDir == "":
		return nil, services.Wrap(services.ErrConfiguration, "transcribe", "init", "speaker directory required", nil)
	case opts.SampleRate <= 0:
		return nil, services.Wrap(services.ErrConfiguration, "transcribe", "init", fmt.Sprintf("invalid sample rate %d", opts.SampleRate), nil)
	case len(opts.Languages.Languages()) == 0:
		return nil, services.Wrap(services.ErrConfiguration, "transcribe", "init", "no supported languages", nil)
	}
	if opts.SaveInterval <= 0 {
		opts.SaveInterval = 1
	}
	job := &Job{
		opts:       opts,
		recognizer: recognizer,
		media:      media,
		store:      store,
		progress:   noopProgress{},
		logger:     logging.NewComponentLogger(logger, "transcribe"),
	}
	for _, opt := range options {
		opt(job)
	}
	return job, nil
}

// Run transcribes every pending clip. The returned summary is valid even
// when an error is returned.
func (j *Job) Run(ctx context.Context) (Summary, error) {
	var summary Summary
	started := time.Now()
	ctx = services.WithStage(ctx, "transcribe")
	logger := logging.WithContext(ctx, j.logger)

	if err := j.store.Lock(); err != nil {
		return summary, err
	}
	defer func() {
		if err := j.store.Unlock(); err != nil {
			logger.Warn("release checkpoint lock failed", logging.Error(err))
		}
	}()

	files, skipped, err := ListAudio(j.opts.SpeakerDir)
	if err != nil {
		return summary, services.Wrap(services.ErrNotFound, "transcribe", "list audio", j.opts.SpeakerDir, err)
	}
	summary.Total = len(files)
	summary.Skipped = skipped

	records, resumedFrom, err := j.store.Resume()
	if err != nil {
		return summary, err
	}
	done := annotation.PathSet(records)

	logger.Info("transcription started",
		logging.String("speaker_dir", j.opts.SpeakerDir),
		logging.Int("files", len(files)),
		logging.Int("resumed_records", len(records)),
		logging.String("checkpoint", resumedFrom.Path),
		logging.String("engine", j.recognizer.Name()),
		logging.Int("sample_rate", j.opts.SampleRate),
		logging.String("languages", j.opts.Languages.String()),
	)

	unsaved := 0
	save := func() error {
		info, err := j.store.Save(records)
		if err != nil {
			return err
		}
		unsaved = 0
		summary.Checkpoint = info.Path
		j.metrics.CheckpointSaved()
		return nil
	}

	j.progress.Start(len(files))
	defer j.progress.Finish()

	var runErr error
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		if isDone(done, path) {
			summary.Resumed++
			j.metrics.TranscribeFile(metrics.ResultResumed)
			j.progress.Advance()
			continue
		}

		record, result, err := j.processFile(ctx, path)
		j.progress.Advance()
		if err != nil {
			if ctx.Err() != nil {
				runErr = ctx.Err()
				break
			}
			if services.IsFatal(err) {
				runErr = err
				break
			}
			summary.Failed++
			j.metrics.TranscribeFile(metrics.ResultFailed)
			hint := services.Hint(err)
			if hint == "" {
				hint = "check the clip with ffprobe or rerun with --log-level debug"
			}
			logging.WarnWithContext(logger, "transcription failed; skipping file", "file_failed",
				logging.String(logging.FieldFile, path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, hint),
				logging.String(logging.FieldImpact, "file left out of the annotation set"),
			)
			continue
		}

		switch result {
		case outcomeTooLong:
			summary.TooLong++
			j.metrics.TranscribeFile(metrics.ResultTooLong)
		case outcomeUnsupported:
			summary.Unsupported++
			j.metrics.TranscribeFile(metrics.ResultUnsupported)
		case outcomeProcessed:
			records = append(records, record)
			done[record.Path] = struct{}{}
			summary.Processed++
			unsaved++
			j.metrics.TranscribeFile(metrics.ResultProcessed)
			if unsaved >= j.opts.SaveInterval {
				if err := save(); err != nil {
					runErr = err
				}
			}
		}
		if runErr != nil {
			break
		}
	}

	if unsaved > 0 {
		if err := save(); err != nil && runErr == nil {
			runErr = err
		}
	}
	summary.Records = len(records)

	if runErr != nil {
		logging.ErrorWithContext(logger, "transcription stopped", "run_aborted",
			logging.Error(runErr),
			logging.String(logging.FieldErrorHint, "rerun the command to resume from the last checkpoint"),
			logging.Int("processed", summary.Processed),
			logging.String("checkpoint", summary.Checkpoint),
		)
		return summary, runErr
	}

	if j.opts.OutputPath != "" {
		if err := annotation.WriteFile(j.opts.OutputPath, records); err != nil {
			return summary, fmt.Errorf("write annotation file: %w", err)
		}
	}

	logger.Info("transcription completed",
		logging.String(logging.FieldEventType, "run_completed"),
		logging.Int("total", summary.Total),
		logging.Int("processed", summary.Processed),
		logging.Int("resumed", summary.Resumed),
		logging.Int("too_long", summary.TooLong),
		logging.Int("unsupported", summary.Unsupported),
		logging.Int("failed", summary.Failed),
		logging.String("output", j.opts.OutputPath),
		logging.Duration("elapsed", time.Since(started)),
	)
	return summary, nil
}

func (j *Job) processFile(ctx context.Context, path string) (annotation.Record, outcome, error) {
	logger := j.logger.With(logging.String(logging.FieldFile, path))

	probe, err := j.media.Probe(ctx, path)
	if err != nil {
		if ctx.Err() != nil {
			return annotation.Record{}, 0, ctx.Err()
		}
		return annotation.Record{}, 0, services.Wrap(services.ErrExternalTool, "transcribe", "probe", path, err)
	}
	if probe.AudioStreamCount() == 0 {
		return annotation.Record{}, 0, services.Wrap(services.ErrValidation, "transcribe", "probe", path+": no audio stream", nil)
	}
	duration := probe.DurationSeconds()
	if j.opts.MaxDurationSeconds > 0 && !math.IsNaN(duration) && duration > j.opts.MaxDurationSeconds {
		logger.Info("clip too long; skipping",
			logging.String(logging.FieldEventType, "file_too_long"),
			logging.Float64("duration_seconds", duration),
			logging.Float64("max_seconds", j.opts.MaxDurationSeconds),
		)
		return annotation.Record{}, outcomeTooLong, nil
	}

	scratch, err := j.scratchFile()
	if err != nil {
		return annotation.Record{}, 0, err
	}
	defer os.Remove(scratch)

	if err := j.media.Resample(ctx, path, scratch, j.opts.SampleRate); err != nil {
		if ctx.Err() != nil {
			return annotation.Record{}, 0, ctx.Err()
		}
		return annotation.Record{}, 0, services.Wrap(services.ErrExternalTool, "transcribe", "resample", path, err)
	}

	started := time.Now()
	recognition, err := j.recognizer.Recognize(ctx, scratch)
	j.metrics.ObserveRecognition(j.recognizer.Name(), time.Since(started).Seconds())
	if err != nil {
		return annotation.Record{}, 0, err
	}

	lang := recognition.DetectedLanguage()
	token, ok := j.opts.Languages.Token(lang)
	if !ok {
		logger.Info("unsupported language; skipping",
			logging.String(logging.FieldEventType, "file_unsupported_language"),
			logging.String("language", lang),
			logging.String("language_name", language.DisplayName(lang)),
		)
		return annotation.Record{}, outcomeUnsupported, nil
	}

	recordPath := path
	if j.opts.KeepResampled {
		recordPath = ProcessedPath(path)
		if err := fileutil.MoveFile(scratch, recordPath); err != nil {
			return annotation.Record{}, 0, fmt.Errorf("keep resampled audio: %w", err)
		}
	}

	text := recognition.TrimmedText()
	logger.Debug("clip transcribed",
		logging.String("language", lang),
		logging.Float64("duration_seconds", duration),
		logging.Int("size_bytes", int(probe.SizeBytes())),
		logging.Int("source_sample_rate", probe.AudioSampleRate()),
		logging.String("text", text),
	)
	return annotation.Record{Path: recordPath, Text: annotation.Tag(token, text)}, outcomeProcessed, nil
}

func (j *Job) scratchFile() (string, error) {
	if j.opts.ScratchDir != "" {
		if err := os.MkdirAll(j.opts.ScratchDir, 0o755); err != nil {
			return "", fmt.Errorf("ensure scratch dir: %w", err)
		}
	}
	file, err := os.CreateTemp(j.opts.ScratchDir, "voiceprep-*.wav")
	if err != nil {
		return "", fmt.Errorf("create scratch file: %w", err)
	}
	name := file.Name()
	if err := file.Close(); err != nil {
		return "", errors.Join(err, os.Remove(name))
	}
	return name, nil
}

func isDone(done map[string]struct{}, path string) bool {
	if _, ok := done[path]; ok {
		return true
	}
	_, ok := done[ProcessedPath(path)]
	return ok
}
