// Package metrics records per-run Prometheus metrics for the batch jobs and
// exports them for the node_exporter textfile collector.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
)

// Transcription file outcomes.
const (
	ResultProcessed   = "processed"
	ResultResumed     = "resumed"
	ResultTooLong     = "too_long"
	ResultUnsupported = "unsupported"
	ResultFailed      = "failed"
)

// Realignment record outcomes.
const (
	ResultMatched  = "matched"
	ResultRejected = "rejected"
	ResultUntagged = "untagged"
)

// Recorder owns a private registry so each run exports only its own series.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	// transcribeFiles counts transcription outcomes per file.
	// Labels:
	//   - result: processed, resumed, too_long, unsupported, failed
	transcribeFiles *prometheus.CounterVec

	// realignRecords counts realignment decisions per annotation record.
	// Labels:
	//   - result: matched, rejected, untagged
	realignRecords *prometheus.CounterVec

	// recognitionDuration records how long one engine call takes.
	// Labels:
	//   - engine: whisperx, openai
	// Buckets: 0.5s, 1s, 2s, 5s, 10s, 30s, 60s, 120s
	recognitionDuration *prometheus.HistogramVec

	checkpointsSaved prometheus.Counter
}

// New creates a recorder with all series registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		transcribeFiles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "voiceprep_transcribe_files_total",
				Help: "Audio files seen by the transcription job, by outcome",
			},
			[]string{"result"},
		),
		realignRecords: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "voiceprep_realign_records_total",
				Help: "Annotation records seen by the realignment job, by outcome",
			},
			[]string{"result"},
		),
		recognitionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "voiceprep_recognition_duration_seconds",
				Help:    "Duration of speech recognition calls in seconds",
				Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"engine"},
		),
		checkpointsSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voiceprep_checkpoints_saved_total",
			Help: "Checkpoint snapshots written by the transcription job",
		}),
	}
	r.registry.MustRegister(r.transcribeFiles, r.realignRecords, r.recognitionDuration, r.checkpointsSaved)
	return r
}

// Registry exposes the underlying registry (for tests and custom exporters).
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// TranscribeFile records one transcription outcome.
func (r *Recorder) TranscribeFile(result string) {
	if r == nil {
		return
	}
	r.transcribeFiles.WithLabelValues(result).Inc()
}

// RealignRecord records one realignment outcome.
func (r *Recorder) RealignRecord(result string) {
	if r == nil {
		return
	}
	r.realignRecords.WithLabelValues(result).Inc()
}

// ObserveRecognition records the duration of one recognition call.
func (r *Recorder) ObserveRecognition(engine string, seconds float64) {
	if r == nil {
		return
	}
	r.recognitionDuration.WithLabelValues(engine).Observe(seconds)
}

// CheckpointSaved counts a checkpoint write.
func (r *Recorder) CheckpointSaved() {
	if r == nil {
		return
	}
	r.checkpointsSaved.Inc()
}

// WriteTextfile writes the registry in text exposition format. An empty
// path is a no-op.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
