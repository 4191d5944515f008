package preflight

import (
	"context"
	"os"
	"path/filepath"

	"voiceprep/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Failed returns the subset of results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

// RunTranscribe executes the checks the transcription job needs.
func RunTranscribe(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryReadable("Audio directory", cfg.Paths.AudioDir))
	results = append(results, CheckDirectoryAccess("Checkpoint directory", cfg.Paths.CheckpointDir))
	results = append(results, CheckDirectoryAccess("Annotation directory", filepath.Dir(cfg.Paths.AnnotationFile)))

	scratch := cfg.Paths.ScratchDir
	if scratch == "" {
		scratch = os.TempDir()
	}
	results = append(results, CheckFreeSpace("Scratch space", scratch, MinScratchFreeBytes))

	if cfg.Transcribe.Engine == "openai" {
		results = append(results, CheckOpenAI(ctx, cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey))
	}

	return results
}

// RunRealign executes the checks the realignment job needs.
func RunRealign(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	return []Result{
		CheckFileReadable("Annotation input", cfg.RealignInput()),
		CheckFileReadable("Reference table", cfg.Realign.ReferenceFile),
		CheckDirectoryAccess("Realign output directory", filepath.Dir(cfg.Realign.OutputFile)),
	}
}
