// Package transcription implements the batch transcription job.
//
// A run walks one speaker directory in lexical order, skips files already
// present in the newest checkpoint, and for every remaining clip probes its
// duration, resamples it to the model's rate, recognizes language and text,
// and appends a language-tagged annotation record. Snapshots are written
// every SaveInterval new records and again at the end, when the complete
// annotation file is also written. Failures on one clip are logged and
// counted without stopping the run; configuration errors and cancellation
// stop it after a final checkpoint.
package transcription
