// Package logs tails voiceprep's log files with bounded memory usage.
//
// It backs `voiceprep logs`, which shows the last lines of voiceprep.log or
// the realignment mismatch log and optionally follows them while a long
// transcription runs. Offsets let callers resume where the previous read
// stopped; an offset past the end of the file is treated as a rotation and
// restarts from the beginning.
package logs
