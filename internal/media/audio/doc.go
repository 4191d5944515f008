// Package audio prepares source clips for speech recognition.
//
// Toolkit bundles the ffprobe and ffmpeg binaries: Probe reports duration and
// sample rate, and Resample converts a clip to mono 16-bit PCM WAV at the
// model's expected rate. Both commands can be swapped for a stub runner in
// tests.
package audio
