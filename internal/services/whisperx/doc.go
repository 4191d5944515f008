// Package whisperx runs WhisperX through uvx as a speech recognition engine.
//
// Each call transcribes one WAV file into a private output directory with
// language auto-detection, then reads the language code and segment texts
// from the JSON WhisperX writes. Configuration options (model, CUDA, beam
// width, VAD method) are passed via Config. Tests inject a command runner in
// place of uvx.
package whisperx
