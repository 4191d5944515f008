// Package openai calls an OpenAI-compatible /audio/transcriptions endpoint
// as a speech recognition engine.
//
// Requests use response_format=verbose_json so the reply carries the detected
// language, which the API reports as an English word ("chinese") and this
// package normalizes to an ISO 639-1 code. Any server that speaks the same
// API (faster-whisper-server, LocalAI, vLLM) works through WithBaseURL.
package openai
