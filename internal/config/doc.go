// Package config loads, normalizes, and validates voiceprep configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// OPENAI_API_KEY and HF_TOKEN. The Config type centralizes every knob the
// transcription and realignment jobs need so both commands resolve audio,
// checkpoint, and output locations in one pass.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
