// Package preflight provides readiness checks for the filesystem paths,
// binaries and endpoints that voiceprep depends on.
//
// These checks run in two contexts:
//   - The transcribe and realign commands call RunTranscribe / RunRealign
//     before starting. If any check fails, the command stops instead of
//     failing halfway through a long run.
//   - The "voiceprep deps" command renders CheckSystemDeps and
//     CheckEngineFromConfig as a status table.
//
// Engine checks are gated by the configured engine.
package preflight
