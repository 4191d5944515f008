// Package annotation models the flat-file records shared by the transcription
// and realignment jobs.
//
// An annotation line associates an audio file with its language-tagged
// transcription (`path|[ZH]text[ZH]`). Realigned output adds the speaking
// character as a middle column (`path|character|text`). Files are always
// rewritten atomically so an interrupted run never leaves a truncated file.
package annotation
