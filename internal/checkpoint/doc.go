// Package checkpoint persists rotating snapshots of accumulated annotation
// records so an interrupted transcription run can resume where it stopped.
//
// Snapshots are named <prefix><count>.txt where count is the number of
// records they hold. Only the newest Keep snapshots survive a Save, which
// bounds disk usage on long runs. A lock file in the checkpoint directory
// keeps two runs from interleaving writes.
package checkpoint
