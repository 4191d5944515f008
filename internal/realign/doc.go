// Package realign replaces noisy transcriptions with the closest sentence
// from a canonical reference script.
//
// For each annotation record the first language-tagged span is extracted and
// fuzzy-matched against the reference sentences. A match is accepted only
// when it scores at least MinScore and is not much shorter than the query
// (MinLengthRatio), which guards against short reference lines that happen
// to appear inside a long transcription. Rejected spans keep their original
// text and are appended to a mismatch log for manual review.
package realign
