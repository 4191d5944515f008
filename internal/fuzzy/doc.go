// Package fuzzy scores string similarity on a 0..100 scale and picks the
// best candidate from a list.
//
// The scorers follow the familiar ratio family: Ratio is the normalized
// indel similarity built on the longest common subsequence, PartialRatio
// compares the shorter string against windows of the longer one, the token
// scorers ignore word order or duplicated words, and WRatio blends them
// according to the length difference. All lengths are counted in runes so
// CJK text scores the same way as Latin text.
package fuzzy
