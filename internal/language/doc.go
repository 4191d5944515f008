// Package language normalizes language codes and maps detected languages to
// the bracket tokens ([ZH], [JA], [EN]) that tag annotation text.
//
// Recognizers report languages in several shapes (ISO 639-1 codes, BCP 47
// tags such as zh-CN, or English words such as "chinese"); ToISO2 reduces all
// of them to one short code so the token lookup has a single key space.
package language
