// Package locale maps request locales onto the editor language files that are
// actually available. A Resolver checks candidates against a Languages set
// using either the strict policy (exact file name only) or the fallback
// policy (exact, two-letter base code, then expanded xx_XX codes). Providers
// supply the current request locale.
package locale
