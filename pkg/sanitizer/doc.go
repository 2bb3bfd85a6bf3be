// Package sanitizer normalizes user-supplied text before validation and
// storage.
//
// Every function is idempotent: applying it twice yields the same result.
// Invalid input is returned trimmed but otherwise untouched so that the
// validator, not the sanitizer, decides whether it is acceptable.
//
// Normalization includes:
//   - Names, titles, addresses: collapse whitespace, trim
//   - Emails: trim, lowercase
//   - Phone numbers: E.164 (+[country][number]) when the number parses
//   - Slices: drop duplicates and empty values after normalization
package sanitizer
