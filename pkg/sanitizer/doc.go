// Package sanitizer normalizes user input before it is validated and sent.
//
// Every function is idempotent and never fails: input that cannot be
// normalized is returned trimmed so validation can report it.
//
// Normalization includes:
//   - Names: trim and collapse inner whitespace
//   - ID lists: trim, drop empty values and duplicates, keep order
//   - Phone numbers: mainland China numbers in any common form become the 11-digit national number
//   - URLs: lowercase scheme and host, drop the trailing slash and utm_ parameters
package sanitizer
