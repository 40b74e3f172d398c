// Package validation provides the input normalization and validation rules
// applied by every API call site before a request is built.
//
// All predicates are pure and total: they accept raw, possibly absent input
// (nil, nil pointers, numbers where a string is expected) and answer false
// instead of panicking. Normalizers are idempotent.
//
// Rules:
//   - Non-empty: the string form, after trimming, has at least one character
//   - Email: local@domain.tld, local part [A-Za-z0-9._%+-], TLD of 2+ letters
//   - Phone: exactly 11 decimal digits
//   - Password: at least 8 characters and at least one ASCII letter
//   - Color: '#' followed by exactly 6 hex digits
//   - Enums: membership is checked by the stringified key, so 1 and "1" are equivalent
//   - Dates: canonical form is YYYY-MM-DD in local time
//
// Validator wires the same rules into go-playground/validator struct tags.
package validation
