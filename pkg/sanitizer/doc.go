// Package sanitizer normalizes user input before validation and storage.
//
// All normalization functions are idempotent - applying them multiple times produces
// the same result. Input that cannot be normalized is returned trimmed rather than
// dropped, so the validators still see what the user typed and can report it.
//
// Normalization includes:
//   - Strings: Collapse whitespace, trim leading/trailing spaces
//   - Emails: Trim and lowercase
//   - Phone numbers: Convert valid numbers to E.164 format (+[country][number])
//   - Bookings: Apply the above to every booking field
package sanitizer
