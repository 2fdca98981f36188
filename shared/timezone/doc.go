// Package timezone provides timezone utilities for the application.
//
// Usage Examples:
//
//  1. Current time and calendar date:
//     now := timezone.Now()     // current instant in app timezone
//     today := timezone.Today() // today's date as midnight UTC
//
//  2. Parsing booking dates:
//     d, err := timezone.ParseDate("2024-06-01")
//
// Booking dates carry no time of day. They are kept as midnight UTC everywhere so that a date
// read back from Postgres, Firestore or a request body compares equal. "Today" is decided in the
// application timezone (APP_TIMEZONE) and then expressed the same way.
package timezone
