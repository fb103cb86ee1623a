// Package event provides the event record types for aftershock and the
// temporal normalizer that turns raw catalog rows into sorted events.
//
// This package is the foundation layer. Other internal packages import
// event; event imports nothing internal.
//
// Key constraints:
//   - Instants are timezone-naive and carried as UTC wall-clock values
//   - Rows whose time or magnitude cannot be read are filtered, never fatal
//   - Normalized events are sorted by instant with a stable sort, so rows
//     sharing an instant keep their input order
//   - Source fields are never rewritten; derived values live beside them
package event
