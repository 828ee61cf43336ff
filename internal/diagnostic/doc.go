// Package diagnostic provides structured warnings and notes collected
// while a copy runs.
//
// Key capabilities:
//   - Rollback failures reported without replacing the copy error
//   - Reference-link fallbacks recorded per record and relationship
//   - Rendering into a single human-readable summary
package diagnostic
