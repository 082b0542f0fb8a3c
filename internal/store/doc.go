// Package store provides the in-memory record container for rolodex.
//
// The store keeps two structures that are always mutated together:
//   - records: ordered slice, insertion order preserved, the
//     authoritative "table" contents and listing order
//   - index: map from serial id to record, derived data enabling
//     constant-time lookup, update, and delete by id
//
// # Critical Patterns
//
// CP-1: Two-Structure Atomicity
//   - Every operation either updates records and index together or
//     leaves both untouched. No error path may leave them disagreeing.
//
// CP-2: Identity Is the Serial
//   - A record's id never changes after insertion. Update replaces the
//     record value in place and reindexes in the same step; it never
//     accepts an id change.
//
// CP-3: Absence vs Precondition Violation
//   - Find returns (nil, false) for a missing id: absence is a normal,
//     expected outcome. Update and Delete on a missing id return
//     NotFoundError: those operations state a precondition.
//
// The store never prints or logs; all user-facing reporting is the
// caller's job.
package store
