// Package boards is the persistence facade for slate: everything callers do
// with board documents goes through Store.
//
// # Overview
//
// Store orchestrates the index, document, asset and settings stores under
// one data directory. Loading always resolves through the index first, which
// triggers the one-time legacy migration when a pre-multi-board
// workspace.json is found without an index.
//
// # Consistency Model
//
// There are no cross-file transactions. Every operation that creates, saves
// or deletes a board updates the index in the same logical step, but a crash
// between the document write and the index write can leave a document
// orphaned and the index stale by one entry. That state is degraded but
// safe: the document is intact, a later Save repairs its index entry, and a
// missing entry only hides the board from listings.
//
// Deleting a board removes only its index entry. The document file and any
// assets it references stay on disk; the app has always retained them and
// this package preserves that behavior.
package boards
