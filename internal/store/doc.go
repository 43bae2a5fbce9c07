// Package store persists slate documents on the local file system.
//
// Layout under the data directory:
//
//	index.json       registry of boards and the active board
//	settings.json    shared global settings
//	boards/{id}.json one file per board document
//	assets/{name}    opaque asset files with generated names
//	workspace.json   inert legacy single-board file, if migration ran
//
// Every write goes through writeFileAtomic: content lands in a temp file in
// the destination directory and is renamed into place, so a reader or a
// crash never observes a partial document. There is no inter-process
// locking; a single writer per process is assumed and callers serialize
// writes to one document upstream.
package store
