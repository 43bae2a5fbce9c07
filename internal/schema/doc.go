// Package schema defines the on-disk JSON schemas for slate board documents.
//
// # Overview
//
// A board is one independent canvas workspace. Each board is stored as a
// single JSON document in boards/{id}.json, with a registry of all boards in
// index.json and shared settings in settings.json. The schema evolves across
// app releases, so decoding must tolerate documents written by any earlier
// release without losing data.
//
// # Schema Evolution Rules
//
//   - Every field added after the initial release decodes as optional and
//     falls back to a named default (see DefaultBoardDocument), never to an
//     inferred zero value.
//   - Encoding always emits the full current schema, so decode-then-encode
//     upgrades an old document in place.
//   - A field that used to hold a single value and now holds a list decodes
//     from either shape; the list form wins when both are present.
//   - Malformed top-level structure is a hard decode failure. A missing
//     optional field never is.
//
// # Decoding Mechanics
//
// DecodeBoard splits the document into raw fields and overlays the fields
// that are present onto a fully-defaulted document, driven by the boardFields
// table. Adding a schema field means one table row and one default; there is
// no per-release decode path.
//
// # Example Document
//
//	{
//	  "id": "8a6f…",
//	  "title": "Research",
//	  "entries": { "e1": { "id": "e1", "kind": "text", … } },
//	  "z_order": ["e1"],
//	  "memories": [ { "id": "m1", "category": "long-term", … } ],
//	  …
//	}
//
// # See Also
//
//   - internal/store - atomic persistence of these documents
//   - internal/migrate - one-time conversion of the legacy single-board layout
package schema
