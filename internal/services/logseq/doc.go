// Package logseq wraps the Logseq CLI: graph discovery and the datalog query
// that pulls pages carrying a Zotero URL property.
//
// This is the only package that sees raw CLI text. Everything downstream
// receives structured NoteReference values, keeping the defensive string
// parsing in one place.
package logseq
