// Package store persists named workspaces in SQLite.
//
// Each saved workspace is an exchange.Document serialized as JSON and keyed by
// its name. Saving an existing name replaces it and assigns a fresh revision
// id. Writers from separate processes are serialized through a lock file next
// to the database so read-modify-write cycles never interleave.
package store
