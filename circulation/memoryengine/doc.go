// Package memoryengine provides an in-memory implementation of the circulation store.
//
// Transactions are serialized by one mutex and run against a copy of the state that replaces
// the committed state only when the transaction function returns nil. It mirrors the
// constraints of the PostgreSQL schema (foreign keys, unique keys, checks, cascades), so command
// handlers and the HTTP layer can be tested without a database.
package memoryengine
