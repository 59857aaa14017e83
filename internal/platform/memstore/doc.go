// Package memstore implements the store interfaces in process memory.
// It backs local runs with database.backend=memory and round-trip tests.
// Data is lost when the process exits.
package memstore
