// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// Materials reference their lesson by ID only. No store enforces that the
// lesson still exists, so readers must tolerate dangling references.
package store
