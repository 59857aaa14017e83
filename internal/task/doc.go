// Package task runs background work on a bounded in-memory queue served by a
// fixed pool of workers. Tasks are fire-once: nothing is persisted, a full
// queue rejects new work, and failed tasks are logged rather than retried.
package task
