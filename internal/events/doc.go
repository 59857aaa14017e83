// Package events provides a small in-process publish/subscribe mechanism.
//
// Services emit events such as lesson.created without knowing who reacts to
// them; handlers registered on the emitter, like the background media task
// factory, decide what work follows. Delivery is synchronous and in memory:
// nothing is persisted and a failed handler is not retried.
package events
