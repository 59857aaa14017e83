// Package service contains the lesson generation use cases. It coordinates the
// content generator, the record stores (internal/store) and the media side paths
// without depending on any concrete infrastructure.
//
// The central type is LessonOrchestrator, which turns a student's question into a
// persisted lesson with a quiz worksheet and flashcards. Each generation operation
// carries a FailurePolicy: FailSoft operations degrade (a canned fallback lesson,
// or no audio) while FailLoud operations return the first error.
//
// The remaining services expose the CRUD surface over lessons and their
// materials. Writes that touch a lesson invalidate its cached materials.
package service
