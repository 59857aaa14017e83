// Package generation provides interfaces and implementations for interacting
// with external AI/LLM services for content generation. It abstracts the
// details of LLM API integration (Gemini, OpenAI-compatible endpoints) behind
// the ContentGenerator interface, and builds on it the typed operations used to
// produce lessons, quizzes, flashcards, worksheets and diagram prompts.
//
// Structured replies are extracted from free text, parsed, and validated
// against JSON schemas before they are decoded into Go types.
package generation
