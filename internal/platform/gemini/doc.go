// Package gemini provides an implementation of the generation.ContentGenerator
// interface backed by Google's Gemini API.
//
// This package is an infrastructure adapter: it translates a generation.Request
// into a single GenerateContent call and maps the SDK's failures onto the
// generation package's sentinel errors. It never retries; the caller's failure
// policy decides what happens next.
package gemini
