// Package api is the HTTP surface of the lesson service. Handlers decode and
// validate JSON requests, call the application services and map their errors
// onto status codes with client-safe messages. Raw errors are only logged,
// and only after redaction.
package api
