// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to application settings needed by different components while keeping
// configuration details separate from business logic.
//
// Credentials for the external collaborators (content generation, speech
// synthesis, record store) are loaded here but only checked heuristically by
// ValidateCredentials; each collaborator rejects empty credentials on its own.
package config
