// Package client talks to the remote collaborators of the shell.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract for the chat assistant (see Assistant).
//  2. A concrete implementation over the Gemini generateContent REST API
//     (see GeminiClient) with a configurable endpoint, model, key and
//     timeout.
//
// # Error Handling
//
// Every failure is reported as a *ChatServiceError. Common conditions are
// exposed as sentinel errors that callers can match with errors.Is:
// ErrUnavailable, ErrUnauthorized, ErrEmptyResponse.
//
// Concurrency & Contexts
//
// GeminiClient is safe for concurrent use. All operations accept
// context.Context and honour cancellation and timeouts.
package client
