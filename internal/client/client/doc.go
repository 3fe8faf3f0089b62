// Package client contains the API gateway of the PhishShield client.
//
// # Overview
//
// The package provides:
//  1. APIClient, the single chokepoint for every call to the PhishShield
//     API: login/signup, profile read and update, dashboard, quiz and chat.
//     Every operation returns a Result[T]; transport errors, non-2xx
//     statuses and malformed bodies never escape as Go errors.
//  2. The Transport strategy APIClient talks through. HTTPTransport speaks
//     net/http to a real server; the fixture package provides an in-process
//     implementation serving canned data.
//  3. Credential storage (TokenStore) with an SQLite-backed implementation
//     and an in-memory one for tests and throwaway sessions.
//  4. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Failures are classified into sentinel errors that callers can match with
// errors.Is on Result.Err: ErrUnavailable, ErrUnauthorized, ErrNotFound,
// ErrRequestFailed, ErrMalformedResponse. Result.Error always carries a
// message suitable for display.
//
// Concurrency & Contexts
//
// APIClient and the token stores are safe for concurrent use. All operations
// accept context.Context and honor cancellation; HTTPTransport applies its
// own per-request timeout on top of the caller's deadline.
//
// See Also
//
//   - Gateway:    APIClient
//   - Transports: Transport, HTTPTransport
//   - Tokens:     TokenStore, PersistentTokenStore, MemoryTokenStore
//   - DB helpers: InitDatabase, RunMigrations
package client
