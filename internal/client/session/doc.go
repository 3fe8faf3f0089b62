// Package session holds the signed-in identity of the PhishShield client.
//
// # Overview
//
// Store is the single owner of the current user record and of the bearer
// credential lifecycle. It moves between three states:
//
//	Unauthenticated -> Restoring -> Authenticated   (stored credential accepted)
//	Unauthenticated -> Restoring -> Unauthenticated (credential rejected and discarded)
//	Unauthenticated -> Authenticated                (login or signup)
//	Authenticated   -> Unauthenticated              (logout)
//
// Every operation reports an Outcome (a success flag plus a message to show
// the user) and pushes the same message to the Notifier. Operations never
// return Go errors and never panic.
//
// # Subscribers
//
// Subscribe registers a callback that receives a State snapshot after every
// transition, synchronously and in subscription order, before the operation
// that caused it returns. Callbacks must not call mutating Store methods.
//
// # Concurrency
//
// Store is safe for concurrent use. Identical concurrent mutations share one
// request. A mutation that completes after a Logout that started later is
// discarded, so a slow login can never resurrect a session the user ended.
//
// # Context
//
// NewContext attaches a Store to a context.Context; FromContext retrieves it
// and panics when none is attached.
package session
