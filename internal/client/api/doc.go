// Package api contains the client-side building blocks for talking to the
// account backend.
//
// The package provides:
//  1. A transport-agnostic contract (the Client interface) covering the five
//     backend operations: Register, Login, GetProfile, UpdateProfile, Logout.
//  2. A concrete HTTP implementation (HTTPClient) that attaches the bearer
//     token read through a TokenSource, tags requests with X-Request-Id,
//     normalizes transport and server failures into human-readable errors,
//     and supersedes a still-outstanding register call when a newer one is
//     issued.
//
// Common conditions are exposed as sentinel errors matchable with errors.Is:
// ErrSuperseded, ErrUnauthorized. All operations accept context.Context and
// honor cancellation and timeouts.
package api
