// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - Auth: Implements API key validation to protect endpoints, and records
//     the presenting credential for downstream middleware.
//   - RayID: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and response headers for tracing.
//
// The rate-limit middleware lives with its feature (feature/ratelimit) since
// it depends on the store; the middleware here is store-free.
package middleware
