// Package ratelimit enforces a sliding-window request limit per credential.
//
// The limit is computed fresh on every check by counting the credential's
// rows in the request log within the trailing window; no counter or bucket
// state is kept in memory. Two tiers exist: base and elevated, the latter a
// fixed multiple of the base limit and shared by all paid plans.
//
// If the count query fails the limiter fails open, allowing the request and
// logging the error. The fiber middleware sets the X-RateLimit-Limit,
// X-RateLimit-Remaining and X-RateLimit-Reset headers, answers 429 on a
// denied request, and appends every request to the log asynchronously.
package ratelimit
