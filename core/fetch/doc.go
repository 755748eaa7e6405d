// Package fetch provides the shared retry utility for external agency calls.
//
// All five source adapters fetch through this package so that retry policy
// lives in exactly one place:
//
//   - Classify: single classifier deciding Retryable vs Terminal. Only
//     TransientSourceError (network failure or 5xx) is retryable; validation
//     failures, configuration problems and 4xx responses are terminal.
//   - Do: the retry loop. Fixed base delay doubling per attempt, capped at
//     MaxRetries (default 3, so 4 total attempts), escalating to
//     ExhaustedRetriesError once the budget is spent.
//   - GetJSON/PostJSON: thin HTTP helpers that map transport outcomes onto
//     the taxonomy before the retry loop ever sees them.
//
// # Usage
//
//	err := fetch.Do(ctx, "bls", fetch.DefaultConfig(), func(ctx context.Context) error {
//	    return fetch.PostJSON(ctx, client, "bls", url, reqBody, &resp)
//	})
package fetch
