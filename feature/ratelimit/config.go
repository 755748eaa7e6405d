package ratelimit

// Tier names. Every credential is either base or elevated; all paid plans
// share the elevated tier.
const (
	TierBase     = "base"
	TierElevated = "elevated"
)

// Config holds configuration for the rate limiter.
type Config struct {
	// BaseLimit is the number of requests per window for the base tier.
	BaseLimit int `mapstructure:"base_limit" default:"60"`
	// ElevatedMultiplier scales the base limit for the elevated tier.
	ElevatedMultiplier int `mapstructure:"elevated_multiplier" default:"10"`
	// WindowSeconds is the trailing window length.
	WindowSeconds int `mapstructure:"window_seconds" default:"60"`
}

// LimitFor returns the request limit for the given tier name. Unknown tiers
// fall back to the base limit.
func (c Config) LimitFor(tier string) int {
	if tier == TierElevated {
		return c.BaseLimit * c.ElevatedMultiplier
	}
	return c.BaseLimit
}
