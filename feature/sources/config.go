package sources

import "time"

// Config holds per-agency credentials and endpoints. Base URLs are
// overridable so adapter tests can point at a local server.
type Config struct {
	// BLSKey is the registration key for the labor statistics API.
	BLSKey string `mapstructure:"bls_key" default:""`
	// BLSBaseURL is the labor statistics API root.
	BLSBaseURL string `mapstructure:"bls_base_url" default:"https://api.bls.gov/publicAPI/v2"`

	// FREDKey is the API key for the federal reserve data API.
	FREDKey string `mapstructure:"fred_key" default:""`
	// FREDBaseURL is the federal reserve data API root.
	FREDBaseURL string `mapstructure:"fred_base_url" default:"https://api.stlouisfed.org/fred"`

	// ECBBaseURL is the central bank SDMX data API root (keyless).
	ECBBaseURL string `mapstructure:"ecb_base_url" default:"https://data-api.ecb.europa.eu/service"`

	// WorldBankBaseURL is the development indicators API root (keyless).
	WorldBankBaseURL string `mapstructure:"worldbank_base_url" default:"https://api.worldbank.org/v2"`

	// IMFBaseURL is the datamapper API root (keyless).
	IMFBaseURL string `mapstructure:"imf_base_url" default:"https://www.imf.org/external/datamapper/api/v1"`

	// InterRequestDelayMS is the pause between consecutive requests to the
	// same provider in multi-series flows.
	InterRequestDelayMS int `mapstructure:"inter_request_delay_ms" default:"300"`

	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Delay returns the inter-request delay as a duration.
func (c Config) Delay() time.Duration {
	if c.InterRequestDelayMS <= 0 {
		return 0
	}
	return time.Duration(c.InterRequestDelayMS) * time.Millisecond
}

// Timeout returns the per-request timeout as a duration.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
