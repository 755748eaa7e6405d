package fred

// observationsResponse is the series/observations envelope.
type observationsResponse struct {
	Observations []observation `json:"observations"`
}

// observation dates are period start dates; a value of "." marks a period
// the provider has no data for.
type observation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}
