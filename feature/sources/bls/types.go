package bls

// seriesRequest is the POST body for the timeseries endpoint.
type seriesRequest struct {
	SeriesID        []string `json:"seriesid"`
	StartYear       string   `json:"startyear,omitempty"`
	EndYear         string   `json:"endyear,omitempty"`
	RegistrationKey string   `json:"registrationkey,omitempty"`
}

// apiResponse is the provider's envelope. Status is "REQUEST_SUCCEEDED" on
// success; anything else carries human-readable messages.
type apiResponse struct {
	Status  string   `json:"status"`
	Message []string `json:"message"`
	Results struct {
		Series []seriesData `json:"series"`
	} `json:"Results"`
}

type seriesData struct {
	SeriesID string        `json:"seriesID"`
	Data     []observation `json:"data"`
}

// observation periods follow the provider convention: M01-M12 monthly,
// M13 annual average, Q01-Q04 quarterly, A01 annual.
type observation struct {
	Year   string `json:"year"`
	Period string `json:"period"`
	Value  string `json:"value"`
}
