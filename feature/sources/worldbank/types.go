package worldbank

// The provider wraps every response in a two-element JSON array:
// [metadata, rows]. Errors collapse the array to a single element carrying
// a message list, so the envelope is decoded as raw messages first.

type pageMeta struct {
	Page    int `json:"page"`
	Pages   int `json:"pages"`
	PerPage any `json:"per_page"`
	Total   int `json:"total"`
}

type errorMeta struct {
	Message []struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	} `json:"message"`
}

type row struct {
	Indicator struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	} `json:"indicator"`
	Country struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	} `json:"country"`
	CountryCode string `json:"countryiso3code"`
	Date        string `json:"date"`
	Value       any    `json:"value"`
	Unit        string `json:"unit"`
}
