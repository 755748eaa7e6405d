package ecb

// sdmxResponse is the subset of an SDMX-JSON data message the adapter
// consumes: one data set of keyed series, with observation periods carried
// in the structure block.
type sdmxResponse struct {
	DataSets  []dataSet `json:"dataSets"`
	Structure structure `json:"structure"`
}

type dataSet struct {
	Series map[string]seriesEntry `json:"series"`
}

// seriesEntry observations map observation index to [value, status...].
type seriesEntry struct {
	Observations map[string][]any `json:"observations"`
}

type structure struct {
	Dimensions struct {
		Observation []dimension `json:"observation"`
	} `json:"dimensions"`
}

type dimension struct {
	ID     string           `json:"id"`
	Values []dimensionValue `json:"values"`
}

type dimensionValue struct {
	ID string `json:"id"`
}
