package importer

// maxResultErrors caps the error list carried in an ImportResult.
const maxResultErrors = 10

// ImportResult is the immutable summary of one import run. It is returned
// to the caller and written to the audit log; partial per-series failures
// surface as a non-zero FailedImports with the run still succeeding.
type ImportResult struct {
	Source            string   `json:"source"`
	TotalSeries       int      `json:"totalSeries"`
	TotalIndicators   int      `json:"totalIndicators"`
	TotalObservations int      `json:"totalObservations"`
	SuccessfulImports int      `json:"successfulImports"`
	FailedImports     int      `json:"failedImports"`
	TotalInserted     int      `json:"totalInserted"`
	TotalUpdated      int      `json:"totalUpdated"`
	TotalSkipped      int      `json:"totalSkipped"`
	Errors            []string `json:"errors,omitempty"`
	TruncatedErrors   int      `json:"truncatedErrors,omitempty"`
}

// AddError appends to the capped error list; overflow only bumps the
// truncation counter.
func (r *ImportResult) AddError(msg string) {
	if len(r.Errors) >= maxResultErrors {
		r.TruncatedErrors++
		return
	}
	r.Errors = append(r.Errors, msg)
}
