package model

// BatchItem is the outcome for one URL of a batch.
type BatchItem struct {
	// URL is the start URL as supplied by the caller.
	URL string `json:"url"`

	Success bool              `json:"success"`
	Data    *AggregatedResult `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// BatchResult is the outcome of a batch of crawls.
type BatchResult struct {
	Total      int         `json:"total"`
	Successful int         `json:"successful"`
	Results    []BatchItem `json:"results"`
}

// NewBatchResult pairs each URL with its result. urls and results must
// have the same length. Data is only set for successful crawls.
func NewBatchResult(urls []string, results []*AggregatedResult) *BatchResult {
	b := &BatchResult{
		Total:   len(urls),
		Results: make([]BatchItem, len(urls)),
	}

	for i, u := range urls {
		item := BatchItem{URL: u}
		if i < len(results) && results[i] != nil {
			r := results[i]
			item.Success = r.Success
			if r.Success {
				item.Data = r
			} else {
				item.Error = r.Error
			}
		}
		if item.Success {
			b.Successful++
		}
		b.Results[i] = item
	}

	return b
}
