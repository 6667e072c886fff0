package types

// Result holds the outcome of a completed optimization run.
type Result struct {
	// Document is the rebuilt document, same paragraph count as the input.
	Document *Document `json:"-"`
	// KeywordsAdded is the total number of keyword insertions performed.
	KeywordsAdded int `json:"keywords_added"`
	// InsertedKeywords lists the inserted keywords in insertion order.
	InsertedKeywords []string `json:"inserted_keywords,omitempty"`
	// OutputPath is where the rebuilt document was written, if requested.
	OutputPath string `json:"output_path,omitempty"`
}
