package domain

// Suggestion is a single candidate returned by the suggestion endpoint
type Suggestion struct {
	Query       string `json:"query"`
	SuggestText string `json:"suggest-text,omitempty"`
	SuggestURL  string `json:"suggest-url,omitempty"`
}

// Row is the view model for one rendered suggestion
type Row struct {
	Index     int
	Candidate string // full query text, copied into the input on commit
	Term      string // matched prefix as typed
	Suggest   string // remainder of Candidate after Term
	Text      string // optional annotation, empty when blank
	URL       string // optional link, never followed by the widget
	Active    bool
}

// HasText reports whether the row shows an annotation after the delimiter
func (r Row) HasText() bool {
	return r.Text != ""
}
