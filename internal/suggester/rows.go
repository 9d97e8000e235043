package suggester

import (
	"strings"

	"suggestable/internal/domain"
)

// BuildRows turns a result set into row view models. The suggestion part is
// whatever follows the first len(term) characters of the query, so queries
// that do not start with term render oddly.
func BuildRows(term string, items []domain.Suggestion) []domain.Row {
	n := len([]rune(term))
	rows := make([]domain.Row, len(items))
	for i, item := range items {
		rows[i] = domain.Row{
			Index:     i,
			Candidate: item.Query,
			Term:      term,
			Suggest:   runesFrom(item.Query, n),
			URL:       item.SuggestURL,
		}
		if strings.TrimSpace(item.SuggestText) != "" {
			rows[i].Text = item.SuggestText
		}
	}
	return rows
}

func runesFrom(s string, n int) string {
	r := []rune(s)
	if n >= len(r) {
		return ""
	}
	return string(r[n:])
}
