package query

import "strings"

// SortField orders results by a projected view field.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

// ParseSortFields parses a comma separated list such as "Filename,-CreatedAt".
// A leading "-" sorts descending. Empty entries are skipped.
func ParseSortFields(s string) []SortField {
	var out []SortField
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		part = strings.TrimSpace(strings.TrimPrefix(part, "-"))
		if part == "" {
			continue
		}
		out = append(out, SortField{Field: part, Descending: desc})
	}
	return out
}
