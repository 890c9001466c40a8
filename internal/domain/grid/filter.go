package grid

import "strings"

// Filter keeps the rows whose lowercased query is a substring of the
// stringified value of any non-excluded field. A blank or whitespace-only
// query is the identity: the input slice is returned unchanged. This is a
// plain substring predicate, not a ranked search.
func Filter(rows []Row, query string, opts Options) []Row {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return rows
	}

	excluded := opts.excludedSet()
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if rowMatches(r, q, excluded) {
			out = append(out, r)
		}
	}
	return out
}

func rowMatches(r Row, q string, excluded map[string]bool) bool {
	for _, f := range r.Fields() {
		if excluded[f] {
			continue
		}
		v, _ := r.Get(f)
		if strings.Contains(strings.ToLower(v.Display()), q) {
			return true
		}
	}
	return false
}
