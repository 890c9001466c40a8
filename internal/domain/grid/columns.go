package grid

// Columns computes the display column list for a row collection: base
// columns first, in configured order, when present in at least one row,
// followed by every other discovered field in first-seen order. Excluded
// fields never appear. The result depends only on the input, so reloading
// identical rows never reorders columns.
func Columns(rows []Row, opts Options) []string {
	excluded := opts.excludedSet()

	present := make(map[string]bool)
	var discovered []string
	for _, r := range rows {
		for _, f := range r.Fields() {
			if present[f] {
				continue
			}
			present[f] = true
			discovered = append(discovered, f)
		}
	}

	var out []string
	base := make(map[string]bool, len(opts.BaseColumns))
	for _, c := range opts.BaseColumns {
		if base[c] {
			continue
		}
		base[c] = true
		if present[c] && !excluded[c] {
			out = append(out, c)
		}
	}
	for _, f := range discovered {
		if base[f] || excluded[f] {
			continue
		}
		out = append(out, f)
	}
	return out
}
