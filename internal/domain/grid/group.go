package grid

// Group is a set of rows sharing a grouping key, presented as one summary
// record with the member rows behind it.
type Group struct {
	Key     string
	Rows    []Row
	Summary Row
}

// GroupRows partitions rows by the configured group key, preserving
// first-seen group order and member order. Rows lacking the key fall back
// to the secondary identifying field, then to their own id. The summary is
// filled from the caller-supplied reduction when one is configured.
func GroupRows(rows []Row, opts Options) []Group {
	var order []string
	members := make(map[string][]Row)

	for _, r := range rows {
		key := groupKey(r, opts)
		if _, ok := members[key]; !ok {
			order = append(order, key)
		}
		members[key] = append(members[key], r)
	}

	out := make([]Group, 0, len(order))
	for _, key := range order {
		g := Group{Key: key, Rows: members[key]}
		if opts.Reduce != nil {
			g.Summary = opts.Reduce(g.Rows)
		}
		out = append(out, g)
	}
	return out
}

func groupKey(r Row, opts Options) string {
	if v, ok := r.Get(opts.GroupBy); ok && !v.IsNull() && v.Display() != "" {
		return v.Display()
	}
	if opts.GroupFallback != "" {
		if v, ok := r.Get(opts.GroupFallback); ok && !v.IsNull() && v.Display() != "" {
			return v.Display()
		}
	}
	return r.ID()
}
