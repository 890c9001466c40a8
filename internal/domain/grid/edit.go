package grid

// Draft is an in-progress, unsaved edit scoped to exactly one row or, in
// grouped mode, to every row sharing a group key. Drafted values live here
// until a save round-trips; the underlying rows are never mutated in place.
type Draft struct {
	RowID    string
	GroupKey string
	values   map[string]Value
}

// IsGroup reports whether the draft targets a whole group.
func (d *Draft) IsGroup() bool { return d.GroupKey != "" }

func (d *Draft) Get(field string) (Value, bool) {
	v, ok := d.values[field]
	return v, ok
}

func (d *Draft) set(field string, v Value) {
	if d.values == nil {
		d.values = make(map[string]Value)
	}
	d.values[field] = v
}

// Values returns a copy of the drafted field values.
func (d *Draft) Values() map[string]Value {
	out := make(map[string]Value, len(d.values))
	for k, v := range d.values {
		out[k] = v
	}
	return out
}

// BeginEdit snapshots the row's current non-secret field values into a new
// draft and marks the row as the single active edit. It fails with
// ErrAlreadyEditing while another row or group is being edited, without
// touching either row's data.
func (e *Engine) BeginEdit(id string) error {
	if e.draft != nil {
		return ErrAlreadyEditing
	}
	row, ok := e.rowByID(id)
	if !ok {
		return ErrRowNotFound
	}

	draft := &Draft{RowID: id}
	for _, f := range row.Fields() {
		if e.excluded[f] {
			continue
		}
		v, _ := row.Get(f)
		draft.set(f, v)
	}
	e.draft = draft
	return nil
}

// BeginGroupEdit starts a draft covering every member of a group. Only
// fields on which all members agree are seeded, so a group save cannot
// silently flatten divergent values.
func (e *Engine) BeginGroupEdit(key string) error {
	if e.opts.GroupBy == "" {
		return ErrNotGrouped
	}
	if e.draft != nil {
		return ErrAlreadyEditing
	}
	group, ok := e.groupByKey(key)
	if !ok {
		return ErrGroupNotFound
	}

	draft := &Draft{GroupKey: key}
	for _, f := range group.Rows[0].Fields() {
		if e.excluded[f] {
			continue
		}
		first, _ := group.Rows[0].Get(f)
		agreed := true
		for _, member := range group.Rows[1:] {
			v, ok := member.Get(f)
			if !ok || v != first {
				agreed = false
				break
			}
		}
		if agreed {
			draft.set(f, first)
		}
	}
	e.draft = draft
	return nil
}

// ChangeDraft records a pending value on the active draft. It is a pure
// local mutation with no backend call and no validation; coercion and
// validation happen in Normalize at save time.
func (e *Engine) ChangeDraft(field string, v Value) error {
	if e.draft == nil {
		return ErrNoActiveEdit
	}
	e.draft.set(field, v)
	return nil
}

// Draft returns the active draft, if any.
func (e *Engine) Draft() (*Draft, bool) {
	if e.draft == nil {
		return nil, false
	}
	return e.draft, true
}

// CancelEdit discards the draft and clears the active edit pointer. It has
// no side effects beyond local state.
func (e *Engine) CancelEdit() {
	e.draft = nil
}
