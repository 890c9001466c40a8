package grid

import (
	"context"
	"sort"

	"golang.org/x/exp/slog"
	"golang.org/x/text/collate"
)

// Engine owns one row collection and derives the displayable view from it:
// filtered, grouped, sorted. All view state (query, sort spec, active edit)
// is explicit per-instance state, so any number of independent grids can
// coexist.
type Engine struct {
	opts Options
	log  *slog.Logger
	col  *collate.Collator

	excluded map[string]bool

	rows    []Row
	columns []string
	query   string
	sort    SortSpec
	draft   *Draft
}

// New builds a grid engine. Grouping mode requires a summary reduction.
func New(opts Options, log *slog.Logger) (*Engine, error) {
	if opts.GroupBy != "" && opts.Reduce == nil {
		return nil, ErrReduceRequired
	}
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		opts:     opts,
		log:      log.With("component", "grid"),
		col:      newCollator(),
		excluded: opts.excludedSet(),
	}, nil
}

// ReplaceRows swaps in a freshly loaded row collection wholesale and
// recomputes the column list. There is no incremental patching; callers
// reload after every successful write. A pending draft survives the swap so
// a failed save can still be retried or cancelled against new data.
func (e *Engine) ReplaceRows(rows []Row) {
	e.rows = rows
	e.columns = Columns(rows, e.opts)
	e.log.Debug("rows replaced", "rows", len(rows), "columns", len(e.columns))
}

// Rows returns the raw, unfiltered collection.
func (e *Engine) Rows() []Row { return e.rows }

// Columns returns the current display column list.
func (e *Engine) Columns() []string {
	out := make([]string, len(e.columns))
	copy(out, e.columns)
	return out
}

// SetQuery sets the free-text filter.
func (e *Engine) SetQuery(q string) { e.query = q }

func (e *Engine) Query() string { return e.query }

// ToggleSort advances the sort state machine for one header click.
func (e *Engine) ToggleSort(field string, multi bool) {
	e.sort = e.sort.Toggle(field, multi)
}

// SetSort replaces the whole sort spec, for programmatic callers.
func (e *Engine) SetSort(spec SortSpec) {
	e.sort = spec
}

// Sort returns a copy of the active sort spec.
func (e *Engine) Sort() SortSpec {
	out := make(SortSpec, len(e.sort))
	copy(out, e.sort)
	return out
}

// View returns the ordered, filtered, sorted display sequence. The
// underlying rows are never reordered; every call derives a fresh slice.
func (e *Engine) View() []Row {
	filtered := Filter(e.rows, e.query, e.opts)
	return newSorter(e.opts, e.col).sortRows(filtered, e.sort)
}

// Groups returns the grouped view: filtered rows partitioned by the group
// key, members sorted by the active spec, and groups ordered by comparing
// their summary records with the same spec.
func (e *Engine) Groups() ([]Group, error) {
	if e.opts.GroupBy == "" {
		return nil, ErrNotGrouped
	}
	s := newSorter(e.opts, e.col)
	filtered := Filter(e.rows, e.query, e.opts)
	groups := GroupRows(filtered, e.opts)
	for i := range groups {
		groups[i].Rows = s.sortRows(groups[i].Rows, e.sort)
	}
	if len(e.sort) > 0 {
		sort.SliceStable(groups, func(i, j int) bool {
			return s.compare(groups[i].Summary, groups[j].Summary, e.sort) < 0
		})
	}
	return groups, nil
}

// SaveEdit normalizes the active draft and hands it to the save callback,
// to one row, or to every member of the drafted group sequentially. Edit
// state clears only when every write succeeds; on failure the draft and
// edit pointer stay intact for retry or cancel, and the callback's error is
// surfaced unchanged. A group save aborts at the first failing member and
// reports partial application distinctly when earlier members were written.
// After a nil return the caller must reload for canonical state.
func (e *Engine) SaveEdit(ctx context.Context) error {
	if e.draft == nil {
		return ErrNoActiveEdit
	}
	if e.opts.Save == nil {
		return ErrNoSaver
	}

	payload, err := Normalize(e.draft.values, e.opts)
	if err != nil {
		return err
	}

	if !e.draft.IsGroup() {
		if err := e.opts.Save(ctx, e.draft.RowID, payload); err != nil {
			e.log.Warn("save failed", "row", e.draft.RowID, "error", err)
			return err
		}
		e.log.Info("row saved", "row", e.draft.RowID)
		e.draft = nil
		return nil
	}

	group, ok := e.groupByKey(e.draft.GroupKey)
	if !ok {
		return ErrGroupNotFound
	}
	var saved []string
	for _, member := range group.Rows {
		id := member.ID()
		if err := e.opts.Save(ctx, id, payload); err != nil {
			e.log.Warn("group save aborted", "group", group.Key, "row", id, "saved", len(saved), "error", err)
			if len(saved) > 0 {
				return &PartialSaveError{GroupKey: group.Key, SavedIDs: saved, FailedID: id, Err: err}
			}
			return err
		}
		saved = append(saved, id)
	}
	e.log.Info("group saved", "group", group.Key, "rows", len(saved))
	e.draft = nil
	return nil
}

// DeleteRow delegates to the delete callback and drops the row from the
// local collection only after the callback confirms success. Confirmation
// prompts are the caller's concern.
func (e *Engine) DeleteRow(ctx context.Context, id string) error {
	if e.opts.Delete == nil {
		return ErrNoDeleter
	}
	if _, ok := e.rowByID(id); !ok {
		return ErrRowNotFound
	}
	if err := e.opts.Delete(ctx, id); err != nil {
		e.log.Warn("delete failed", "row", id, "error", err)
		return err
	}

	kept := make([]Row, 0, len(e.rows))
	for _, r := range e.rows {
		if r.ID() != id {
			kept = append(kept, r)
		}
	}
	e.ReplaceRows(kept)
	if e.draft != nil && e.draft.RowID == id {
		e.draft = nil
	}
	e.log.Info("row deleted", "row", id)
	return nil
}

func (e *Engine) rowByID(id string) (Row, bool) {
	for _, r := range e.rows {
		if r.ID() == id {
			return r, true
		}
	}
	return Row{}, false
}

// groupByKey partitions the raw rows; editing is independent of the filter.
func (e *Engine) groupByKey(key string) (Group, bool) {
	for _, g := range GroupRows(e.rows, e.opts) {
		if g.Key == key {
			return g, true
		}
	}
	return Group{}, false
}
