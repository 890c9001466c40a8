package grid

import "context"

// SaveFunc persists one normalized payload for one row. The engine never
// talks to a backend itself; consumers inject the write.
type SaveFunc func(ctx context.Context, id string, payload map[string]any) error

// DeleteFunc removes one row at the backend.
type DeleteFunc func(ctx context.Context, id string) error

// ReduceFunc derives the summary record representing a group of rows.
// Which member "wins" is domain policy and always comes from the caller.
type ReduceFunc func(members []Row) Row

// Comparator overrides the default per-field comparison.
// It must return <0, 0 or >0 for the ascending order of a before b.
type Comparator func(a, b Value) int

// Options configures one grid instance.
type Options struct {
	// BaseColumns appear first, in this order, when present in any row.
	BaseColumns []string
	// ExcludedFields are never shown, never editable and never matched by
	// the filter (secrets: password, token, hash fields).
	ExcludedFields []string
	// ImmutableFields are shown but stripped from every outbound payload
	// (identity and audit fields).
	ImmutableFields []string

	// Field coercion policies applied by Normalize before a save.
	BoolFields   []string
	TimeFields   []string
	NumberFields []string
	// TruthyLiterals extend the default set ("1", "true", "yes", "y", "on")
	// of strings coerced to true for boolean fields.
	TruthyLiterals []string

	// GroupBy enables grouping mode. Reduce must be set alongside it.
	GroupBy string
	// GroupFallback is consulted when a row lacks the GroupBy field;
	// after that the row's own id keys a singleton group.
	GroupFallback string
	Reduce        ReduceFunc

	// Comparators override the default comparison per field.
	Comparators map[string]Comparator

	// Persistence callbacks. Saves and deletes fail with a typed error
	// when the corresponding callback is absent.
	Save   SaveFunc
	Delete DeleteFunc
}

func toSet(fields []string) map[string]bool {
	if len(fields) == 0 {
		return nil
	}
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}

func (o Options) excludedSet() map[string]bool  { return toSet(o.ExcludedFields) }
func (o Options) immutableSet() map[string]bool { return toSet(o.ImmutableFields) }
func (o Options) boolSet() map[string]bool      { return toSet(o.BoolFields) }
func (o Options) timeSet() map[string]bool      { return toSet(o.TimeFields) }
func (o Options) numberSet() map[string]bool    { return toSet(o.NumberFields) }
