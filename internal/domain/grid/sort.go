package grid

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey is one entry of a sort spec: a field and its direction.
type SortKey struct {
	Field string
	Desc  bool
}

// SortSpec is the ordered multi-column sort priority: index 0 is the
// primary key, later entries break ties. A field appears at most once.
type SortSpec []SortKey

func (s SortSpec) index(field string) int {
	for i, k := range s {
		if k.Field == field {
			return i
		}
	}
	return -1
}

// Contains reports whether field is part of the spec.
func (s SortSpec) Contains(field string) bool { return s.index(field) >= 0 }

// Toggle advances the sort state machine for one header click and returns
// the new spec; the receiver is not modified.
//
// Plain toggle (multi=false) runs the three-state cycle asc → desc →
// removed on a single active key, dropping any other entries. Multi toggle
// (shift-click) appends the field ascending, flips it to descending, or
// drops it out of the chain while preserving the order of the remaining
// entries.
func (s SortSpec) Toggle(field string, multi bool) SortSpec {
	idx := s.index(field)

	if !multi {
		switch {
		case idx < 0:
			return SortSpec{{Field: field}}
		case !s[idx].Desc:
			return SortSpec{{Field: field, Desc: true}}
		default:
			return SortSpec{}
		}
	}

	out := make(SortSpec, len(s))
	copy(out, s)
	switch {
	case idx < 0:
		return append(out, SortKey{Field: field})
	case !out[idx].Desc:
		out[idx].Desc = true
		return out
	default:
		return append(out[:idx], out[idx+1:]...)
	}
}

// ParseSortSpec parses a comma-separated field list into a spec. A leading
// "-" marks a field descending: "name,-active_until".
func ParseSortSpec(s string) (SortSpec, error) {
	var spec SortSpec
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key := SortKey{Field: part}
		if strings.HasPrefix(part, "-") {
			key = SortKey{Field: strings.TrimPrefix(part, "-"), Desc: true}
		}
		if key.Field == "" {
			return nil, fmt.Errorf("parse sort spec: empty field in %q", s)
		}
		if spec.Contains(key.Field) {
			return nil, fmt.Errorf("parse sort spec: duplicate field %q", key.Field)
		}
		spec = append(spec, key)
	}
	return spec, nil
}

// newCollator builds the comparer for default string ordering: locale-aware,
// case-insensitive, with natural numeric ordering so "item2" < "item10".
// Collators are not safe for concurrent use, so every engine owns one.
func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.Numeric, collate.IgnoreCase)
}

// sorter carries the comparison state for one sort pass.
type sorter struct {
	opts    Options
	col     *collate.Collator
	timeSet map[string]bool
}

func newSorter(opts Options, col *collate.Collator) *sorter {
	return &sorter{opts: opts, col: col, timeSet: opts.timeSet()}
}

// sortRows stable-sorts a copy of rows by the spec. Rows tying on every key
// keep their original relative order.
func (s *sorter) sortRows(rows []Row, spec SortSpec) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	if len(spec) == 0 {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		return s.compare(out[i], out[j], spec) < 0
	})
	return out
}

func (s *sorter) compare(a, b Row, spec SortSpec) int {
	for _, key := range spec {
		c := s.compareField(key.Field, a, b)
		if key.Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

// compareField compares one field of two rows in ascending terms. Custom
// comparators win; otherwise numbers compare numerically, configured time
// fields compare as instants with unparseable values as a +inf sentinel
// (after everything ascending, hence first descending), and everything else
// falls back to the natural string collation.
func (s *sorter) compareField(field string, a, b Row) int {
	va, _ := a.Get(field)
	vb, _ := b.Get(field)

	if cmp, ok := s.opts.Comparators[field]; ok {
		return cmp(va, vb)
	}

	if s.timeSet[field] || va.Kind() == KindTime || vb.Kind() == KindTime {
		return compareInstants(va, vb)
	}

	if fa, ok := va.Numeric(); ok {
		if fb, ok := vb.Numeric(); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		}
	}

	return s.col.CompareString(va.Display(), vb.Display())
}

func compareInstants(a, b Value) int {
	ta, okA := a.Instant()
	tb, okB := b.Instant()
	switch {
	case okA && okB:
		return ta.Compare(tb)
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	default:
		return -1
	}
}
