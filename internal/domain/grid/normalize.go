package grid

import (
	"sort"
	"strings"
	"time"
)

// defaultTruthy are the string encodings coerced to true for boolean
// fields, matching what the backends accept.
var defaultTruthy = []string{"1", "true", "yes", "y", "on"}

// Normalize applies the declared coercions to a draft and produces the
// backend-ready payload:
//
//   - boolean fields: true for the literal true, the number 1 and the
//     configured truthy strings; everything else false
//   - time fields: canonicalized to "YYYY-MM-DD HH:MM:SS"; values already
//     carrying seconds pass through; blank becomes null
//   - numeric fields: blank becomes null; unparseable input is a
//     validation error, never a silent zero
//   - other fields: strings are trimmed, and blank after trimming becomes
//     null to distinguish "cleared" from "untouched"
//
// Fields marked immutable or excluded are stripped regardless of draft
// content. Normalize is idempotent: applying it to an already-normalized
// payload yields the same payload.
func Normalize(draft map[string]Value, opts Options) (map[string]any, error) {
	excluded := opts.excludedSet()
	immutable := opts.immutableSet()
	bools := opts.boolSet()
	times := opts.timeSet()
	numbers := opts.numberSet()

	truthy := make(map[string]bool, len(defaultTruthy)+len(opts.TruthyLiterals))
	for _, lit := range defaultTruthy {
		truthy[lit] = true
	}
	for _, lit := range opts.TruthyLiterals {
		truthy[strings.ToLower(lit)] = true
	}

	// Deterministic field order so the first validation failure is stable.
	fields := make([]string, 0, len(draft))
	for f := range draft {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	payload := make(map[string]any, len(draft))
	for _, field := range fields {
		if excluded[field] || immutable[field] {
			continue
		}
		v := draft[field]
		switch {
		case bools[field]:
			payload[field] = coerceBool(v, truthy)
		case times[field]:
			out, err := coerceTime(field, v)
			if err != nil {
				return nil, err
			}
			payload[field] = out
		case numbers[field]:
			out, err := coerceNumber(field, v)
			if err != nil {
				return nil, err
			}
			payload[field] = out
		default:
			payload[field] = coerceText(v)
		}
	}
	return payload, nil
}

func coerceBool(v Value, truthy map[string]bool) bool {
	switch v.Kind() {
	case KindBool:
		b, _ := v.AsBool()
		return b
	case KindNumber:
		f, _ := v.AsNumber()
		return f == 1
	case KindString:
		s, _ := v.AsString()
		return truthy[strings.ToLower(strings.TrimSpace(s))]
	}
	return false
}

func coerceTime(field string, v Value) (any, error) {
	switch v.Kind() {
	case KindNull:
		return nil, nil
	case KindTime:
		t, _ := v.AsTime()
		return t.Format(TimeFormat), nil
	case KindNumber:
		// Numbers are unix timestamps in seconds.
		f, _ := v.AsNumber()
		return time.Unix(int64(f), 0).UTC().Format(TimeFormat), nil
	case KindString:
		s, _ := v.AsString()
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		t, ok := ParseTime(s)
		if !ok {
			return nil, &ValidationError{Field: field, Reason: "not a recognized timestamp"}
		}
		return t.Format(TimeFormat), nil
	default:
		return nil, &ValidationError{Field: field, Reason: "not a timestamp"}
	}
}

func coerceNumber(field string, v Value) (any, error) {
	switch v.Kind() {
	case KindNull:
		return nil, nil
	case KindNumber:
		f, _ := v.AsNumber()
		return f, nil
	case KindString:
		s, _ := v.AsString()
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		f, ok := v.Numeric()
		if !ok {
			return nil, &ValidationError{Field: field, Reason: "not a number"}
		}
		return f, nil
	default:
		return nil, &ValidationError{Field: field, Reason: "not a number"}
	}
}

func coerceText(v Value) any {
	if s, ok := v.AsString(); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		return s
	}
	return v.Native()
}
