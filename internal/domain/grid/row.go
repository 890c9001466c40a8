package grid

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// IDField is the unique identifier field every row must carry.
const IDField = "id"

// Row is one backend record: an open, order-preserving mapping from field
// name to scalar value. The field set is not fixed; whatever keys the
// backend sends survive decode, display and re-encode in their original
// order.
type Row struct {
	keys   []string
	fields map[string]Value
}

// NewRow builds a row from ordered field/value pairs.
func NewRow(pairs ...any) Row {
	if len(pairs)%2 != 0 {
		panic("grid: NewRow requires field/value pairs")
	}
	var r Row
	for i := 0; i < len(pairs); i += 2 {
		field, ok := pairs[i].(string)
		if !ok {
			panic("grid: NewRow field names must be strings")
		}
		r.Set(field, toValue(pairs[i+1]))
	}
	return r
}

func toValue(v any) Value {
	switch x := v.(type) {
	case Value:
		return x
	case nil:
		return NullValue()
	case bool:
		return BoolValue(x)
	case int:
		return NumberValue(float64(x))
	case int64:
		return NumberValue(float64(x))
	case float64:
		return NumberValue(x)
	case string:
		return StringValue(x)
	default:
		return StringValue(fmt.Sprint(x))
	}
}

func (r Row) Get(field string) (Value, bool) {
	v, ok := r.fields[field]
	return v, ok
}

func (r *Row) Set(field string, v Value) {
	if r.fields == nil {
		r.fields = make(map[string]Value)
	}
	if _, ok := r.fields[field]; !ok {
		r.keys = append(r.keys, field)
	}
	r.fields[field] = v
}

func (r Row) Has(field string) bool {
	_, ok := r.fields[field]
	return ok
}

// Fields returns the field names in their original order.
func (r Row) Fields() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r Row) Len() int { return len(r.keys) }

// ID returns the stringified unique identifier, or "" when the row has none.
func (r Row) ID() string {
	v, ok := r.fields[IDField]
	if !ok {
		return ""
	}
	return v.Display()
}

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	out := Row{
		keys:   make([]string, len(r.keys)),
		fields: make(map[string]Value, len(r.fields)),
	}
	copy(out.keys, r.keys)
	for k, v := range r.fields {
		out.fields[k] = v
	}
	return out
}

func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := r.fields[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving key order, which a plain
// map[string]any cannot do.
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode row: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("decode row: expected object, got %v", tok)
	}

	r.keys = nil
	r.fields = make(map[string]Value)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode row key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("decode row key: unexpected token %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decode row field %q: %w", key, err)
		}
		r.Set(key, decodeScalar(raw))
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode row: %w", err)
	}
	return nil
}
