package grid

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies which member of the scalar union a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Value is one cell of a row: a tagged scalar union. Rows carry arbitrary
// field sets, so cells can never be a fixed struct field; everything the
// engine touches goes through this type.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  string
	t    time.Time
}

func NullValue() Value            { return Value{kind: KindNull} }
func BoolValue(b bool) Value      { return Value{kind: KindBool, b: b} }
func NumberValue(f float64) Value { return Value{kind: KindNumber, num: f} }
func StringValue(s string) Value  { return Value{kind: KindString, str: s} }
func TimeValue(t time.Time) Value { return Value{kind: KindTime, t: t} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

func (v Value) AsTime() (time.Time, bool) {
	if v.kind != KindTime {
		return time.Time{}, false
	}
	return v.t, true
}

// Numeric reports the value as a float64 when it is a number or a string
// holding a finite number. Booleans and times do not count as numeric.
func (v Value) Numeric() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Instant reports the value as a point in time: a time value directly, a
// string in one of the accepted layouts, or a number as a unix timestamp
// in seconds.
func (v Value) Instant() (time.Time, bool) {
	switch v.kind {
	case KindTime:
		return v.t, true
	case KindString:
		return ParseTime(v.str)
	case KindNumber:
		return time.Unix(int64(v.num), 0).UTC(), true
	}
	return time.Time{}, false
}

// Display is the stringification used for filtering and rendering.
// Null displays as the empty string.
func (v Value) Display() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindString:
		return v.str
	case KindTime:
		return v.t.Format(TimeFormat)
	}
	return ""
}

// Native converts the value to the plain Go type used in outbound JSON
// payloads: nil, bool, float64 or string.
func (v Value) Native() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindTime:
		return v.t.Format(TimeFormat)
	}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return strconv.AppendBool(nil, v.b), nil
	case KindNumber:
		return strconv.AppendFloat(nil, v.num, 'f', -1, 64), nil
	case KindTime:
		return json.Marshal(v.t.Format(TimeFormat))
	default:
		return json.Marshal(v.str)
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	*v = decodeScalar(data)
	return nil
}

// decodeScalar maps a raw JSON value onto the union. Nested objects and
// arrays are kept as their raw text so unknown structured fields still
// render instead of being dropped.
func decodeScalar(raw []byte) Value {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return NullValue()
	}
	switch s[0] {
	case '"':
		var str string
		if err := json.Unmarshal([]byte(s), &str); err != nil {
			return StringValue(s)
		}
		return StringValue(str)
	case 't':
		return BoolValue(true)
	case 'f':
		return BoolValue(false)
	case '{', '[':
		return StringValue(s)
	default:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return StringValue(s)
		}
		return NumberValue(f)
	}
}

// TimeFormat is the canonical timestamp representation the backends expect:
// full date-time with seconds.
const TimeFormat = "2006-01-02 15:04:05"

// timeLayouts are the accepted edit-input layouts, most specific first.
// The leading entries cover datetime-local style input without seconds.
var timeLayouts = []string{
	TimeFormat,
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"02/01/2006,15:04",
	"02/01/2006, 15:04",
	"02.01.2006 15:04",
	"02-01-2006 15:04",
	"2006-01-02",
}

// ParseTime parses a timestamp in any accepted layout.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
