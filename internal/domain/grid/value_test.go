package grid

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantKind Kind
		want     string
	}{
		{name: "null", raw: `null`, wantKind: KindNull, want: ""},
		{name: "true", raw: `true`, wantKind: KindBool, want: "true"},
		{name: "false", raw: `false`, wantKind: KindBool, want: "false"},
		{name: "integer", raw: `42`, wantKind: KindNumber, want: "42"},
		{name: "float", raw: `12.5`, wantKind: KindNumber, want: "12.5"},
		{name: "string", raw: `"alice"`, wantKind: KindString, want: "alice"},
		{name: "escaped string", raw: `"a\"b"`, wantKind: KindString, want: `a"b`},
		{name: "nested object kept as text", raw: `{"a":1}`, wantKind: KindString, want: `{"a":1}`},
		{name: "nested array kept as text", raw: `[1,2]`, wantKind: KindString, want: `[1,2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &v))
			assert.Equal(t, tt.wantKind, v.Kind())
			assert.Equal(t, tt.want, v.Display())
		})
	}
}

func TestValue_Numeric(t *testing.T) {
	tests := []struct {
		name   string
		v      Value
		want   float64
		wantOK bool
	}{
		{name: "number", v: NumberValue(3.5), want: 3.5, wantOK: true},
		{name: "numeric string", v: StringValue("12.5"), want: 12.5, wantOK: true},
		{name: "padded numeric string", v: StringValue(" 7 "), want: 7, wantOK: true},
		{name: "plain string", v: StringValue("abc"), wantOK: false},
		{name: "bool is not numeric", v: BoolValue(true), wantOK: false},
		{name: "null is not numeric", v: NullValue(), wantOK: false},
		{name: "infinity rejected", v: StringValue("Inf"), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.v.Numeric()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestValue_Display(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, "", NullValue().Display())
	assert.Equal(t, "true", BoolValue(true).Display())
	assert.Equal(t, "99", NumberValue(99).Display())
	assert.Equal(t, "0.5", NumberValue(0.5).Display())
	assert.Equal(t, "2026-03-01 09:30:00", TimeValue(at).Display())
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "canonical",
			input: "2026-03-01 09:30:15",
			want:  time.Date(2026, 3, 1, 9, 30, 15, 0, time.UTC),
		},
		{
			name:  "datetime-local without seconds",
			input: "2026-03-01T09:30",
			want:  time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "slash layout with comma",
			input: "01/03/2026,09:30",
			want:  time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "dotted layout",
			input: "01.03.2026 09:30",
			want:  time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "date only",
			input: "2026-03-01",
			want:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTime(tt.input)
			require.True(t, ok)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

func TestParseTime_Invalid(t *testing.T) {
	for _, input := range []string{"", "  ", "not a date", "2026-13-40"} {
		_, ok := ParseTime(input)
		assert.False(t, ok, "input %q", input)
	}
}
