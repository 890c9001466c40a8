package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumns(t *testing.T) {
	rows := []Row{
		NewRow("id", "1", "email", "a@x", "role", "admin"),
		NewRow("id", "2", "email", "b@x", "approved", true),
	}

	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "discovery order without config",
			opts: Options{},
			want: []string{"id", "email", "role", "approved"},
		},
		{
			name: "base columns lead when present",
			opts: Options{BaseColumns: []string{"email", "id", "missing"}},
			want: []string{"email", "id", "role", "approved"},
		},
		{
			name: "excluded fields never appear",
			opts: Options{ExcludedFields: []string{"role"}},
			want: []string{"id", "email", "approved"},
		},
		{
			name: "excluded beats base",
			opts: Options{
				BaseColumns:    []string{"email", "role"},
				ExcludedFields: []string{"role"},
			},
			want: []string{"email", "id", "approved"},
		},
		{
			name: "duplicate base entries collapse",
			opts: Options{BaseColumns: []string{"id", "id", "email"}},
			want: []string{"id", "email", "role", "approved"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Columns(rows, tt.opts))
		})
	}
}

func TestColumns_Deterministic(t *testing.T) {
	rows := []Row{
		NewRow("id", "1", "b", 1, "a", 2),
		NewRow("id", "2", "c", 3),
	}
	opts := Options{BaseColumns: []string{"id"}}

	first := Columns(rows, opts)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Columns(rows, opts))
	}
}

func TestColumns_Empty(t *testing.T) {
	assert.Empty(t, Columns(nil, Options{BaseColumns: []string{"id"}}))
}
