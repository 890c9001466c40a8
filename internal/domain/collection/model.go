package collection

import "admingrid/internal/domain/grid"

// Update methods the backends accept.
const (
	MethodPut   = "PUT"
	MethodPatch = "PATCH"
)

// Config describes one backend collection: where it lives, which body
// shapes its endpoints speak, and how its grid is configured.
type Config struct {
	// Path is the collection endpoint, e.g. "/api/users".
	Path string `mapstructure:"path"`
	// UpdateMethod is PUT or PATCH, whichever the backend variant expects.
	UpdateMethod string `mapstructure:"update_method"`
	// WrapData sends updates as {"data": payload} instead of a flat body.
	WrapData bool `mapstructure:"wrap_data"`

	BaseColumns     []string `mapstructure:"base_columns"`
	ExcludedFields  []string `mapstructure:"excluded_fields"`
	ImmutableFields []string `mapstructure:"immutable_fields"`

	BoolFields     []string `mapstructure:"bool_fields"`
	TimeFields     []string `mapstructure:"time_fields"`
	NumberFields   []string `mapstructure:"number_fields"`
	TruthyLiterals []string `mapstructure:"truthy_literals"`

	GroupBy       string `mapstructure:"group_by"`
	GroupFallback string `mapstructure:"group_fallback"`

	// Fields driving the default group summary policy.
	PendingField string `mapstructure:"pending_field"`
	ExpiryField  string `mapstructure:"expiry_field"`
	CreatedField string `mapstructure:"created_field"`
}

// ApplyDefaults fills the blanks a config file may leave.
func (c *Config) ApplyDefaults() {
	if c.UpdateMethod == "" {
		c.UpdateMethod = MethodPut
	}
	if c.PendingField == "" {
		c.PendingField = "approved"
	}
	if c.ExpiryField == "" {
		c.ExpiryField = "active_until"
	}
	if c.CreatedField == "" {
		c.CreatedField = "created_at"
	}
}

// GridOptions translates the collection config into engine options.
// Persistence callbacks and the summary reduction are wired by the caller.
func (c Config) GridOptions() grid.Options {
	return grid.Options{
		BaseColumns:     c.BaseColumns,
		ExcludedFields:  c.ExcludedFields,
		ImmutableFields: c.ImmutableFields,
		BoolFields:      c.BoolFields,
		TimeFields:      c.TimeFields,
		NumberFields:    c.NumberFields,
		TruthyLiterals:  c.TruthyLiterals,
		GroupBy:         c.GroupBy,
		GroupFallback:   c.GroupFallback,
	}
}
