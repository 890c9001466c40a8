package collection

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"admingrid/internal/app/client"
	"admingrid/internal/domain/grid"
)

// CollectionCmd is the parent command for all collection operations.
var CollectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "Work with backend collections",
	Long:  `View, edit, create and delete rows of the configured backend collections.`,
}

func appFrom(cmd *cobra.Command) (*client.App, error) {
	app, ok := client.FromContext(cmd.Context())
	if !ok {
		return nil, fmt.Errorf("application is not initialized")
	}
	return app, nil
}

// parseSets turns repeated --set field=value flags into a field map.
func parseSets(sets []string) (map[string]string, error) {
	out := make(map[string]string, len(sets))
	for _, s := range sets {
		field, value, ok := strings.Cut(s, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid --set %q, expected field=value", s)
		}
		out[field] = value
	}
	return out, nil
}

// applySets drafts raw field input on the active edit. Values enter as
// strings, exactly like form input; save-time normalization coerces them.
func applySets(engine *grid.Engine, sets map[string]string) error {
	for field, value := range sets {
		if err := engine.ChangeDraft(field, grid.StringValue(value)); err != nil {
			return err
		}
	}
	return nil
}
