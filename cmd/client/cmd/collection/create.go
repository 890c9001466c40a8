// cmd/client/cmd/collection/create.go
package collection

import (
	"fmt"

	"github.com/spf13/cobra"
)

var createSets []string

// CreateCmd inserts a new row into a collection.
var CreateCmd = &cobra.Command{
	Use:   "create <collection>",
	Short: "Create a row in a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		sets, err := parseSets(createSets)
		if err != nil {
			return err
		}
		if len(sets) == 0 {
			return fmt.Errorf("nothing to create, pass --set field=value")
		}

		if err := app.CreateRow(cmd.Context(), name, sets); err != nil {
			return fmt.Errorf("create in %s: %w", name, err)
		}

		fmt.Printf("row created in %s\n", name)
		return nil
	},
}

func init() {
	CreateCmd.Flags().StringArrayVar(&createSets, "set", nil, "field=value for the new row (repeatable)")
}
