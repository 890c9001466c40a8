// cmd/client/cmd/collection/group_edit.go
package collection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"admingrid/internal/domain/grid"
)

var groupEditSets []string

// GroupEditCmd edits every member of a group in one pass.
var GroupEditCmd = &cobra.Command{
	Use:   "group-edit <collection> <group-key>",
	Short: "Apply the same field changes to every row of a group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, key := args[0], args[1]

		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		sets, err := parseSets(groupEditSets)
		if err != nil {
			return err
		}
		if len(sets) == 0 {
			return fmt.Errorf("nothing to change, pass --set field=value")
		}

		engine, _, err := app.LoadGrid(cmd.Context(), name, false)
		if err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}

		if err := engine.BeginGroupEdit(key); err != nil {
			return err
		}
		if err := applySets(engine, sets); err != nil {
			engine.CancelEdit()
			return err
		}

		if err := engine.SaveEdit(cmd.Context()); err != nil {
			var partial *grid.PartialSaveError
			if errors.As(err, &partial) {
				fmt.Fprintf(cmd.ErrOrStderr(),
					"group %s partially saved: rows [%s] written, row %s failed\n",
					partial.GroupKey, strings.Join(partial.SavedIDs, ", "), partial.FailedID)
			}
			return err
		}

		fmt.Printf("group %s saved\n", key)
		return nil
	},
}

func init() {
	GroupEditCmd.Flags().StringArrayVar(&groupEditSets, "set", nil, "field=value to change (repeatable)")
}
