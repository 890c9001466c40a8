// cmd/client/cmd/collection/edit.go
package collection

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"admingrid/internal/app/client/render"
	"admingrid/internal/domain/grid"
)

var editSets []string

var EditCmd = &cobra.Command{
	Use:   "edit <collection> <id>",
	Short: "Edit one row inline",
	Long: `Draft field changes on a single row and save them to the backend.

Values are given as raw text, like form input; the configured field
policies coerce them on save (booleans, timestamps, numbers, nullable
text). After a successful save the collection is reloaded so the
canonical backend state is what gets displayed.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		name, id := args[0], args[1]

		sets, err := parseSets(editSets)
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

		if err := engine.BeginEdit(id); err != nil {
			return err
		}
		if err := applySets(engine, sets); err != nil {
			return err
		}
		if err := engine.SaveEdit(cmd.Context()); err != nil {
			return err
		}

		// Saves are fire-and-confirm: reload for canonical state.
		engine, _, err = app.LoadGrid(cmd.Context(), name, false)
		if err != nil {
			return fmt.Errorf("saved, but reload failed: %w", err)
		}

		fmt.Printf("row %s saved\n", id)
		for _, r := range engine.View() {
			if r.ID() == id {
				render.Table(os.Stdout, engine.Columns(), []grid.Row{r})
				break
			}
		}
		return nil
	},
}

func init() {
	EditCmd.Flags().StringArrayVar(&editSets, "set", nil, "field=value to change (repeatable)")
}
