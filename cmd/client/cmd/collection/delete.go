// cmd/client/cmd/collection/delete.go
package collection

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var deleteYes bool

// DeleteCmd removes a row from a collection.
var DeleteCmd = &cobra.Command{
	Use:   "delete <collection> <row-id>",
	Short: "Delete a row from a collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, id := args[0], args[1]

		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		if !deleteYes {
			fmt.Printf("delete row %s from %s? [y/N]: ", id, name)
			answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return fmt.Errorf("read confirmation: %w", err)
			}
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				fmt.Println("aborted")
				return nil
			}
		}

		engine, _, err := app.LoadGrid(cmd.Context(), name, false)
		if err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
		if err := engine.DeleteRow(cmd.Context(), id); err != nil {
			return fmt.Errorf("delete %s: %w", id, err)
		}

		fmt.Printf("row %s deleted from %s\n", id, name)
		return nil
	},
}

func init() {
	DeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
}
