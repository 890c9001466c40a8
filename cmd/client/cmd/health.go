// cmd/client/cmd/health.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"admingrid/internal/app/client"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend availability",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := client.FromContext(cmd.Context())
		if !ok {
			return fmt.Errorf("application is not initialized")
		}

		if err := app.Health(cmd.Context()); err != nil {
			return fmt.Errorf("backend unavailable: %w", err)
		}

		fmt.Println("backend is up")
		return nil
	},
}
