// cmd/client/cmd/init.go
package cmd

import (
	"admingrid/cmd/client/cmd/collection"
)

func init() {
	rootCmd.AddCommand(collection.CollectionCmd)
	collection.CollectionCmd.AddCommand(collection.ViewCmd)
	collection.CollectionCmd.AddCommand(collection.EditCmd)
	collection.CollectionCmd.AddCommand(collection.GroupEditCmd)
	collection.CollectionCmd.AddCommand(collection.CreateCmd)
	collection.CollectionCmd.AddCommand(collection.DeleteCmd)

	rootCmd.AddCommand(healthCmd)
}
