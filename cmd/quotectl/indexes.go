package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var indexesCmd = &cobra.Command{
	Use:   "ensure-indexes",
	Short: "Create the unique quote_id and created_at indexes in every collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		collections := a.reg.Collections()
		if err := a.store.EnsureIndexes(ctx, collections); err != nil {
			return err
		}
		fmt.Printf("indexes ensured on %d collections\n", len(collections))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexesCmd)
}
