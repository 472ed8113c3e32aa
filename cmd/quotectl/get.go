package main

import (
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Look up a quote by its storage id, scanning every collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		q, err := a.gateway.FindByID(ctx, args[0])
		if err != nil {
			return err
		}
		printQuote(q)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
