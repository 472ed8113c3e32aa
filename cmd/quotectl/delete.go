package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a quote by its storage id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		q, err := a.gateway.DeleteByID(ctx, args[0])
		if err != nil {
			return err
		}
		printQuote(q)
		return nil
	},
}

var (
	purgeServices serviceFlags
	purgeYes      bool
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete every quote matching a service filter",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !purgeYes {
			return fmt.Errorf("refusing to purge without --yes")
		}

		ctx, cancel := commandContext()
		defer cancel()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		n, err := a.gateway.DeleteMany(ctx, purgeServices.filter())
		if err != nil {
			// Fan-out deletes are not all-or-nothing: report what already
			// went through before failing.
			fmt.Printf("deleted %d before failure\n", n)
			return err
		}
		fmt.Printf("deleted %d\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	purgeServices.register(purgeCmd)
	purgeCmd.Flags().BoolVar(&purgeYes, "yes", false, "confirm the purge")
	rootCmd.AddCommand(purgeCmd)
}
