package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var countServices serviceFlags

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count quotes across all backing collections",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		n, err := a.gateway.Count(ctx, countServices.filter())
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil
	},
}

func init() {
	countServices.register(countCmd)
	rootCmd.AddCommand(countCmd)
}
