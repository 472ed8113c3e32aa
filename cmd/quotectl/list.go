package main

import (
	"github.com/spf13/cobra"

	"pcbxpress/pkg/model"
)

var (
	listServices serviceFlags
	listSort     string
	listDesc     bool
	listSkip     int64
	listLimit    int64
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List quotes across all backing collections",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		opts := model.FindOptions{Skip: listSkip, Limit: listLimit}
		if listSort != "" {
			opts.Sort = model.SortSpec{{Field: listSort, Desc: listDesc}}
		}

		quotes, err := a.gateway.FindMany(ctx, listServices.filter(), opts)
		if err != nil {
			return err
		}
		printJSON(quotes)
		return nil
	},
}

func init() {
	listServices.register(listCmd)
	listCmd.Flags().StringVar(&listSort, "sort", "", "sort field (default createdAt, newest first)")
	listCmd.Flags().BoolVar(&listDesc, "desc", false, "sort descending")
	listCmd.Flags().Int64Var(&listSkip, "skip", 0, "documents to skip")
	listCmd.Flags().Int64Var(&listLimit, "limit", 20, "page size (0 for all)")
	rootCmd.AddCommand(listCmd)
}
