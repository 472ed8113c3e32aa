package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pcbxpress/pkg/model"
)

var (
	createService string
	createData    string
	createFile    string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a quote and print its assigned identifiers",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := map[string]interface{}{}
		switch {
		case createFile != "":
			data, err := os.ReadFile(createFile)
			if err != nil {
				return err
			}
			if err := json.Unmarshal(data, &payload); err != nil {
				return fmt.Errorf("parse %s: %w", createFile, err)
			}
		case createData != "":
			if err := json.Unmarshal([]byte(createData), &payload); err != nil {
				return fmt.Errorf("parse --data: %w", err)
			}
		}

		ctx, cancel := commandContext()
		defer cancel()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		q, err := a.gateway.Create(ctx, &model.Quote{Service: createService, Fields: payload})
		if err != nil {
			return err
		}
		printQuote(q)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createService, "service", "", "service key (unknown values fall back to the default service)")
	createCmd.Flags().StringVar(&createData, "data", "", "payload as inline JSON")
	createCmd.Flags().StringVar(&createFile, "file", "", "payload as a JSON file")
	rootCmd.AddCommand(createCmd)
}
