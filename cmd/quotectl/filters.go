package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pcbxpress/pkg/model"
)

// serviceFlags are shared by every command that takes a service filter.
type serviceFlags struct {
	service  string
	services []string
	exclude  []string
}

func (f *serviceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.service, "service", "", "restrict to one service key")
	cmd.Flags().StringSliceVar(&f.services, "services", nil, "restrict to any of these service keys")
	cmd.Flags().StringSliceVar(&f.exclude, "exclude-services", nil, "restrict to all but these service keys")
}

func (f *serviceFlags) filter() model.Filter {
	switch {
	case f.service != "":
		return model.Filter{Service: model.ServiceIs(f.service)}
	case len(f.services) > 0:
		return model.Filter{Service: model.ServiceIn(f.services...)}
	case len(f.exclude) > 0:
		return model.Filter{Service: model.ServiceNotIn(f.exclude...)}
	default:
		return model.Filter{Service: model.AnyService()}
	}
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fatal("encode output", err)
	}
}

func printQuote(q *model.Quote) {
	if q == nil {
		fmt.Println("not found")
		return
	}
	printJSON(q)
}
