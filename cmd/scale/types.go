package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maumercado/scaleapi-go/pkg/scaleapi"
)

func newTypesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the supported task types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			types := scaleapi.TaskTypes()
			if c.jsonOutput {
				writeJSON(c.stdout, types)
				return nil
			}
			for _, t := range types {
				fmt.Fprintln(c.stdout, t)
			}
			return nil
		},
	}
}
