package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Cheertaboi/checkout-flows/internal/repository"
)

func flowsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flows",
		Short: "Print the route to backend endpoint table",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ROUTE\tKIND\tENDPOINT\tMODE\tORDER ID")
			for _, f := range repository.NewFlowRepo().All() {
				orderID := "-"
				if f.RequiresOrderID {
					orderID = f.OrderID
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", f.Route, f.Kind, f.EndpointPath, f.Mode, orderID)
			}
			return tw.Flush()
		},
	}
}
