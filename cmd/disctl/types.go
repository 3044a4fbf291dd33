package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/danmuck/disctl/internal/protocol/pdu"
	"github.com/spf13/cobra"
)

func typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List registered PDU types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := pdu.DefaultRegistry()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tFAMILY")
			for _, typ := range reg.Types() {
				factory, _ := reg.Resolve(typ)
				fmt.Fprintf(w, "%d\t%s\t%s\n", uint8(typ), typ, factory().Family())
			}
			return w.Flush()
		},
	}
}
