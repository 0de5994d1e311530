package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/scandock/scanless/internal/scanner"
	"github.com/spf13/cobra"
)

func newDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List attached scan devices",
		Long:  `Queries the SANE subsystem and prints every attached scan device.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			driver := scanner.NewSaneDriver()
			devices, err := driver.Devices(cmd.Context())
			if err != nil {
				return err
			}

			if len(devices) == 0 {
				fmt.Println("No scan devices found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tVENDOR\tMODEL\tTYPE")
			for _, d := range devices {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Name, d.Vendor, d.Model, d.Type)
			}
			return w.Flush()
		},
	}
}
