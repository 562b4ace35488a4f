package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the gadget tree",
	Run: func(*cobra.Command, []string) {
		state := mustInitState()

		for _, g := range state.Gadgets() {
			udc := g.UDC()
			if udc == "" {
				udc = "(disabled)"
			}
			fmt.Printf("%s  %s\n", g.Name(), udc)

			for _, f := range g.Functions() {
				fmt.Printf("  function %s\n", f.Name())
			}

			for _, c := range g.Configs() {
				fmt.Printf("  config %s\n", c.Name())
				for _, b := range c.Bindings() {
					fmt.Printf("    %s -> %s\n", b.Name(), b.Target().Name())
				}
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
