package cmd

import (
	"fmt"

	"github.com/gadgetfs/gadget-client/gadget"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	enableArgs struct {
		gadget string
		udc    string
	}

	enableCmd = &cobra.Command{
		Use:   "enable",
		Short: "Bind a gadget to a controller",
		Run: func(*cobra.Command, []string) {
			state := mustInitState()
			g := mustGetGadget(state, enableArgs.gadget)

			if err := g.Enable(enableArgs.udc); err != nil {
				logrus.WithError(err).Fatal("Failed to enable gadget")
			}
		},
	}

	disableCmd = &cobra.Command{
		Use:   "disable",
		Short: "Unbind a gadget from its controller",
		Run: func(*cobra.Command, []string) {
			state := mustInitState()
			g := mustGetGadget(state, enableArgs.gadget)

			if err := g.Disable(); err != nil {
				logrus.WithError(err).Fatal("Failed to disable gadget")
			}
		},
	}

	udcsCmd = &cobra.Command{
		Use:   "udcs",
		Short: "List available controllers",
		Run: func(*cobra.Command, []string) {
			udcs, err := gadget.UDCs()
			if err != nil {
				logrus.WithError(err).Fatal("Failed to list controllers")
			}

			for _, udc := range udcs {
				fmt.Println(udc)
			}
		},
	}
)

func init() {
	enableCmd.Flags().StringVar(&enableArgs.gadget, "gadget", "", "Gadget name")
	enableCmd.MarkFlagRequired("gadget")
	enableCmd.Flags().StringVar(&enableArgs.udc, "udc", "", "Controller name (first available if omitted)")

	disableCmd.Flags().StringVar(&enableArgs.gadget, "gadget", "", "Gadget name")
	disableCmd.MarkFlagRequired("gadget")

	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
	rootCmd.AddCommand(udcsCmd)
}
