package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	createFunctionArgs struct {
		gadget   string
		ftype    string
		instance string
	}

	createFunctionCmd = &cobra.Command{
		Use:   "create-function",
		Short: "Create a function in a gadget",
		Run: func(*cobra.Command, []string) {
			state := mustInitState()
			g := mustGetGadget(state, createFunctionArgs.gadget)
			ftype := mustLookupFunctionType(createFunctionArgs.ftype)

			f, err := g.CreateFunction(ftype, createFunctionArgs.instance, nil)
			if err != nil {
				logrus.WithError(err).Fatal("Failed to create function")
			}

			logrus.WithField("function", f.Name()).Info("Function ready")
		},
	}
)

func init() {
	createFunctionCmd.Flags().StringVar(&createFunctionArgs.gadget, "gadget", "", "Gadget name")
	createFunctionCmd.MarkFlagRequired("gadget")
	createFunctionCmd.Flags().StringVar(&createFunctionArgs.ftype, "type", "", "Function type (gser, acm, obex, ecm, geth, ncm, eem, rndis, phonet)")
	createFunctionCmd.MarkFlagRequired("type")
	createFunctionCmd.Flags().StringVar(&createFunctionArgs.instance, "instance", "", "Function instance token")
	createFunctionCmd.MarkFlagRequired("instance")

	rootCmd.AddCommand(createFunctionCmd)
}
