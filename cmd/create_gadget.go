package cmd

import (
	"github.com/gadgetfs/gadget-client/gadget"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	createGadgetArgs struct {
		name string

		idVendor  uint16
		idProduct uint16

		serialNumber string
		manufacturer string
		product      string
	}

	createGadgetCmd = &cobra.Command{
		Use:   "create-gadget",
		Short: "Create a gadget",
		Run: func(*cobra.Command, []string) {
			state := mustInitState()

			g, err := state.CreateGadgetVIDPID(createGadgetArgs.name,
				createGadgetArgs.idVendor, createGadgetArgs.idProduct)
			if err != nil {
				logrus.WithError(err).Fatal("Failed to create gadget")
			}

			args := createGadgetArgs
			if args.serialNumber != "" || args.manufacturer != "" || args.product != "" {
				err = g.SetStrs(gadget.LangUSEnglish, &gadget.GadgetStrs{
					SerialNumber: args.serialNumber,
					Manufacturer: args.manufacturer,
					Product:      args.product,
				})
				if err != nil {
					logrus.WithError(err).Fatal("Failed to set gadget strings")
				}
			}

			logrus.WithField("gadget", g.Name()).Info("Gadget ready")
		},
	}
)

func init() {
	createGadgetCmd.Flags().StringVar(&createGadgetArgs.name, "name", "", "Gadget name")
	createGadgetCmd.MarkFlagRequired("name")
	createGadgetCmd.Flags().Uint16Var(&createGadgetArgs.idVendor, "vid", 0, "Vendor id")
	createGadgetCmd.MarkFlagRequired("vid")
	createGadgetCmd.Flags().Uint16Var(&createGadgetArgs.idProduct, "pid", 0, "Product id")
	createGadgetCmd.MarkFlagRequired("pid")
	createGadgetCmd.Flags().StringVar(&createGadgetArgs.serialNumber, "serial", "", "Serial number string")
	createGadgetCmd.Flags().StringVar(&createGadgetArgs.manufacturer, "manufacturer", "", "Manufacturer string")
	createGadgetCmd.Flags().StringVar(&createGadgetArgs.product, "product", "", "Product string")

	rootCmd.AddCommand(createGadgetCmd)
}
