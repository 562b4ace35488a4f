package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	createConfigArgs struct {
		gadget string
		id     int
		label  string
	}

	createConfigCmd = &cobra.Command{
		Use:   "create-config",
		Short: "Create a configuration in a gadget",
		Run: func(*cobra.Command, []string) {
			state := mustInitState()
			g := mustGetGadget(state, createConfigArgs.gadget)

			c, err := g.CreateConfig(createConfigArgs.id, createConfigArgs.label, nil, nil)
			if err != nil {
				logrus.WithError(err).Fatal("Failed to create config")
			}

			logrus.WithField("config", c.Name()).Info("Config ready")
		},
	}
)

func init() {
	createConfigCmd.Flags().StringVar(&createConfigArgs.gadget, "gadget", "", "Gadget name")
	createConfigCmd.MarkFlagRequired("gadget")
	createConfigCmd.Flags().IntVar(&createConfigArgs.id, "id", 0, "Config id in [1,255]")
	createConfigCmd.MarkFlagRequired("id")
	createConfigCmd.Flags().StringVar(&createConfigArgs.label, "label", "", "Config label (default applied if omitted)")

	rootCmd.AddCommand(createConfigCmd)
}
