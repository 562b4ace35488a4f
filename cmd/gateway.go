package cmd

import (
	"github.com/gadgetfs/gadget-client/gateway"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	gatewayArgs struct {
		config   string
		endpoint string
	}

	gatewayCmd = &cobra.Command{
		Use:   "gateway",
		Short: "Serve a REST API over the gadget tree",
		Run: func(*cobra.Command, []string) {
			conf := gateway.DefaultConfig()

			if gatewayArgs.config != "" {
				var err error
				if conf, err = gateway.LoadConfig(gatewayArgs.config); err != nil {
					logrus.WithError(err).Fatal("Failed to load gateway config")
				}
			}

			if gatewayArgs.endpoint != "" {
				conf.Endpoint = gatewayArgs.endpoint
			}
			if rootCmd.PersistentFlags().Changed("configfs") {
				conf.ConfigFS = configfsPath
			}

			gateway.MustServeLocal(conf)
		},
	}
)

func init() {
	gatewayCmd.Flags().StringVar(&gatewayArgs.config, "config", "", "Gateway yaml config file")
	gatewayCmd.Flags().StringVar(&gatewayArgs.endpoint, "endpoint", "", "Endpoint to listen on")

	rootCmd.AddCommand(gatewayCmd)
}
