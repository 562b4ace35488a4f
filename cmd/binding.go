package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	bindingArgs struct {
		gadget   string
		config   int
		name     string
		ftype    string
		instance string
	}

	addBindingCmd = &cobra.Command{
		Use:   "add-binding",
		Short: "Bind a function into a configuration",
		Run: func(*cobra.Command, []string) {
			state := mustInitState()
			g := mustGetGadget(state, bindingArgs.gadget)

			c := g.Config(bindingArgs.config, "")
			if c == nil {
				logrus.WithField("id", bindingArgs.config).Fatal("Config not found")
			}

			f := g.Function(mustLookupFunctionType(bindingArgs.ftype), bindingArgs.instance)
			if f == nil {
				logrus.WithFields(logrus.Fields{
					"type":     bindingArgs.ftype,
					"instance": bindingArgs.instance,
				}).Fatal("Function not found")
			}

			b, err := c.AddBinding(bindingArgs.name, f)
			if err != nil {
				logrus.WithError(err).Fatal("Failed to add binding")
			}

			logrus.WithFields(logrus.Fields{
				"binding": b.Name(),
				"target":  b.Target().Name(),
			}).Info("Binding ready")
		},
	}

	rmBindingCmd = &cobra.Command{
		Use:   "rm-binding",
		Short: "Remove a binding from a configuration",
		Run: func(*cobra.Command, []string) {
			state := mustInitState()
			g := mustGetGadget(state, bindingArgs.gadget)

			c := g.Config(bindingArgs.config, "")
			if c == nil {
				logrus.WithField("id", bindingArgs.config).Fatal("Config not found")
			}

			b := c.Binding(bindingArgs.name)
			if b == nil {
				logrus.WithField("binding", bindingArgs.name).Fatal("Binding not found")
			}

			if err := b.Remove(); err != nil {
				logrus.WithError(err).Fatal("Failed to remove binding")
			}
		},
	}
)

func init() {
	for _, cmd := range []*cobra.Command{addBindingCmd, rmBindingCmd} {
		cmd.Flags().StringVar(&bindingArgs.gadget, "gadget", "", "Gadget name")
		cmd.MarkFlagRequired("gadget")
		cmd.Flags().IntVar(&bindingArgs.config, "config", 0, "Config id")
		cmd.MarkFlagRequired("config")
		cmd.Flags().StringVar(&bindingArgs.name, "name", "", "Binding name")
		cmd.MarkFlagRequired("name")
	}

	addBindingCmd.Flags().StringVar(&bindingArgs.ftype, "type", "", "Target function type")
	addBindingCmd.MarkFlagRequired("type")
	addBindingCmd.Flags().StringVar(&bindingArgs.instance, "instance", "", "Target function instance")
	addBindingCmd.MarkFlagRequired("instance")

	rootCmd.AddCommand(addBindingCmd)
	rootCmd.AddCommand(rmBindingCmd)
}
