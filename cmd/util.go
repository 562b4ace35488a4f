package cmd

import (
	"github.com/gadgetfs/gadget-client/gadget"
	"github.com/sirupsen/logrus"
)

func mustInitState() *gadget.State {
	state, err := gadget.Init(configfsPath)
	if err != nil {
		logrus.WithError(err).WithField("configfs", configfsPath).Fatal("Failed to init gadget state")
	}

	return state
}

func mustGetGadget(state *gadget.State, name string) *gadget.Gadget {
	g := state.Gadget(name)
	if g == nil {
		logrus.WithField("gadget", name).Fatal("Gadget not found")
	}

	return g
}

func mustLookupFunctionType(token string) gadget.FunctionType {
	ftype, ok := gadget.LookupFunctionType(token)
	if !ok {
		logrus.WithField("type", token).Fatal("Unknown function type")
	}

	return ftype
}
