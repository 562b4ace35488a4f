package gateway

import (
	"sync"

	"github.com/gadgetfs/gadget-client/common/api"
	"github.com/gadgetfs/gadget-client/gadget"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var (
	// state is the shared entity graph. The gadget package is not safe for
	// concurrent use, so every handler holds stateMu for its whole body.
	state   *gadget.State
	stateMu sync.Mutex
)

// MustServeLocal parses the gadget tree and serves the REST API until the
// process exits.
func MustServeLocal(conf Config) {
	s, err := gadget.Init(conf.ConfigFS)
	if err != nil {
		logrus.WithError(err).WithField("configfs", conf.ConfigFS).Fatal("Failed to init gadget state")
	}

	state = s

	logrus.WithFields(logrus.Fields{
		"endpoint": conf.Endpoint,
		"configfs": conf.ConfigFS,
	}).Info("Serving gadget API")

	api.MustServe(conf.Endpoint, routes, api.RouterOption{
		OriginsAllowed: conf.OriginsAllowed,
	})
}

func routes(router *gin.Engine) {
	router.GET("/udcs", api.Wrap(listUDCs))

	gadgets := router.Group("/gadgets")
	gadgets.GET("", api.Wrap(listGadgets))
	gadgets.POST("", api.Wrap(createGadget))
	gadgets.GET("/:gadget", api.Wrap(getGadget))
	gadgets.POST("/:gadget/enable", api.Wrap(enableGadget))
	gadgets.POST("/:gadget/disable", api.Wrap(disableGadget))
	gadgets.POST("/:gadget/functions", api.Wrap(createFunction))
	gadgets.POST("/:gadget/configs", api.Wrap(createConfig))
	gadgets.POST("/:gadget/configs/:config/bindings", api.Wrap(addBinding))
	gadgets.DELETE("/:gadget/configs/:config/bindings/:binding", api.Wrap(removeBinding))
}
