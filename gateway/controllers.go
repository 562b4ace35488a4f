package gateway

import (
	"net/http"

	"github.com/gadgetfs/gadget-client/common/api"
	"github.com/gadgetfs/gadget-client/gadget"
	"github.com/gin-gonic/gin"
)

var errNotFound = api.NewBusinessError(http.StatusNotFound, "Entity not found")

type gadgetSummary struct {
	Name      string   `json:"name"`
	UDC       string   `json:"udc"`
	Functions []string `json:"functions"`
	Configs   []string `json:"configs"`
}

func summarize(g *gadget.Gadget) gadgetSummary {
	summary := gadgetSummary{
		Name:      g.Name(),
		UDC:       g.UDC(),
		Functions: []string{},
		Configs:   []string{},
	}

	for _, f := range g.Functions() {
		summary.Functions = append(summary.Functions, f.Name())
	}
	for _, c := range g.Configs() {
		summary.Configs = append(summary.Configs, c.Name())
	}

	return summary
}

func findGadget(c *gin.Context) (*gadget.Gadget, error) {
	g := state.Gadget(c.Param("gadget"))
	if g == nil {
		return nil, errNotFound.WithData(c.Param("gadget"))
	}
	return g, nil
}

func findConfig(c *gin.Context, g *gadget.Gadget) (*gadget.Config, error) {
	for _, conf := range g.Configs() {
		if conf.Name() == c.Param("config") {
			return conf, nil
		}
	}
	return nil, errNotFound.WithData(c.Param("config"))
}

func listUDCs(c *gin.Context) (interface{}, error) {
	return gadget.UDCs()
}

func listGadgets(c *gin.Context) (interface{}, error) {
	stateMu.Lock()
	defer stateMu.Unlock()

	gadgets := []gadgetSummary{}
	for _, g := range state.Gadgets() {
		gadgets = append(gadgets, summarize(g))
	}

	return gadgets, nil
}

func getGadget(c *gin.Context) (interface{}, error) {
	stateMu.Lock()
	defer stateMu.Unlock()

	g, err := findGadget(c)
	if err != nil {
		return nil, err
	}

	return summarize(g), nil
}

func createGadget(c *gin.Context) (interface{}, error) {
	var input struct {
		Name      string `json:"name" binding:"required"`
		IDVendor  uint16 `json:"idVendor" binding:"required"`
		IDProduct uint16 `json:"idProduct" binding:"required"`

		SerialNumber string `json:"serialNumber"`
		Manufacturer string `json:"manufacturer"`
		Product      string `json:"product"`
	}

	if err := c.ShouldBind(&input); err != nil {
		return nil, err
	}

	stateMu.Lock()
	defer stateMu.Unlock()

	g, err := state.CreateGadgetVIDPID(input.Name, input.IDVendor, input.IDProduct)
	if err != nil {
		return nil, err
	}

	if input.SerialNumber != "" || input.Manufacturer != "" || input.Product != "" {
		err = g.SetStrs(gadget.LangUSEnglish, &gadget.GadgetStrs{
			SerialNumber: input.SerialNumber,
			Manufacturer: input.Manufacturer,
			Product:      input.Product,
		})
		if err != nil {
			return nil, err
		}
	}

	return summarize(g), nil
}

func enableGadget(c *gin.Context) (interface{}, error) {
	var input struct {
		UDC string `json:"udc"`
	}

	if err := c.ShouldBind(&input); err != nil {
		return nil, err
	}

	stateMu.Lock()
	defer stateMu.Unlock()

	g, err := findGadget(c)
	if err != nil {
		return nil, err
	}

	if err := g.Enable(input.UDC); err != nil {
		return nil, err
	}

	return gin.H{"udc": g.UDC()}, nil
}

func disableGadget(c *gin.Context) (interface{}, error) {
	stateMu.Lock()
	defer stateMu.Unlock()

	g, err := findGadget(c)
	if err != nil {
		return nil, err
	}

	return nil, g.Disable()
}

func createFunction(c *gin.Context) (interface{}, error) {
	var input struct {
		Type     string `json:"type" binding:"required"`
		Instance string `json:"instance" binding:"required"`
	}

	if err := c.ShouldBind(&input); err != nil {
		return nil, err
	}

	ftype, ok := gadget.LookupFunctionType(input.Type)
	if !ok {
		return nil, api.ErrValidation.WithData(input.Type)
	}

	stateMu.Lock()
	defer stateMu.Unlock()

	g, err := findGadget(c)
	if err != nil {
		return nil, err
	}

	f, err := g.CreateFunction(ftype, input.Instance, nil)
	if err != nil {
		return nil, err
	}

	return gin.H{"name": f.Name()}, nil
}

func createConfig(c *gin.Context) (interface{}, error) {
	var input struct {
		ID    int    `json:"id" binding:"required,min=1,max=255"`
		Label string `json:"label"`

		MaxPower     *uint8 `json:"maxPower"`
		BMAttributes *uint8 `json:"bmAttributes"`
	}

	if err := c.ShouldBind(&input); err != nil {
		return nil, err
	}

	var attrs *gadget.ConfigAttrs
	if input.MaxPower != nil && input.BMAttributes != nil {
		attrs = &gadget.ConfigAttrs{
			BMaxPower:    *input.MaxPower,
			BMAttributes: *input.BMAttributes,
		}
	}

	stateMu.Lock()
	defer stateMu.Unlock()

	g, err := findGadget(c)
	if err != nil {
		return nil, err
	}

	conf, err := g.CreateConfig(input.ID, input.Label, attrs, nil)
	if err != nil {
		return nil, err
	}

	return gin.H{"name": conf.Name()}, nil
}

func addBinding(c *gin.Context) (interface{}, error) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Type     string `json:"type" binding:"required"`
		Instance string `json:"instance" binding:"required"`
	}

	if err := c.ShouldBind(&input); err != nil {
		return nil, err
	}

	ftype, ok := gadget.LookupFunctionType(input.Type)
	if !ok {
		return nil, api.ErrValidation.WithData(input.Type)
	}

	stateMu.Lock()
	defer stateMu.Unlock()

	g, err := findGadget(c)
	if err != nil {
		return nil, err
	}

	conf, err := findConfig(c, g)
	if err != nil {
		return nil, err
	}

	f := g.Function(ftype, input.Instance)
	if f == nil {
		return nil, errNotFound.WithData(input.Type + "." + input.Instance)
	}

	b, err := conf.AddBinding(input.Name, f)
	if err != nil {
		return nil, err
	}

	return gin.H{"name": b.Name(), "target": b.Target().Name()}, nil
}

func removeBinding(c *gin.Context) (interface{}, error) {
	stateMu.Lock()
	defer stateMu.Unlock()

	g, err := findGadget(c)
	if err != nil {
		return nil, err
	}

	conf, err := findConfig(c, g)
	if err != nil {
		return nil, err
	}

	b := conf.Binding(c.Param("binding"))
	if b == nil {
		return nil, errNotFound.WithData(c.Param("binding"))
	}

	return nil, b.Remove()
}
