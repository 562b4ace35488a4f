package gadget

import (
	"os"

	"github.com/gadgetfs/gadget-client/configfs"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Gadget is one configurable device entity. It owns its functions and
// configurations, both kept in ascending composite-name order, and holds a
// non-owning back-reference to its State.
type Gadget struct {
	name string
	path string // directory containing the gadget directory
	udc  string

	parent    *State
	functions []*Function
	configs   []*Config
}

// Name returns the gadget name.
func (g *Gadget) Name() string {
	return g.name
}

// UDC returns the name of the controller the gadget is currently bound to,
// or the empty string when unbound. The value reflects the last successful
// parse, enable or disable, not a fresh read; use ReadUDC for that.
func (g *Gadget) UDC() string {
	return g.udc
}

// ReadUDC reads the bound controller name directly from the external tree.
// An absent or empty attribute means unbound and yields the empty string.
func (g *Gadget) ReadUDC() (string, error) {
	udc, err := configfs.ReadString(g.path, g.name, "UDC")
	if err != nil {
		switch configfs.ErrorOf(err) {
		case configfs.ErrNotFound, configfs.ErrIO:
			return "", nil
		}
		return "", err
	}

	return udc, nil
}

// State returns the owning state.
func (g *Gadget) State() *State {
	return g.parent
}

// Function looks up a function by type and instance, or nil. Uniqueness is
// defined on the (type, instance) pair.
func (g *Gadget) Function(ftype FunctionType, instance string) *Function {
	for _, f := range g.functions {
		if f.ftype == ftype && f.instance == instance {
			return f
		}
	}
	return nil
}

// Functions returns the functions in ascending composite-name order. The
// returned slice is shared and must not be mutated.
func (g *Gadget) Functions() []*Function {
	return g.functions
}

// Config looks up a configuration by id, additionally requiring the label
// to match when it is non-empty. Returns nil when not found; no
// configuration ever holds id 0.
func (g *Gadget) Config(id int, label string) *Config {
	for _, c := range g.configs {
		if c.id == id && (label == "" || c.label == label) {
			return c
		}
	}
	return nil
}

// Configs returns the configurations in ascending composite-name order.
// The returned slice is shared and must not be mutated.
func (g *Gadget) Configs() []*Config {
	return g.configs
}

// removeExternal removes the gadget's external directory, best effort.
func (g *Gadget) removeExternal() {
	if p, err := configfs.Join(g.path, g.name); err == nil {
		os.Remove(p)
	}
}

// Attrs reads the device descriptor attributes from the external tree.
func (g *Gadget) Attrs() (*GadgetAttrs, error) {
	var attrs GadgetAttrs

	fields := []struct {
		file  string
		store func(int)
	}{
		{"bcdUSB", func(v int) { attrs.BcdUSB = uint16(v) }},
		{"bcdDevice", func(v int) { attrs.BcdDevice = uint16(v) }},
		{"bDeviceClass", func(v int) { attrs.BDeviceClass = uint8(v) }},
		{"bDeviceSubClass", func(v int) { attrs.BDeviceSubClass = uint8(v) }},
		{"bDeviceProtocol", func(v int) { attrs.BDeviceProtocol = uint8(v) }},
		{"bMaxPacketSize0", func(v int) { attrs.BMaxPacketSize0 = uint8(v) }},
		{"idVendor", func(v int) { attrs.IDVendor = uint16(v) }},
		{"idProduct", func(v int) { attrs.IDProduct = uint16(v) }},
	}

	for _, field := range fields {
		v, err := configfs.ReadHex(g.path, g.name, field.file)
		if err != nil {
			return nil, err
		}
		field.store(v)
	}

	return &attrs, nil
}

// SetAttrs writes all device descriptor attributes.
func (g *Gadget) SetAttrs(attrs *GadgetAttrs) error {
	if attrs == nil {
		return configfs.ErrInvalidParam
	}

	if err := configfs.WriteHex16(g.path, g.name, "bcdUSB", attrs.BcdUSB); err != nil {
		return err
	}
	if err := configfs.WriteHex8(g.path, g.name, "bDeviceClass", attrs.BDeviceClass); err != nil {
		return err
	}
	if err := configfs.WriteHex8(g.path, g.name, "bDeviceSubClass", attrs.BDeviceSubClass); err != nil {
		return err
	}
	if err := configfs.WriteHex8(g.path, g.name, "bDeviceProtocol", attrs.BDeviceProtocol); err != nil {
		return err
	}
	if err := configfs.WriteHex8(g.path, g.name, "bMaxPacketSize0", attrs.BMaxPacketSize0); err != nil {
		return err
	}
	if err := configfs.WriteHex16(g.path, g.name, "idVendor", attrs.IDVendor); err != nil {
		return err
	}
	if err := configfs.WriteHex16(g.path, g.name, "idProduct", attrs.IDProduct); err != nil {
		return err
	}

	return configfs.WriteHex16(g.path, g.name, "bcdDevice", attrs.BcdDevice)
}

// SetVendorID writes the idVendor attribute.
func (g *Gadget) SetVendorID(idVendor uint16) error {
	return configfs.WriteHex16(g.path, g.name, "idVendor", idVendor)
}

// SetProductID writes the idProduct attribute.
func (g *Gadget) SetProductID(idProduct uint16) error {
	return configfs.WriteHex16(g.path, g.name, "idProduct", idProduct)
}

// SetDeviceClass writes the bDeviceClass attribute.
func (g *Gadget) SetDeviceClass(class uint8) error {
	return configfs.WriteHex8(g.path, g.name, "bDeviceClass", class)
}

// SetDeviceSubClass writes the bDeviceSubClass attribute.
func (g *Gadget) SetDeviceSubClass(subClass uint8) error {
	return configfs.WriteHex8(g.path, g.name, "bDeviceSubClass", subClass)
}

// SetDeviceProtocol writes the bDeviceProtocol attribute.
func (g *Gadget) SetDeviceProtocol(protocol uint8) error {
	return configfs.WriteHex8(g.path, g.name, "bDeviceProtocol", protocol)
}

// SetDeviceMaxPacket writes the bMaxPacketSize0 attribute.
func (g *Gadget) SetDeviceMaxPacket(maxPacketSize0 uint8) error {
	return configfs.WriteHex8(g.path, g.name, "bMaxPacketSize0", maxPacketSize0)
}

// SetDeviceBCDDevice writes the bcdDevice attribute.
func (g *Gadget) SetDeviceBCDDevice(bcdDevice uint16) error {
	return configfs.WriteHex16(g.path, g.name, "bcdDevice", bcdDevice)
}

// SetDeviceBCDUSB writes the bcdUSB attribute.
func (g *Gadget) SetDeviceBCDUSB(bcdUSB uint16) error {
	return configfs.WriteHex16(g.path, g.name, "bcdUSB", bcdUSB)
}

func (g *Gadget) strsPath(lang int) (string, error) {
	return langDirPath(g.path, g.name, lang)
}

// Strs reads the description strings for the given language.
func (g *Gadget) Strs(lang int) (*GadgetStrs, error) {
	spath, err := g.strsPath(lang)
	if err != nil {
		return nil, err
	}

	ok, err := configfs.DirExists(spath)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.WithMessagef(configfs.ErrNotFound,
			"No strings for language 0x%x", lang)
	}

	var strs GadgetStrs
	if strs.SerialNumber, err = configfs.ReadString(spath, "", "serialnumber"); err != nil {
		return nil, err
	}
	if strs.Manufacturer, err = configfs.ReadString(spath, "", "manufacturer"); err != nil {
		return nil, err
	}
	if strs.Product, err = configfs.ReadString(spath, "", "product"); err != nil {
		return nil, err
	}

	return &strs, nil
}

// SetStrs writes all description strings for the given language, creating
// the language directory when missing.
func (g *Gadget) SetStrs(lang int, strs *GadgetStrs) error {
	if strs == nil {
		return configfs.ErrInvalidParam
	}

	spath, err := g.strsPath(lang)
	if err != nil {
		return err
	}

	if err := configfs.EnsureDir(spath); err != nil {
		return err
	}

	if err := configfs.WriteString(spath, "", "serialnumber", strs.SerialNumber); err != nil {
		return err
	}
	if err := configfs.WriteString(spath, "", "manufacturer", strs.Manufacturer); err != nil {
		return err
	}

	return configfs.WriteString(spath, "", "product", strs.Product)
}

func (g *Gadget) setStr(lang int, file, value string) error {
	spath, err := g.strsPath(lang)
	if err != nil {
		return err
	}

	if err := configfs.EnsureDir(spath); err != nil {
		return err
	}

	return configfs.WriteString(spath, "", file, value)
}

// SetSerialNumber writes the serialnumber string for the given language.
func (g *Gadget) SetSerialNumber(lang int, serialNumber string) error {
	return g.setStr(lang, "serialnumber", serialNumber)
}

// SetManufacturer writes the manufacturer string for the given language.
func (g *Gadget) SetManufacturer(lang int, manufacturer string) error {
	return g.setStr(lang, "manufacturer", manufacturer)
}

// SetProduct writes the product string for the given language.
func (g *Gadget) SetProduct(lang int, product string) error {
	return g.setStr(lang, "product", product)
}

// RemoveStrs removes the string directory for the given language.
func (g *Gadget) RemoveStrs(lang int) error {
	spath, err := g.strsPath(lang)
	if err != nil {
		return err
	}

	return configfs.RemoveDir(spath, "")
}

// CreateFunction creates a function of the given type and instance,
// optionally writing its type-specific attributes. On failure the external
// directory is removed and no entity is returned.
func (g *Gadget) CreateFunction(ftype FunctionType, instance string, attrs FunctionAttrs) (*Function, error) {
	if instance == "" || ftype.String() == "" {
		return nil, configfs.ErrInvalidParam
	}

	if g.Function(ftype, instance) != nil {
		return nil, errors.WithMessagef(configfs.ErrExist,
			"Duplicate function %v.%v", ftype, instance)
	}

	fdir, err := configfs.Join(g.path, g.name, functionsDir)
	if err != nil {
		return nil, err
	}

	f := &Function{
		name:     encodeFunctionName(ftype, instance),
		path:     fdir,
		instance: instance,
		ftype:    ftype,
		parent:   g,
	}

	fpath, err := configfs.Join(fdir, f.name)
	if err != nil {
		return nil, err
	}

	if err := os.Mkdir(fpath, 0o777); err != nil {
		return nil, errors.WithMessagef(configfs.Translate(err),
			"Failed to create function directory %v", fpath)
	}

	if attrs != nil {
		if err := f.SetAttrs(attrs); err != nil {
			os.Remove(fpath)
			return nil, err
		}
	}

	g.functions = insertSorted(g.functions, f, func(f *Function) string { return f.name })

	logrus.WithFields(logrus.Fields{
		"gadget":   g.name,
		"function": f.name,
	}).Info("Function created")

	return f, nil
}

// CreateConfig creates a configuration with the given id, optionally
// writing its attributes and description string. The id must lie in
// [1,255] and be unused in this gadget; the label is not part of the
// uniqueness key. On failure the external directory is removed and no
// entity is returned.
func (g *Gadget) CreateConfig(id int, label string, attrs *ConfigAttrs, strs *ConfigStrs) (*Config, error) {
	if id <= 0 || id > 255 {
		return nil, errors.WithMessagef(configfs.ErrInvalidParam,
			"Config id %v out of range [1,255]", id)
	}

	if label == "" {
		label = DefaultConfigLabel
	}

	if g.Config(id, "") != nil {
		return nil, errors.WithMessagef(configfs.ErrExist, "Duplicate config id %v", id)
	}

	cdir, err := configfs.Join(g.path, g.name, configsDir)
	if err != nil {
		return nil, err
	}

	c := &Config{
		name:   encodeConfigName(label, id),
		path:   cdir,
		label:  label,
		id:     id,
		parent: g,
	}

	cpath, err := configfs.Join(cdir, c.name)
	if err != nil {
		return nil, err
	}

	if err := os.Mkdir(cpath, 0o777); err != nil {
		return nil, errors.WithMessagef(configfs.Translate(err),
			"Failed to create config directory %v", cpath)
	}

	if attrs != nil {
		err = c.SetAttrs(attrs)
	}
	if err == nil && strs != nil {
		err = c.SetString(LangUSEnglish, strs.Configuration)
	}

	if err != nil {
		os.RemoveAll(cpath)
		return nil, err
	}

	g.configs = insertSorted(g.configs, c, func(c *Config) string { return c.name })

	logrus.WithFields(logrus.Fields{
		"gadget": g.name,
		"config": c.name,
	}).Info("Config created")

	return c, nil
}

// Enable binds the gadget to the named controller. An empty udc selects
// the first available controller in name order. The in-memory binding is
// updated only after the external write succeeds.
func (g *Gadget) Enable(udc string) error {
	if udc == "" {
		udcs, err := UDCs()
		if err != nil {
			return err
		}
		if len(udcs) == 0 {
			return errors.WithMessage(configfs.ErrNotFound, "No controller available")
		}
		udc = udcs[0]
	}

	if err := configfs.WriteString(g.path, g.name, "UDC", udc); err != nil {
		return err
	}
	g.udc = udc

	logrus.WithFields(logrus.Fields{
		"gadget": g.name,
		"udc":    udc,
	}).Info("Gadget enabled")

	return nil
}

// Disable unbinds the gadget from its controller by writing an empty
// controller name. The in-memory binding is cleared only after the
// external write succeeds.
func (g *Gadget) Disable() error {
	if err := configfs.WriteString(g.path, g.name, "UDC", ""); err != nil {
		return err
	}
	g.udc = ""

	logrus.WithField("gadget", g.name).Info("Gadget disabled")

	return nil
}
