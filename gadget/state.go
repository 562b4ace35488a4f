package gadget

import (
	"os"

	"github.com/gadgetfs/gadget-client/configfs"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	stringsDir   = "strings"
	configsDir   = "configs"
	functionsDir = "functions"

	// DefaultConfigLabel is applied when a configuration is created without
	// an explicit label.
	DefaultConfigLabel = "config"

	// LangUSEnglish is the default language code for description strings.
	LangUSEnglish = 0x0409
)

// UDCDir is the external listing directory of available USB device
// controllers. Overridable, mainly for tests.
var UDCDir = "/sys/class/udc"

// State is the root of the in-memory entity graph mirroring one gadget
// configfs tree. The external tree stays authoritative: the graph is only
// updated after the external operation it reflects has succeeded.
//
// State is not safe for concurrent use without external synchronization.
type State struct {
	path string

	gadgets []*Gadget
}

// Init opens the gadget tree under configfsPath and parses it into a fresh
// State. Parsing is all or nothing: any structurally invalid entity fails
// the whole initialization and no partial graph is returned.
func Init(configfsPath string) (*State, error) {
	path, err := configfs.Join(configfsPath, "usb_gadget")
	if err != nil {
		return nil, err
	}

	ok, err := configfs.DirExists(path)
	if err != nil {
		return nil, errors.WithMessagef(err, "Failed to open gadget tree at %v", path)
	}
	if !ok {
		return nil, errors.WithMessagef(configfs.ErrNotFound,
			"Gadget tree not available at %v", path)
	}

	s := &State{path: path}
	if err := s.parseGadgets(); err != nil {
		return nil, errors.WithMessagef(err, "Failed to parse gadget tree at %v", path)
	}

	logrus.WithFields(logrus.Fields{
		"path":    path,
		"gadgets": len(s.gadgets),
	}).Debug("Gadget tree parsed")

	return s, nil
}

// Path returns the absolute path of the external tree's top-level
// directory.
func (s *State) Path() string {
	return s.path
}

// Gadget looks up a gadget by name, or nil.
func (s *State) Gadget(name string) *Gadget {
	for _, g := range s.gadgets {
		if g.name == name {
			return g
		}
	}
	return nil
}

// Gadgets returns the gadgets in ascending name order. The returned slice
// is shared and must not be mutated.
func (s *State) Gadgets() []*Gadget {
	return s.gadgets
}

// createEmptyGadget creates the external gadget directory and reads back
// the default UDC value, removing the directory again on failure.
func (s *State) createEmptyGadget(name string) (*Gadget, error) {
	gpath, err := configfs.Join(s.path, name)
	if err != nil {
		return nil, err
	}

	if err := os.Mkdir(gpath, 0o777); err != nil {
		return nil, errors.WithMessagef(configfs.Translate(err),
			"Failed to create gadget directory %v", gpath)
	}

	g := &Gadget{name: name, path: s.path, parent: s}

	// Should be empty but read the default.
	udc, err := g.ReadUDC()
	if err != nil {
		os.Remove(gpath)
		return nil, errors.WithMessage(err, "Failed to read default UDC")
	}
	g.udc = udc

	return g, nil
}

// CreateGadget creates a gadget and optionally writes its device
// attributes and description strings. On any failure the partially created
// external directory is removed and no entity is returned.
func (s *State) CreateGadget(name string, attrs *GadgetAttrs, strs *GadgetStrs) (*Gadget, error) {
	if name == "" {
		return nil, configfs.ErrInvalidParam
	}

	if s.Gadget(name) != nil {
		return nil, errors.WithMessagef(configfs.ErrExist, "Duplicate gadget name %q", name)
	}

	g, err := s.createEmptyGadget(name)
	if err != nil {
		return nil, err
	}

	if attrs != nil {
		err = g.SetAttrs(attrs)
	}
	if err == nil && strs != nil {
		err = g.SetStrs(LangUSEnglish, strs)
	}

	if err != nil {
		g.removeExternal()
		return nil, err
	}

	s.gadgets = insertSorted(s.gadgets, g, func(g *Gadget) string { return g.name })

	logrus.WithField("gadget", name).Info("Gadget created")

	return g, nil
}

// CreateGadgetVIDPID creates a gadget with just the vendor and product id
// attributes set.
func (s *State) CreateGadgetVIDPID(name string, idVendor, idProduct uint16) (*Gadget, error) {
	if name == "" {
		return nil, configfs.ErrInvalidParam
	}

	if s.Gadget(name) != nil {
		return nil, errors.WithMessagef(configfs.ErrExist, "Duplicate gadget name %q", name)
	}

	g, err := s.createEmptyGadget(name)
	if err != nil {
		return nil, err
	}

	err = configfs.WriteHex16(g.path, g.name, "idVendor", idVendor)
	if err == nil {
		err = configfs.WriteHex16(g.path, g.name, "idProduct", idProduct)
	}

	if err != nil {
		g.removeExternal()
		return nil, err
	}

	s.gadgets = insertSorted(s.gadgets, g, func(g *Gadget) string { return g.name })

	logrus.WithFields(logrus.Fields{
		"gadget":    name,
		"idVendor":  idVendor,
		"idProduct": idProduct,
	}).Info("Gadget created")

	return g, nil
}

// UDCs enumerates the available USB device controllers in ascending name
// order.
func UDCs() ([]string, error) {
	entries, err := os.ReadDir(UDCDir)
	if err != nil {
		return nil, errors.WithMessagef(configfs.Translate(err),
			"Failed to list controllers in %v", UDCDir)
	}

	udcs := make([]string, 0, len(entries))
	for _, entry := range entries {
		udcs = append(udcs, entry.Name())
	}

	return udcs, nil
}
