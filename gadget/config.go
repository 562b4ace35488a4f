package gadget

import (
	"os"

	"github.com/gadgetfs/gadget-client/configfs"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Config is a named, numbered bundle of function bindings presented as one
// selectable device configuration. It owns its bindings, kept in ascending
// name order, and holds a non-owning back-reference to its Gadget.
type Config struct {
	name  string
	path  string // directory containing the config directory
	label string
	id    int

	parent   *Gadget
	bindings []*Binding
}

// Name returns the composite name, label.id.
func (c *Config) Name() string {
	return c.name
}

// Label returns the configuration label.
func (c *Config) Label() string {
	return c.label
}

// ID returns the configuration id.
func (c *Config) ID() int {
	return c.id
}

// Gadget returns the owning gadget.
func (c *Config) Gadget() *Gadget {
	return c.parent
}

// Binding looks up a binding by name, or nil.
func (c *Config) Binding(name string) *Binding {
	for _, b := range c.bindings {
		if b.name == name {
			return b
		}
	}
	return nil
}

// BindingFor looks up the binding targeting the given function, or nil. A
// function is bound into a configuration at most once.
func (c *Config) BindingFor(f *Function) *Binding {
	for _, b := range c.bindings {
		if b.target == f {
			return b
		}
	}
	return nil
}

// Bindings returns the bindings in ascending name order. The returned
// slice is shared and must not be mutated.
func (c *Config) Bindings() []*Binding {
	return c.bindings
}

// Attrs reads the configuration attributes from the external tree.
func (c *Config) Attrs() (*ConfigAttrs, error) {
	maxPower, err := configfs.ReadDec(c.path, c.name, "MaxPower")
	if err != nil {
		return nil, err
	}

	bmAttrs, err := configfs.ReadHex(c.path, c.name, "bmAttributes")
	if err != nil {
		return nil, err
	}

	return &ConfigAttrs{
		BMaxPower:    uint8(maxPower),
		BMAttributes: uint8(bmAttrs),
	}, nil
}

// SetAttrs writes the configuration attributes.
func (c *Config) SetAttrs(attrs *ConfigAttrs) error {
	if attrs == nil {
		return configfs.ErrInvalidParam
	}

	if err := configfs.WriteDec(c.path, c.name, "MaxPower", int(attrs.BMaxPower)); err != nil {
		return err
	}

	return configfs.WriteHex8(c.path, c.name, "bmAttributes", attrs.BMAttributes)
}

// SetMaxPower writes the MaxPower attribute.
func (c *Config) SetMaxPower(maxPower int) error {
	return configfs.WriteDec(c.path, c.name, "MaxPower", maxPower)
}

// SetBMAttrs writes the bmAttributes attribute.
func (c *Config) SetBMAttrs(bmAttributes uint8) error {
	return configfs.WriteHex8(c.path, c.name, "bmAttributes", bmAttributes)
}

// Strs reads the description strings for the given language.
func (c *Config) Strs(lang int) (*ConfigStrs, error) {
	spath, err := langDirPath(c.path, c.name, lang)
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

	configuration, err := configfs.ReadString(spath, "", "configuration")
	if err != nil {
		return nil, err
	}

	return &ConfigStrs{Configuration: configuration}, nil
}

// SetStrs writes all description strings for the given language.
func (c *Config) SetStrs(lang int, strs *ConfigStrs) error {
	if strs == nil {
		return configfs.ErrInvalidParam
	}
	return c.SetString(lang, strs.Configuration)
}

// SetString writes the configuration description string for the given
// language, creating the language directory when missing.
func (c *Config) SetString(lang int, value string) error {
	spath, err := langDirPath(c.path, c.name, lang)
	if err != nil {
		return err
	}

	if err := configfs.EnsureDir(spath); err != nil {
		return err
	}

	return configfs.WriteString(spath, "", "configuration", value)
}

// RemoveStrs removes the string directory for the given language.
func (c *Config) RemoveStrs(lang int) error {
	spath, err := langDirPath(c.path, c.name, lang)
	if err != nil {
		return err
	}

	return configfs.RemoveDir(spath, "")
}

// AddBinding links the given function into this configuration under the
// binding name, creating the external symlink. The function must belong to
// the same gadget and may be bound into a configuration at most once.
func (c *Config) AddBinding(name string, f *Function) (*Binding, error) {
	if name == "" || f == nil {
		return nil, configfs.ErrInvalidParam
	}

	if f.parent != c.parent {
		return nil, errors.WithMessagef(configfs.ErrInvalidParam,
			"Function %v belongs to another gadget", f.name)
	}

	if c.Binding(name) != nil {
		return nil, errors.WithMessagef(configfs.ErrExist, "Duplicate binding name %q", name)
	}

	if c.BindingFor(f) != nil {
		return nil, errors.WithMessagef(configfs.ErrExist,
			"Function %v already bound in config %v", f.name, c.name)
	}

	fpath, err := configfs.Join(f.path, f.name)
	if err != nil {
		return nil, err
	}

	cpath, err := configfs.Join(c.path, c.name)
	if err != nil {
		return nil, err
	}

	bpath, err := configfs.Join(cpath, name)
	if err != nil {
		return nil, err
	}

	if err := os.Symlink(fpath, bpath); err != nil {
		return nil, errors.WithMessagef(configfs.Translate(err),
			"Failed to link %v -> %v", bpath, fpath)
	}

	b := &Binding{name: name, path: cpath, parent: c, target: f}
	c.bindings = insertSorted(c.bindings, b, func(b *Binding) string { return b.name })

	logrus.WithFields(logrus.Fields{
		"gadget":   c.parent.name,
		"config":   c.name,
		"binding":  name,
		"function": f.name,
	}).Info("Binding added")

	return b, nil
}
