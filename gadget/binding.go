package gadget

import (
	"github.com/gadgetfs/gadget-client/configfs"
	"github.com/sirupsen/logrus"
)

// Binding is a named link associating one function with one configuration,
// represented externally as a symbolic link. It holds non-owning references
// to both its configuration and its target function.
type Binding struct {
	name string
	path string // directory containing the symlink

	parent *Config
	target *Function
}

// Name returns the binding name.
func (b *Binding) Name() string {
	return b.name
}

// Config returns the owning configuration.
func (b *Binding) Config() *Config {
	return b.parent
}

// Target returns the bound function.
func (b *Binding) Target() *Function {
	return b.target
}

// Remove deletes the external symlink and detaches the binding from its
// configuration. A failed deletion leaves the binding intact.
func (b *Binding) Remove() error {
	if err := configfs.RemoveFile(b.path, b.name); err != nil {
		return err
	}

	c := b.parent
	for i, cur := range c.bindings {
		if cur == b {
			c.bindings = append(c.bindings[:i], c.bindings[i+1:]...)
			break
		}
	}

	logrus.WithFields(logrus.Fields{
		"config":  c.name,
		"binding": b.name,
	}).Info("Binding removed")

	return nil
}
