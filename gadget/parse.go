package gadget

import (
	"io/fs"
	"os"
	"path"

	"github.com/gadgetfs/gadget-client/configfs"
	"github.com/pkg/errors"
)

// The walk reconstructs the entity graph from the external tree. Any
// structurally invalid entity aborts the walk for its whole gadget, which
// aborts initialization; callers never observe a partial graph.

func (s *State) parseGadgets() error {
	entries, err := os.ReadDir(s.path)
	if err != nil {
		return configfs.Translate(err)
	}

	for _, entry := range entries {
		g := &Gadget{name: entry.Name(), path: s.path, parent: s}
		if err := g.parse(); err != nil {
			return errors.WithMessagef(err, "Failed to parse gadget %q", g.name)
		}
		s.gadgets = append(s.gadgets, g)
	}

	return nil
}

func (g *Gadget) parse() error {
	// UDC bound to, if any. An absent or empty value means unbound.
	udc, err := g.ReadUDC()
	if err != nil {
		return err
	}
	g.udc = udc

	// Functions strictly before configs: binding symlink targets must
	// resolve against already-parsed functions.
	if err := g.parseFunctions(); err != nil {
		return err
	}

	return g.parseConfigs()
}

func (g *Gadget) parseFunctions() error {
	fdir, err := configfs.Join(g.path, g.name, functionsDir)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(fdir)
	if err != nil {
		return configfs.Translate(err)
	}

	for _, entry := range entries {
		ftype, instance, err := splitFunctionName(entry.Name())
		if err != nil {
			return err
		}

		g.functions = append(g.functions, &Function{
			name:     entry.Name(),
			path:     fdir,
			instance: instance,
			ftype:    ftype,
			parent:   g,
		})
	}

	return nil
}

func (g *Gadget) parseConfigs() error {
	cdir, err := configfs.Join(g.path, g.name, configsDir)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(cdir)
	if err != nil {
		return configfs.Translate(err)
	}

	for _, entry := range entries {
		label, id, err := splitConfigName(entry.Name())
		if err != nil {
			return err
		}

		c := &Config{
			name:   entry.Name(),
			path:   cdir,
			label:  label,
			id:     id,
			parent: g,
		}

		if err := c.parseBindings(); err != nil {
			return errors.WithMessagef(err, "Failed to parse config %q", c.name)
		}

		g.configs = append(g.configs, c)
	}

	return nil
}

func (c *Config) parseBindings() error {
	cpath, err := configfs.Join(c.path, c.name)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(cpath)
	if err != nil {
		return configfs.Translate(err)
	}

	for _, entry := range entries {
		// Bindings are the symlink entries; attribute files and string
		// directories live alongside them and are skipped.
		if entry.Type()&fs.ModeSymlink == 0 {
			continue
		}

		if err := c.parseBinding(cpath, entry.Name()); err != nil {
			return errors.WithMessagef(err, "Failed to parse binding %q", entry.Name())
		}
	}

	return nil
}

func (c *Config) parseBinding(cpath, name string) error {
	bpath, err := configfs.Join(cpath, name)
	if err != nil {
		return err
	}

	target, err := os.Readlink(bpath)
	if err != nil {
		return configfs.Translate(err)
	}

	// The target is a full function path; only its final segment names the
	// function.
	ftype, instance, err := splitFunctionName(path.Base(target))
	if err != nil {
		return err
	}

	f := c.parent.Function(ftype, instance)
	if f == nil {
		return errors.WithMessagef(configfs.ErrOther,
			"Binding target %v.%v not present in gadget %q", ftype, instance, c.parent.name)
	}

	c.bindings = append(c.bindings, &Binding{
		name:   name,
		path:   cpath,
		parent: c,
		target: f,
	})

	return nil
}
