package gadget

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gadgetfs/gadget-client/configfs"
	"github.com/stretchr/testify/assert"
)

func TestInitMissingTree(t *testing.T) {
	_, err := Init(filepath.Join(t.TempDir(), "nope"))
	assert.Equal(t, configfs.ErrNotFound, configfs.ErrorOf(err))
}

func TestInitEndToEnd(t *testing.T) {
	root := newTestRoot(t)
	addGadgetDir(t, root, "g1")
	addFunctionDir(t, root, "g1", "acm.0")
	addConfigDir(t, root, "g1", "c.1")
	addBindingLink(t, root, "g1", "c.1", "acm", "acm.0")

	s := mustInit(t, root)

	g := s.Gadget("g1")
	assert.NotNil(t, g)
	assert.Equal(t, "g1", g.Name())
	assert.Equal(t, "", g.UDC())

	functions := g.Functions()
	assert.Len(t, functions, 1)
	assert.Equal(t, "acm.0", functions[0].Name())
	assert.Equal(t, FunctionACM, functions[0].Type())
	assert.Equal(t, "0", functions[0].Instance())

	configs := g.Configs()
	assert.Len(t, configs, 1)
	assert.Equal(t, "c.1", configs[0].Name())
	assert.Equal(t, "c", configs[0].Label())
	assert.Equal(t, 1, configs[0].ID())

	bindings := configs[0].Bindings()
	assert.Len(t, bindings, 1)
	assert.Equal(t, "acm", bindings[0].Name())

	// The binding target is the very function entity already parsed, not a
	// lookalike.
	assert.True(t, bindings[0].Target() == functions[0])
}

func TestInitReadsBoundUDC(t *testing.T) {
	root := newTestRoot(t)
	addGadgetDir(t, root, "g1")
	udcFile := filepath.Join(root, "usb_gadget", "g1", "UDC")
	assert.NoError(t, os.WriteFile(udcFile, []byte("dummy_udc.0\n"), 0o644))

	s := mustInit(t, root)
	assert.Equal(t, "dummy_udc.0", s.Gadget("g1").UDC())
}

func TestInitFailsOnUnknownFunctionType(t *testing.T) {
	root := newTestRoot(t)
	addGadgetDir(t, root, "g1")
	addFunctionDir(t, root, "g1", "midi.0")

	_, err := Init(root)
	assert.Equal(t, configfs.ErrNotSupported, configfs.ErrorOf(err))
}

func TestInitFailsOnMalformedConfigName(t *testing.T) {
	root := newTestRoot(t)
	addGadgetDir(t, root, "g1")
	addConfigDir(t, root, "g1", "noid")

	_, err := Init(root)
	assert.Equal(t, configfs.ErrInvalidParam, configfs.ErrorOf(err))
}

func TestInitFailsOnUnresolvableBinding(t *testing.T) {
	root := newTestRoot(t)
	addGadgetDir(t, root, "g1")
	addFunctionDir(t, root, "g1", "acm.0")
	addConfigDir(t, root, "g1", "c.1")
	// Symlink to a function directory that was never parsed.
	addBindingLink(t, root, "g1", "c.1", "ghost", "acm.9")

	_, err := Init(root)
	assert.Equal(t, configfs.ErrOther, configfs.ErrorOf(err))
}

func TestInitFailsOnUndecodableBindingTarget(t *testing.T) {
	root := newTestRoot(t)
	addGadgetDir(t, root, "g1")
	addFunctionDir(t, root, "g1", "acm.0")
	addConfigDir(t, root, "g1", "c.1")
	addBindingLink(t, root, "g1", "c.1", "bad", "midi.0")

	// The whole gadget fails, not just the one binding.
	_, err := Init(root)
	assert.Equal(t, configfs.ErrNotSupported, configfs.ErrorOf(err))
}

func TestParseIgnoresNonSymlinkConfigEntries(t *testing.T) {
	root := newTestRoot(t)
	addGadgetDir(t, root, "g1")
	addFunctionDir(t, root, "g1", "acm.0")
	addConfigDir(t, root, "g1", "c.1")
	cpath := filepath.Join(root, "usb_gadget", "g1", "configs", "c.1")
	assert.NoError(t, os.WriteFile(filepath.Join(cpath, "MaxPower"), []byte("250\n"), 0o644))
	addBindingLink(t, root, "g1", "c.1", "acm", "acm.0")

	s := mustInit(t, root)
	assert.Len(t, s.Gadget("g1").Configs()[0].Bindings(), 1)
}

func TestParseConfigIDZeroQuirk(t *testing.T) {
	// An externally pre-existing label.0 directory parses fine even though
	// CreateConfig rejects id 0. Documented asymmetry, kept on purpose.
	root := newTestRoot(t)
	addGadgetDir(t, root, "g1")
	addConfigDir(t, root, "g1", "c.0")

	s := mustInit(t, root)

	configs := s.Gadget("g1").Configs()
	assert.Len(t, configs, 1)
	assert.Equal(t, "c.0", configs[0].Name())
	assert.Equal(t, 0, configs[0].ID())
}

func TestInitAbortsOnFirstBadGadget(t *testing.T) {
	root := newTestRoot(t)
	addGadgetDir(t, root, "bad")
	addFunctionDir(t, root, "bad", "nodot")
	addGadgetDir(t, root, "good")

	// No partial graph: initialization fails outright.
	_, err := Init(root)
	assert.Error(t, err)
}

func TestGadgetsSortedAfterParse(t *testing.T) {
	root := newTestRoot(t)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		addGadgetDir(t, root, name)
	}

	s := mustInit(t, root)

	var names []string
	for _, g := range s.Gadgets() {
		names = append(names, g.Name())
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)
}
