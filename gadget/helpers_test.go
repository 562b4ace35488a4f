package gadget

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The fixtures below fabricate the directory layout the kernel would
// provide, so parse and mutation paths run against a real filesystem.

func newTestRoot(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	assert.NoError(t, os.Mkdir(filepath.Join(root, "usb_gadget"), 0o755))

	return root
}

func addGadgetDir(t *testing.T, root, name string) {
	t.Helper()

	gpath := filepath.Join(root, "usb_gadget", name)
	assert.NoError(t, os.Mkdir(gpath, 0o755))
	assert.NoError(t, os.Mkdir(filepath.Join(gpath, "functions"), 0o755))
	assert.NoError(t, os.Mkdir(filepath.Join(gpath, "configs"), 0o755))
	assert.NoError(t, os.Mkdir(filepath.Join(gpath, "strings"), 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(gpath, "UDC"), []byte("\n"), 0o644))
}

func addFunctionDir(t *testing.T, root, gadget, name string) {
	t.Helper()

	p := filepath.Join(root, "usb_gadget", gadget, "functions", name)
	assert.NoError(t, os.Mkdir(p, 0o755))
}

func addConfigDir(t *testing.T, root, gadget, name string) {
	t.Helper()

	p := filepath.Join(root, "usb_gadget", gadget, "configs", name)
	assert.NoError(t, os.Mkdir(p, 0o755))
	assert.NoError(t, os.Mkdir(filepath.Join(p, "strings"), 0o755))
}

func addBindingLink(t *testing.T, root, gadget, config, name, target string) {
	t.Helper()

	link := filepath.Join(root, "usb_gadget", gadget, "configs", config, name)
	assert.NoError(t, os.Symlink("../../functions/"+target, link))
}

// kernelize fabricates the subdirectories the kernel creates inside a
// fresh gadget directory.
func kernelize(t *testing.T, s *State, gadget string) {
	t.Helper()

	gpath := filepath.Join(s.Path(), gadget)
	for _, dir := range []string{"functions", "configs", "strings"} {
		assert.NoError(t, os.Mkdir(filepath.Join(gpath, dir), 0o755))
	}
}

func mustInit(t *testing.T, root string) *State {
	t.Helper()

	s, err := Init(root)
	assert.NoError(t, err)

	return s
}
