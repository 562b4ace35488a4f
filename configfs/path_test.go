package configfs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoin(t *testing.T) {
	p, err := Join("/sys/kernel/config/usb_gadget", "g1", "UDC")
	assert.NoError(t, err)
	assert.Equal(t, "/sys/kernel/config/usb_gadget/g1/UDC", p)
}

func TestJoinSkipsEmptySegments(t *testing.T) {
	p, err := Join("/tmp/strings/0x409", "", "serialnumber")
	assert.NoError(t, err)
	assert.Equal(t, "/tmp/strings/0x409/serialnumber", p)
}

func TestJoinTooLong(t *testing.T) {
	long := strings.Repeat("a", MaxPathLength)

	_, err := Join("/tmp", long)
	assert.Equal(t, ErrPathTooLong, ErrorOf(err))
}

func TestJoinBoundaryLength(t *testing.T) {
	// One byte below the limit still composes.
	seg := strings.Repeat("a", MaxPathLength-len("/tmp/")-1)

	p, err := Join("/tmp", seg)
	assert.NoError(t, err)
	assert.Equal(t, MaxPathLength-1, len(p))
}
