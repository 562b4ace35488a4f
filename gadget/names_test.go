package gadget

import (
	"testing"

	"github.com/gadgetfs/gadget-client/configfs"
	"github.com/stretchr/testify/assert"
)

func TestSplitFunctionNameRoundtrip(t *testing.T) {
	for _, segment := range []string{"acm.0", "gser.GS0", "rndis.usb0", "acm.with.dots"} {
		ftype, instance, err := splitFunctionName(segment)
		assert.NoError(t, err, segment)
		assert.Equal(t, segment, encodeFunctionName(ftype, instance))
	}
}

func TestSplitFunctionNameFirstDot(t *testing.T) {
	// The instance keeps everything after the first dot.
	ftype, instance, err := splitFunctionName("ncm.a.b.c")
	assert.NoError(t, err)
	assert.Equal(t, FunctionNCM, ftype)
	assert.Equal(t, "a.b.c", instance)
}

func TestSplitFunctionNameMalformed(t *testing.T) {
	for _, segment := range []string{"acm", ".acm", "acm.", "."} {
		_, _, err := splitFunctionName(segment)
		assert.Equal(t, configfs.ErrInvalidParam, configfs.ErrorOf(err), segment)
	}
}

func TestSplitFunctionNameUnknownType(t *testing.T) {
	// Well formed but outside the closed token table, including case
	// mismatches.
	for _, segment := range []string{"midi.0", "ACM.0", "ffs.instance"} {
		_, _, err := splitFunctionName(segment)
		assert.Equal(t, configfs.ErrNotSupported, configfs.ErrorOf(err), segment)
	}
}

func TestSplitConfigNameRoundtrip(t *testing.T) {
	for _, segment := range []string{"c.1", "config.255", "the.one.2"} {
		label, id, err := splitConfigName(segment)
		assert.NoError(t, err, segment)
		assert.Equal(t, segment, encodeConfigName(label, id))
	}
}

func TestSplitConfigNameLastDot(t *testing.T) {
	// Labels may contain dots; only the last dot separates the id.
	label, id, err := splitConfigName("a.b.17")
	assert.NoError(t, err)
	assert.Equal(t, "a.b", label)
	assert.Equal(t, 17, id)
}

func TestSplitConfigNameMalformed(t *testing.T) {
	for _, segment := range []string{
		"noid", ".1", "c.", "c. 1", "c.one", "c.1x", "c.-1", "c.256",
	} {
		_, _, err := splitConfigName(segment)
		assert.Equal(t, configfs.ErrInvalidParam, configfs.ErrorOf(err), segment)
	}
}

func TestSplitConfigNameAcceptsZero(t *testing.T) {
	// The decoder accepts id 0 even though CreateConfig rejects it; a
	// pre-existing external label.0 entry parses into an entity the
	// creation API could never produce.
	label, id, err := splitConfigName("c.0")
	assert.NoError(t, err)
	assert.Equal(t, "c", label)
	assert.Equal(t, 0, id)
}

func TestFunctionTypeTokens(t *testing.T) {
	assert.Equal(t, "gser", FunctionSerial.String())
	assert.Equal(t, "phonet", FunctionPhonet.String())
	assert.Equal(t, "", FunctionType(99).String())

	ftype, ok := LookupFunctionType("geth")
	assert.True(t, ok)
	assert.Equal(t, FunctionSubset, ftype)

	_, ok = LookupFunctionType("GETH")
	assert.False(t, ok)
}
