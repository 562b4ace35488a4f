package gadget

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gadgetfs/gadget-client/configfs"
	"github.com/pkg/errors"
)

// splitFunctionName decodes a function directory name of the form
// type.instance. The split is on the FIRST dot, so instances may themselves
// contain dots. A malformed segment fails with ErrInvalidParam; a
// well-formed segment with an unknown type token fails with
// ErrNotSupported.
func splitFunctionName(segment string) (FunctionType, string, error) {
	dot := strings.IndexByte(segment, '.')
	if dot <= 0 || dot == len(segment)-1 {
		return 0, "", errors.WithMessagef(configfs.ErrInvalidParam,
			"Malformed function name %q", segment)
	}

	ftype, ok := LookupFunctionType(segment[:dot])
	if !ok {
		return 0, "", errors.WithMessagef(configfs.ErrNotSupported,
			"Unknown function type in %q", segment)
	}

	return ftype, segment[dot+1:], nil
}

// splitConfigName decodes a configuration directory name of the form
// label.id. The split is on the LAST dot, so labels may themselves contain
// dots. The id must be a plain decimal integer in [0,255]; note that the
// parse range includes 0 while CreateConfig rejects it.
func splitConfigName(segment string) (string, int, error) {
	malformed := errors.WithMessagef(configfs.ErrInvalidParam,
		"Malformed config name %q", segment)

	dot := strings.LastIndexByte(segment, '.')
	if dot <= 0 || dot == len(segment)-1 {
		return "", 0, malformed
	}

	suffix := segment[dot+1:]
	if suffix[0] == ' ' || suffix[0] == '\t' {
		return "", 0, malformed
	}

	id, err := strconv.Atoi(suffix)
	if err != nil || id < 0 || id > 255 {
		return "", 0, malformed
	}

	return segment[:dot], id, nil
}

func encodeFunctionName(ftype FunctionType, instance string) string {
	return ftype.String() + "." + instance
}

func encodeConfigName(label string, id int) string {
	return fmt.Sprintf("%s.%d", label, id)
}

// langDirPath composes the per-language string directory of an entity,
// e.g. <dir>/<name>/strings/0x409.
func langDirPath(dir, name string, lang int) (string, error) {
	return configfs.Join(dir, name, stringsDir, fmt.Sprintf("0x%x", lang))
}
