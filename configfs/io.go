package configfs

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// readLine reads the first line of the file at path into a bounded buffer.
// The trailing newline, if any, is kept.
func readLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", Translate(err)
	}
	defer f.Close()

	buf := make([]byte, MaxStrLength)
	n, err := f.Read(buf)
	if n == 0 {
		if err == nil || err == io.EOF {
			return "", ErrIO
		}
		return "", Translate(err)
	}

	line := string(buf[:n])
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx+1]
	}

	return line, nil
}

// ReadString reads a single-line string attribute, stripping one trailing
// newline if present.
func ReadString(dir, name, file string) (string, error) {
	p, err := Join(dir, name, file)
	if err != nil {
		return "", err
	}

	line, err := readLine(p)
	if err != nil {
		return "", errors.WithMessagef(err, "Failed to read %v", p)
	}

	return strings.TrimSuffix(line, "\n"), nil
}

// parseRadixInt parses the leading integer of line in the given base, the
// way strtol does: leading whitespace and an optional sign are accepted, a
// 0x prefix is accepted for base 16, trailing characters are ignored. It
// fails with ErrOther when no digit could be consumed.
func parseRadixInt(line string, base int) (int, error) {
	s := strings.TrimLeft(line, " \t")

	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	if base == 16 && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
		s = s[2:]
	}

	value := 0
	digits := 0
	for _, c := range []byte(s) {
		var d int
		switch {
		case c >= '0' && c <= '9':
			d = int(c - '0')
		case c >= 'a' && c <= 'f':
			d = int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = int(c-'A') + 10
		default:
			d = base
		}
		if d >= base {
			break
		}
		value = value*base + d
		digits++
	}

	if digits == 0 {
		return 0, ErrOther
	}

	if neg {
		value = -value
	}

	return value, nil
}

func readInt(dir, name, file string, base int) (int, error) {
	p, err := Join(dir, name, file)
	if err != nil {
		return 0, err
	}

	line, err := readLine(p)
	if err != nil {
		return 0, errors.WithMessagef(err, "Failed to read %v", p)
	}

	value, err := parseRadixInt(line, base)
	if err != nil {
		return 0, errors.WithMessagef(err, "Failed to parse %v as base %v integer", p, base)
	}

	return value, nil
}

// ReadDec reads a decimal integer attribute.
func ReadDec(dir, name, file string) (int, error) {
	return readInt(dir, name, file, 10)
}

// ReadHex reads a hexadecimal integer attribute.
func ReadHex(dir, name, file string) (int, error) {
	return readInt(dir, name, file, 16)
}

func writeBuf(dir, name, file, buf string) error {
	if len(buf) > MaxStrLength {
		return errors.WithMessagef(ErrInvalidParam, "Value for %v exceeds %v bytes", file, MaxStrLength)
	}

	p, err := Join(dir, name, file)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.WithMessagef(Translate(err), "Failed to open %v for writing", p)
	}

	_, werr := f.WriteString(buf)
	cerr := f.Close()

	if werr != nil {
		return errors.WithMessagef(Translate(werr), "Failed to write %v", p)
	}
	if cerr != nil {
		return errors.WithMessagef(Translate(cerr), "Failed to flush %v", p)
	}

	return nil
}

// WriteString writes a single-line string attribute, newline terminated.
func WriteString(dir, name, file, value string) error {
	return writeBuf(dir, name, file, value+"\n")
}

// WriteDec writes a decimal integer attribute.
func WriteDec(dir, name, file string, value int) error {
	return writeBuf(dir, name, file, fmt.Sprintf("%d\n", value))
}

// WriteHex8 writes an 8-bit value as 0x-prefixed hexadecimal.
func WriteHex8(dir, name, file string, value uint8) error {
	return writeBuf(dir, name, file, fmt.Sprintf("0x%02x\n", value))
}

// WriteHex16 writes a 16-bit value as 0x-prefixed hexadecimal.
func WriteHex16(dir, name, file string, value uint16) error {
	return writeBuf(dir, name, file, fmt.Sprintf("0x%04x\n", value))
}

// RemoveFile unlinks dir/name.
func RemoveFile(dir, name string) error {
	p, err := Join(dir, name)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil {
		return errors.WithMessagef(Translate(err), "Failed to remove %v", p)
	}

	return nil
}

// RemoveDir removes the directory dir/name.
func RemoveDir(dir, name string) error {
	p, err := Join(dir, name)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil {
		return errors.WithMessagef(Translate(err), "Failed to remove %v", p)
	}

	return nil
}

// EnsureDir creates path unless it already exists as a directory.
func EnsureDir(path string) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return nil
	} else if err != nil && !os.IsNotExist(err) {
		return errors.WithMessagef(Translate(err), "Failed to stat %v", path)
	}

	if err := os.Mkdir(path, 0o777); err != nil {
		return errors.WithMessagef(Translate(err), "Failed to create %v", path)
	}

	return nil
}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, Translate(err)
	}

	return info.IsDir(), nil
}
