package gadget

import (
	"net"

	"github.com/gadgetfs/gadget-client/configfs"
	"github.com/pkg/errors"
)

// Function is one elementary capability unit of a gadget, identified by a
// type from the closed enumeration plus a caller-chosen instance token.
// Its composite name is always type.instance; the parts are stored
// separately and the name is derived, never the other way around.
type Function struct {
	name     string
	path     string // directory containing the function directory
	instance string
	ftype    FunctionType

	parent *Gadget
}

// Name returns the composite name, type.instance.
func (f *Function) Name() string {
	return f.name
}

// Type returns the function type.
func (f *Function) Type() FunctionType {
	return f.ftype
}

// Instance returns the instance token.
func (f *Function) Instance() string {
	return f.instance
}

// Gadget returns the owning gadget.
func (f *Function) Gadget() *Gadget {
	return f.parent
}

// Attrs reads the type-specific attribute payload from the external tree.
// The concrete type of the result is keyed by the function type.
func (f *Function) Attrs() (FunctionAttrs, error) {
	switch f.ftype {
	case FunctionSerial, FunctionACM, FunctionOBEX:
		portNum, err := configfs.ReadDec(f.path, f.name, "port_num")
		if err != nil {
			return nil, err
		}
		return &SerialAttrs{PortNum: portNum}, nil

	case FunctionECM, FunctionSubset, FunctionNCM, FunctionEEM, FunctionRNDIS:
		return f.netAttrs()

	case FunctionPhonet:
		ifname, err := configfs.ReadString(f.path, f.name, "ifname")
		if err != nil {
			return nil, err
		}
		return &PhonetAttrs{Ifname: ifname}, nil

	default:
		return nil, configfs.ErrNotSupported
	}
}

func (f *Function) netAttrs() (*NetAttrs, error) {
	var attrs NetAttrs

	str, err := configfs.ReadString(f.path, f.name, "dev_addr")
	if err != nil {
		return nil, err
	}
	if attrs.DevAddr, err = net.ParseMAC(str); err != nil {
		return nil, errors.WithMessagef(configfs.ErrIO, "Malformed dev_addr %q", str)
	}

	str, err = configfs.ReadString(f.path, f.name, "host_addr")
	if err != nil {
		return nil, err
	}
	if attrs.HostAddr, err = net.ParseMAC(str); err != nil {
		return nil, errors.WithMessagef(configfs.ErrIO, "Malformed host_addr %q", str)
	}

	if attrs.Ifname, err = configfs.ReadString(f.path, f.name, "ifname"); err != nil {
		return nil, err
	}

	if attrs.QMult, err = configfs.ReadDec(f.path, f.name, "qmult"); err != nil {
		return nil, err
	}

	return &attrs, nil
}

// SetAttrs writes the type-specific attribute payload. The concrete type
// of attrs must match the function type or ErrInvalidParam is returned.
func (f *Function) SetAttrs(attrs FunctionAttrs) error {
	if attrs == nil {
		return configfs.ErrInvalidParam
	}

	switch f.ftype {
	case FunctionSerial, FunctionACM, FunctionOBEX:
		serial, ok := attrs.(*SerialAttrs)
		if !ok {
			return errors.WithMessagef(configfs.ErrInvalidParam,
				"Serial attributes required for %v function", f.ftype)
		}
		return configfs.WriteDec(f.path, f.name, "port_num", serial.PortNum)

	case FunctionECM, FunctionSubset, FunctionNCM, FunctionEEM, FunctionRNDIS:
		netAttrs, ok := attrs.(*NetAttrs)
		if !ok {
			return errors.WithMessagef(configfs.ErrInvalidParam,
				"Net attributes required for %v function", f.ftype)
		}
		return f.setNetAttrs(netAttrs)

	case FunctionPhonet:
		phonet, ok := attrs.(*PhonetAttrs)
		if !ok {
			return errors.WithMessagef(configfs.ErrInvalidParam,
				"Phonet attributes required for %v function", f.ftype)
		}
		return configfs.WriteString(f.path, f.name, "ifname", phonet.Ifname)

	default:
		return configfs.ErrNotSupported
	}
}

func (f *Function) setNetAttrs(attrs *NetAttrs) error {
	if err := configfs.WriteString(f.path, f.name, "dev_addr", attrs.DevAddr.String()); err != nil {
		return err
	}
	if err := configfs.WriteString(f.path, f.name, "host_addr", attrs.HostAddr.String()); err != nil {
		return err
	}
	if err := configfs.WriteString(f.path, f.name, "ifname", attrs.Ifname); err != nil {
		return err
	}

	return configfs.WriteDec(f.path, f.name, "qmult", attrs.QMult)
}

// SetNetDevAddr writes the dev_addr attribute of a network function.
func (f *Function) SetNetDevAddr(addr net.HardwareAddr) error {
	if addr == nil {
		return configfs.ErrInvalidParam
	}
	return configfs.WriteString(f.path, f.name, "dev_addr", addr.String())
}

// SetNetHostAddr writes the host_addr attribute of a network function.
func (f *Function) SetNetHostAddr(addr net.HardwareAddr) error {
	if addr == nil {
		return configfs.ErrInvalidParam
	}
	return configfs.WriteString(f.path, f.name, "host_addr", addr.String())
}

// SetNetQMult writes the qmult attribute of a network function.
func (f *Function) SetNetQMult(qmult int) error {
	return configfs.WriteDec(f.path, f.name, "qmult", qmult)
}
