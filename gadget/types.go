package gadget

import "net"

// FunctionType enumerates the supported USB function kinds. The set is
// closed: tokens outside it fail name decoding with ErrNotSupported.
type FunctionType int

const (
	FunctionSerial FunctionType = iota // gser
	FunctionACM                        // acm
	FunctionOBEX                       // obex
	FunctionECM                        // ecm
	FunctionSubset                     // geth
	FunctionNCM                        // ncm
	FunctionEEM                        // eem
	FunctionRNDIS                      // rndis
	FunctionPhonet                     // phonet
)

var functionTypeTokens = [...]string{
	"gser",
	"acm",
	"obex",
	"ecm",
	"geth",
	"ncm",
	"eem",
	"rndis",
	"phonet",
}

func (t FunctionType) String() string {
	if t < 0 || int(t) >= len(functionTypeTokens) {
		return ""
	}
	return functionTypeTokens[t]
}

// LookupFunctionType resolves a type token with a case-sensitive exact
// match against the closed token table.
func LookupFunctionType(token string) (FunctionType, bool) {
	for i, name := range functionTypeTokens {
		if name == token {
			return FunctionType(i), true
		}
	}
	return 0, false
}

// GadgetAttrs holds the device descriptor fields of a gadget. Field names
// follow the external attribute files.
type GadgetAttrs struct {
	BcdUSB          uint16
	BDeviceClass    uint8
	BDeviceSubClass uint8
	BDeviceProtocol uint8
	BMaxPacketSize0 uint8
	IDVendor        uint16
	IDProduct       uint16
	BcdDevice       uint16
}

// GadgetStrs holds the description strings of a gadget for one language.
type GadgetStrs struct {
	SerialNumber string
	Manufacturer string
	Product      string
}

// ConfigAttrs holds the attribute fields of a configuration.
type ConfigAttrs struct {
	BMaxPower    uint8
	BMAttributes uint8
}

// ConfigStrs holds the description strings of a configuration for one
// language.
type ConfigStrs struct {
	Configuration string
}

// FunctionAttrs is the per-type attribute payload of a function. The
// concrete type must match the function's kind: SerialAttrs for serial
// class functions, NetAttrs for network class, PhonetAttrs for phonet.
type FunctionAttrs interface {
	isFunctionAttrs()
}

// SerialAttrs is the payload of gser, acm and obex functions.
type SerialAttrs struct {
	PortNum int
}

// NetAttrs is the payload of ecm, geth, ncm, eem and rndis functions.
type NetAttrs struct {
	DevAddr  net.HardwareAddr
	HostAddr net.HardwareAddr
	Ifname   string
	QMult    int
}

// PhonetAttrs is the payload of phonet functions.
type PhonetAttrs struct {
	Ifname string
}

func (SerialAttrs) isFunctionAttrs() {}
func (NetAttrs) isFunctionAttrs()    {}
func (PhonetAttrs) isFunctionAttrs() {}
