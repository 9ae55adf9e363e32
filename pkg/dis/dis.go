// Package dis implements the Device Information Service catalog: the
// well-known identities of the service and its characteristics, the wire
// codecs of its compound values, and typed local/remote views over an
// attribute table.
package dis

import (
	"errors"
	"fmt"

	"github.com/srg/gattkit/internal/codec"
)

// Well-known identities, normalized 16-bit form.
const (
	ServiceUUID = "180a"

	SystemIDUUID                 = "2a23"
	ModelNumberUUID              = "2a24"
	SerialNumberUUID             = "2a25"
	FirmwareRevisionUUID         = "2a26"
	HardwareRevisionUUID         = "2a27"
	SoftwareRevisionUUID         = "2a28"
	ManufacturerNameUUID         = "2a29"
	RegulatoryCertificationsUUID = "2a2a"
	PnPIDUUID                    = "2a50"
)

// CharacteristicUUIDs lists every characteristic of the service in catalog
// order.
var CharacteristicUUIDs = []string{
	SystemIDUUID,
	ModelNumberUUID,
	SerialNumberUUID,
	FirmwareRevisionUUID,
	HardwareRevisionUUID,
	SoftwareRevisionUUID,
	ManufacturerNameUUID,
	RegulatoryCertificationsUUID,
	PnPIDUUID,
}

// ErrTrailingBytes is returned when a compound value decodes successfully but
// bytes remain after the record.
var ErrTrailingBytes = errors.New("trailing bytes after record")

// VendorIDSource identifies the registry the PnP vendor ID comes from.
type VendorIDSource uint8

const (
	VendorIDSourceBluetoothSIG VendorIDSource = 0x01
	VendorIDSourceUSB          VendorIDSource = 0x02
)

func (s VendorIDSource) String() string {
	switch s {
	case VendorIDSourceBluetoothSIG:
		return "Bluetooth SIG"
	case VendorIDSourceUSB:
		return "USB Implementer's Forum"
	default:
		return fmt.Sprintf("vendor_id_source(%d)", uint8(s))
	}
}

// Wire schemas of the compound characteristics.
var (
	pnpIDRecord    = codec.NewRecord(codec.U8, codec.U16, codec.U16, codec.U16)
	systemIDRecord = codec.NewRecord(codec.U40, codec.U24)
)

// PnPID is the Plug and Play identity of the device: who made it, which
// product it is, and which revision. Encoded as u8 | u16 | u16 | u16,
// little-endian, 7 bytes.
type PnPID struct {
	VendorIDSource VendorIDSource
	VendorID       uint16
	ProductID      uint16
	ProductVersion uint16
}

// Encode serializes the identity to its 7-byte wire form.
func (p PnPID) Encode() []byte {
	data, err := pnpIDRecord.Encode(
		uint64(p.VendorIDSource),
		uint64(p.VendorID),
		uint64(p.ProductID),
		uint64(p.ProductVersion),
	)
	if err != nil {
		// Arity is fixed by the struct; this cannot happen.
		panic(err)
	}
	return data
}

func (p PnPID) String() string {
	return fmt.Sprintf("vendor=0x%04x (%s) product=0x%04x version=0x%04x",
		p.VendorID, p.VendorIDSource, p.ProductID, p.ProductVersion)
}

// DecodePnPID parses a complete PnP ID value. The value must be exactly one
// record; short input fails with a codec error and trailing bytes with
// ErrTrailingBytes.
func DecodePnPID(data []byte) (PnPID, error) {
	values, rest, err := pnpIDRecord.Decode(data)
	if err != nil {
		return PnPID{}, fmt.Errorf("failed to decode PnP ID: %w", err)
	}
	if len(rest) != 0 {
		return PnPID{}, fmt.Errorf("PnP ID: %w: %d extra", ErrTrailingBytes, len(rest))
	}
	return PnPID{
		VendorIDSource: VendorIDSource(values[0]),
		VendorID:       uint16(values[1]),
		ProductID:      uint16(values[2]),
		ProductVersion: uint16(values[3]),
	}, nil
}

// SystemID is the device's extended unique identifier: a 40-bit
// manufacturer-defined ID followed by the 24-bit organizationally unique
// identifier. Encoded little-endian, 8 bytes.
type SystemID struct {
	ManufacturerID           uint64 // low 40 bits significant
	OrganizationallyUniqueID uint32 // low 24 bits significant
}

// Encode serializes the identifier to its 8-byte wire form. Values wider than
// the field are truncated to the field's width.
func (s SystemID) Encode() []byte {
	data, err := systemIDRecord.Encode(
		s.ManufacturerID,
		uint64(s.OrganizationallyUniqueID),
	)
	if err != nil {
		panic(err)
	}
	return data
}

func (s SystemID) String() string {
	return fmt.Sprintf("manufacturer=0x%010x oui=0x%06x", s.ManufacturerID, s.OrganizationallyUniqueID)
}

// DecodeSystemID parses a complete System ID value, rejecting short input and
// trailing bytes.
func DecodeSystemID(data []byte) (SystemID, error) {
	values, rest, err := systemIDRecord.Decode(data)
	if err != nil {
		return SystemID{}, fmt.Errorf("failed to decode System ID: %w", err)
	}
	if len(rest) != 0 {
		return SystemID{}, fmt.Errorf("System ID: %w: %d extra", ErrTrailingBytes, len(rest))
	}
	return SystemID{
		ManufacturerID:           values[0],
		OrganizationallyUniqueID: uint32(values[1]),
	}, nil
}
