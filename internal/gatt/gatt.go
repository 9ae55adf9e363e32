// Package gatt models a remote-attribute table: services containing
// characteristics and descriptors, addressed by 16-bit handles, with access
// properties. The same model backs both roles — a local table the caller
// authors and publishes, and a remote table populated by discovery.
package gatt

import (
	"fmt"

	"github.com/srg/gattkit/internal/bledb"
)

// Handle is the numeric address of an attribute within the table.
type Handle uint16

// InvalidHandle is the reserved "unassigned" sentinel. A handle is assigned
// once by the table owner and never reused for the table's lifetime.
const InvalidHandle Handle = 0x0000

// Valid reports whether the handle has been assigned.
func (h Handle) Valid() bool {
	return h != InvalidHandle
}

func (h Handle) String() string {
	return fmt.Sprintf("0x%04x", uint16(h))
}

// SecurityLevel is the access precondition on characteristic reads/writes,
// ordered by strength. It is recorded here and enforced by the transport.
type SecurityLevel int

const (
	SecurityNoAccess SecurityLevel = iota
	SecurityOpen
	SecurityJustWorks
	SecurityMITM
)

func (s SecurityLevel) String() string {
	switch s {
	case SecurityNoAccess:
		return "no_access"
	case SecurityOpen:
		return "open"
	case SecurityJustWorks:
		return "just_works"
	case SecurityMITM:
		return "mitm"
	default:
		return fmt.Sprintf("security(%d)", int(s))
	}
}

// Properties describes a characteristic's access surface.
type Properties struct {
	Read              bool
	Write             bool
	Notify            bool
	Indicate          bool
	Broadcast         bool
	Security          SecurityLevel
	MaxLength         int
	VariableLength    bool
	PreferIndications bool // prefer indications over notifications when both are set
}

func (p Properties) String() string {
	flags := ""
	appendFlag := func(set bool, name string) {
		if !set {
			return
		}
		if flags != "" {
			flags += ","
		}
		flags += name
	}
	appendFlag(p.Read, "read")
	appendFlag(p.Write, "write")
	appendFlag(p.Notify, "notify")
	appendFlag(p.Indicate, "indicate")
	appendFlag(p.Broadcast, "broadcast")
	if flags == "" {
		flags = "none"
	}
	return flags
}

// ServiceKind distinguishes primary from secondary services.
type ServiceKind int

const (
	PrimaryService ServiceKind = iota
	SecondaryService
)

func (k ServiceKind) String() string {
	if k == SecondaryService {
		return "secondary"
	}
	return "primary"
}

// DescriptorType is the closed set of characteristic descriptor identities.
type DescriptorType int

const (
	DescriptorExtendedProperties DescriptorType = iota
	DescriptorUserDescription
	DescriptorClientConfiguration
	DescriptorServerConfiguration
	DescriptorPresentationFormat
	DescriptorAggregateFormat
)

// UUID returns the descriptor type's 16-bit identity in normalized form.
func (d DescriptorType) UUID() string {
	switch d {
	case DescriptorExtendedProperties:
		return "2900"
	case DescriptorUserDescription:
		return "2901"
	case DescriptorClientConfiguration:
		return "2902"
	case DescriptorServerConfiguration:
		return "2903"
	case DescriptorPresentationFormat:
		return "2904"
	case DescriptorAggregateFormat:
		return "2905"
	default:
		return ""
	}
}

func (d DescriptorType) String() string {
	if name := bledb.LookupDescriptor(d.UUID()); name != "" {
		return name
	}
	return fmt.Sprintf("descriptor(%d)", int(d))
}

// Descriptor is a typed attribute owned by exactly one characteristic.
type Descriptor struct {
	Type   DescriptorType
	Handle Handle
}

// UUID returns the descriptor's identity in normalized form.
func (d *Descriptor) UUID() string {
	return d.Type.UUID()
}

// KnownName returns the human-readable descriptor name.
func (d *Descriptor) KnownName() string {
	return bledb.LookupDescriptor(d.Type.UUID())
}
