package gatt

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/srg/gattkit/internal/bledb"
)

// handleAllocator hands out attribute handles. The database is the sole
// owner of handle allocation; discovered services carry no allocator and
// receive their handles from discovery.
type handleAllocator interface {
	allocHandle() (Handle, error)
}

// Service is a named grouping of related characteristics, primary or
// secondary, spanning a handle range [start, end]. Characteristics keep
// declaration order: insertion order is the order peers see.
type Service struct {
	uuid  string
	kind  ServiceKind
	alloc handleAllocator

	startHandle Handle
	endHandle   Handle

	chars *orderedmap.OrderedMap[string, *Characteristic]
}

func newService(uuid string, kind ServiceKind, alloc handleAllocator, start Handle) *Service {
	return &Service{
		uuid:        bledb.NormalizeUUID(uuid),
		kind:        kind,
		alloc:       alloc,
		startHandle: start,
		chars:       orderedmap.New[string, *Characteristic](),
	}
}

// NewDiscoveredService builds a service shell from discovery results.
// Handles are the peer's; no allocation happens on this side.
func NewDiscoveredService(uuid string, kind ServiceKind, start, end Handle) *Service {
	s := newService(uuid, kind, nil, start)
	s.endHandle = end
	return s
}

// UUID returns the service identity in normalized form.
func (s *Service) UUID() string {
	return s.uuid
}

// KnownName returns the human-readable name for well-known identities, or "".
func (s *Service) KnownName() string {
	return bledb.LookupService(s.uuid)
}

// Kind reports whether the service is primary or secondary.
func (s *Service) Kind() ServiceKind {
	return s.kind
}

// StartHandle returns the first handle of the service's range.
func (s *Service) StartHandle() Handle {
	return s.startHandle
}

// EndHandle returns the last handle of the service's range. When no end has
// been recorded yet it normalizes to the start handle; end >= start holds
// once both are valid.
func (s *Service) EndHandle() Handle {
	if !s.endHandle.Valid() {
		return s.startHandle
	}
	return s.endHandle
}

// Characteristics returns the service's characteristics in declaration order.
func (s *Service) Characteristics() []*Characteristic {
	result := make([]*Characteristic, 0, s.chars.Len())
	for pair := s.chars.Oldest(); pair != nil; pair = pair.Next() {
		result = append(result, pair.Value)
	}
	return result
}

// FindCharacteristic looks a characteristic up by identity.
func (s *Service) FindCharacteristic(uuid string) (*Characteristic, bool) {
	c, ok := s.chars.Get(bledb.NormalizeUUID(uuid))
	return c, ok
}

// AddCharacteristic materializes a characteristic with the given properties
// and initial value, allocating its handles from the owning database:
// a declaration handle, a value handle, and a client-configuration descriptor
// handle when the properties allow notifications or indications. Duplicate
// identities are rejected.
func (s *Service) AddCharacteristic(uuid string, props Properties, initial []byte) (*Characteristic, error) {
	normalized := bledb.NormalizeUUID(uuid)
	if _, exists := s.chars.Get(normalized); exists {
		return nil, &DuplicateCharacteristicError{Service: s.uuid, UUID: normalized}
	}

	decl, value, cccd := InvalidHandle, InvalidHandle, InvalidHandle
	if s.alloc != nil {
		var err error
		if decl, err = s.alloc.allocHandle(); err != nil {
			return nil, err
		}
		if value, err = s.alloc.allocHandle(); err != nil {
			return nil, err
		}
		if props.Notify || props.Indicate {
			if cccd, err = s.alloc.allocHandle(); err != nil {
				return nil, err
			}
		}
	}

	return s.insertCharacteristic(normalized, props, initial, decl, value, cccd)
}

// AddDiscoveredCharacteristic records a characteristic found on a peer,
// carrying the handles discovery reported.
func (s *Service) AddDiscoveredCharacteristic(uuid string, props Properties, decl, value, cccd Handle) (*Characteristic, error) {
	normalized := bledb.NormalizeUUID(uuid)
	if _, exists := s.chars.Get(normalized); exists {
		return nil, &DuplicateCharacteristicError{Service: s.uuid, UUID: normalized}
	}
	return s.insertCharacteristic(normalized, props, nil, decl, value, cccd)
}

func (s *Service) insertCharacteristic(uuid string, props Properties, initial []byte, decl, value, cccd Handle) (*Characteristic, error) {
	c := &Characteristic{
		uuid:        uuid,
		service:     s,
		props:       props,
		declHandle:  decl,
		valueHandle: value,
		cccdHandle:  cccd,
	}
	if initial != nil {
		c.value = make([]byte, len(initial))
		copy(c.value, initial)
	}
	if cccd.Valid() {
		c.descriptors = append(c.descriptors, &Descriptor{
			Type:   DescriptorClientConfiguration,
			Handle: cccd,
		})
	}

	s.chars.Set(uuid, c)
	s.extendRange(decl, value, cccd)
	return c, nil
}

// extendRange grows the service's handle range to cover newly assigned
// handles.
func (s *Service) extendRange(handles ...Handle) {
	for _, h := range handles {
		if !h.Valid() {
			continue
		}
		if !s.startHandle.Valid() || h < s.startHandle {
			s.startHandle = h
		}
		if h > s.endHandle {
			s.endHandle = h
		}
	}
}
