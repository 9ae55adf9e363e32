package testutils

import (
	"github.com/srg/gattkit/internal/bledb"
	"github.com/srg/gattkit/internal/gatt"
)

// FakeRemoteTable is a scripted discovered attribute table plus reader,
// standing in for a live connection in tests. It satisfies both
// gatt.RemoteTable and gatt.CharacteristicReader.
type FakeRemoteTable struct {
	services map[string]*gatt.Service
	values   map[string][]byte // keyed "serviceUUID/charUUID"
	errs     map[string]error
	reads    int
}

// RemoteTableBuilder assembles a FakeRemoteTable with sequential handles,
// mirroring what discovery would report.
type RemoteTableBuilder struct {
	table      *FakeRemoteTable
	order      []string
	nextHandle gatt.Handle
}

// NewRemoteTableBuilder creates an empty builder.
func NewRemoteTableBuilder() *RemoteTableBuilder {
	return &RemoteTableBuilder{
		table: &FakeRemoteTable{
			services: make(map[string]*gatt.Service),
			values:   make(map[string][]byte),
			errs:     make(map[string]error),
		},
		nextHandle: gatt.Handle(0x0001),
	}
}

func (b *RemoteTableBuilder) alloc() gatt.Handle {
	h := b.nextHandle
	b.nextHandle++
	return h
}

// Service declares a discovered primary service. Idempotent per identity.
func (b *RemoteTableBuilder) Service(uuid string) *RemoteTableBuilder {
	normalized := bledb.NormalizeUUID(uuid)
	if _, ok := b.table.services[normalized]; !ok {
		start := b.alloc()
		b.table.services[normalized] = gatt.NewDiscoveredService(normalized, gatt.PrimaryService, start, start)
		b.order = append(b.order, normalized)
	}
	return b
}

// Characteristic declares a readable characteristic in the most recently
// declared service, scripting the value its reads return.
func (b *RemoteTableBuilder) Characteristic(uuid string, value []byte) *RemoteTableBuilder {
	svc := b.currentService()
	normalized := bledb.NormalizeUUID(uuid)
	decl, valueHandle := b.alloc(), b.alloc()
	if _, err := svc.AddDiscoveredCharacteristic(normalized, gatt.Properties{Read: true}, decl, valueHandle, gatt.InvalidHandle); err != nil {
		panic(err) // scripted tables must not collide
	}
	b.table.values[svc.UUID()+"/"+normalized] = value
	return b
}

// FailingCharacteristic declares a characteristic whose reads fail with err.
func (b *RemoteTableBuilder) FailingCharacteristic(uuid string, err error) *RemoteTableBuilder {
	b.Characteristic(uuid, nil)
	svc := b.currentService()
	b.table.errs[svc.UUID()+"/"+bledb.NormalizeUUID(uuid)] = err
	return b
}

func (b *RemoteTableBuilder) currentService() *gatt.Service {
	if len(b.order) == 0 {
		panic("declare a service before characteristics")
	}
	return b.table.services[b.order[len(b.order)-1]]
}

// Build returns the assembled table.
func (b *RemoteTableBuilder) Build() *FakeRemoteTable {
	return b.table
}

// FindService looks a scripted service up by identity.
func (f *FakeRemoteTable) FindService(uuid string) (*gatt.Service, bool) {
	svc, ok := f.services[bledb.NormalizeUUID(uuid)]
	return svc, ok
}

// ReadCharacteristic serves the scripted value or error.
func (f *FakeRemoteTable) ReadCharacteristic(c *gatt.Characteristic) ([]byte, error) {
	f.reads++
	key := c.Service().UUID() + "/" + c.UUID()
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	return f.values[key], nil
}

// Reads returns the number of ReadCharacteristic calls served.
func (f *FakeRemoteTable) Reads() int {
	return f.reads
}
