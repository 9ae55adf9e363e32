package gatt

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/srg/gattkit/internal/bledb"
	"github.com/srg/gattkit/internal/ring"
)

// DefaultUpdateBuffer is the default capacity of a subscriber's update channel.
const DefaultUpdateBuffer = 128

var updateSeq uint64

// ValueUpdate is one observed change of a characteristic's value.
// Data is owned by the update and safe to retain.
type ValueUpdate struct {
	TsUs int64
	Seq  uint64
	Data []byte
}

func newValueUpdate(data []byte) ValueUpdate {
	d := make([]byte, len(data))
	copy(d, data)
	return ValueUpdate{
		TsUs: time.Now().UnixMicro(),
		Seq:  atomic.AddUint64(&updateSeq, 1),
		Data: d,
	}
}

// Characteristic is an addressable, typed attribute with access properties
// and an associated value. Identity and handles are immutable once assigned;
// only the value mutates over the connection's lifetime.
type Characteristic struct {
	uuid    string
	service *Service
	props   Properties

	declHandle  Handle
	valueHandle Handle
	cccdHandle  Handle

	descriptors []*Descriptor

	mu          sync.RWMutex
	value       []byte
	subscribers []*ring.Channel[ValueUpdate]
}

// UUID returns the characteristic's identity in normalized form.
func (c *Characteristic) UUID() string {
	return c.uuid
}

// KnownName returns the human-readable name for well-known identities, or "".
func (c *Characteristic) KnownName() string {
	return bledb.LookupCharacteristic(c.uuid)
}

// Service returns the owning service.
func (c *Characteristic) Service() *Service {
	return c.service
}

// Properties returns the characteristic's access properties.
func (c *Characteristic) Properties() Properties {
	return c.props
}

// DeclarationHandle returns the handle of the characteristic declaration.
func (c *Characteristic) DeclarationHandle() Handle {
	return c.declHandle
}

// ValueHandle returns the handle of the characteristic value attribute.
func (c *Characteristic) ValueHandle() Handle {
	return c.valueHandle
}

// ClientConfigurationHandle returns the CCCD handle, InvalidHandle when the
// characteristic supports neither notifications nor indications.
func (c *Characteristic) ClientConfigurationHandle() Handle {
	return c.cccdHandle
}

// Descriptors returns the characteristic's descriptors in declaration order.
func (c *Characteristic) Descriptors() []*Descriptor {
	return c.descriptors
}

// Value returns a copy of the stored value.
func (c *Characteristic) Value() []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v := make([]byte, len(c.value))
	copy(v, c.value)
	return v
}

// SetValue replaces the stored value in place and fans the update out to all
// subscribers. Identity and handles are unaffected.
func (c *Characteristic) SetValue(data []byte) {
	update := newValueUpdate(data)

	c.mu.Lock()
	c.value = update.Data
	subs := make([]*ring.Channel[ValueUpdate], len(c.subscribers))
	copy(subs, c.subscribers)
	c.mu.Unlock()

	for _, sub := range subs {
		sub.ForceSend(update)
	}
}

// Subscribe registers an update channel with the given capacity (0 uses
// DefaultUpdateBuffer). The writer never blocks: when a subscriber falls
// behind, its oldest updates are overwritten.
func (c *Characteristic) Subscribe(capacity int) *ring.Channel[ValueUpdate] {
	if capacity <= 0 {
		capacity = DefaultUpdateBuffer
	}
	sub := ring.NewChannel[ValueUpdate](capacity)

	c.mu.Lock()
	c.subscribers = append(c.subscribers, sub)
	c.mu.Unlock()

	return sub
}

// Unsubscribe removes a previously registered update channel and closes it.
func (c *Characteristic) Unsubscribe(sub *ring.Channel[ValueUpdate]) {
	c.mu.Lock()
	for i, s := range c.subscribers {
		if s == sub {
			c.subscribers = append(c.subscribers[:i], c.subscribers[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	sub.Close()
}
