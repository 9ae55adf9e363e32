package gatt

import (
	"fmt"

	"github.com/srg/gattkit/internal/bledb"
)

// CharacteristicReader retrieves the value behind a characteristic. On the
// remote side this crosses the connection and may block or fail per the
// transport's rules; the accessor contract is unaffected by that latency.
type CharacteristicReader interface {
	ReadCharacteristic(c *Characteristic) ([]byte, error)
}

// RemoteTable is the discovered attribute table of a peer.
type RemoteTable interface {
	FindService(uuid string) (*Service, bool)
}

// Accessor is the capability set shared by both characteristic roles.
// An accessor starts UNDEFINED and becomes DEFINED at most once — for a
// local accessor on the first write, for a remote accessor when discovery
// found the identity. DEFINED is terminal.
type Accessor interface {
	// Defined reports whether the characteristic exists behind the accessor.
	Defined() bool

	// Read returns the characteristic's value, or ErrUndefinedCharacteristic
	// when the accessor is undefined.
	Read() ([]byte, error)
}

// SetOption configures a LocalCharacteristic write.
type SetOption func(*CharacteristicConfig)

// WithMaxLength overrides the materialized characteristic's maximum value
// length. Without it, the first written value's length is used.
func WithMaxLength(n int) SetOption {
	return func(cfg *CharacteristicConfig) {
		cfg.MaxLength = n
	}
}

// LocalCharacteristic is the authoring-side accessor: the attribute exists
// only once a value is first written, at which point it is materialized in
// the owning service as a readable characteristic.
type LocalCharacteristic struct {
	service *Service
	uuid    string
	char    *Characteristic
}

// NewLocalCharacteristic binds a local accessor to its owning service.
// The characteristic is not materialized until the first SetValue.
func NewLocalCharacteristic(service *Service, uuid string) *LocalCharacteristic {
	return &LocalCharacteristic{
		service: service,
		uuid:    bledb.NormalizeUUID(uuid),
	}
}

// UUID returns the accessor's identity in normalized form.
func (l *LocalCharacteristic) UUID() string {
	return l.uuid
}

// Defined reports whether the characteristic has been materialized.
func (l *LocalCharacteristic) Defined() bool {
	return l.char != nil
}

// Characteristic returns the materialized characteristic, nil while undefined.
func (l *LocalCharacteristic) Characteristic() *Characteristic {
	return l.char
}

// SetValue stores data behind the accessor. The first call materializes the
// characteristic (readable, max length defaulting to len(data)); subsequent
// calls update the stored value in place. SetValue never blocks; it fails
// only through the table's own error surface (handle exhaustion, duplicate
// identity).
func (l *LocalCharacteristic) SetValue(data []byte, opts ...SetOption) error {
	if l.char != nil {
		l.char.SetValue(data)
		return nil
	}

	cfg := DefaultCharacteristicConfig()
	cfg.MaxLength = len(data)
	for _, opt := range opts {
		opt(&cfg)
	}

	char, err := l.service.AddCharacteristic(l.uuid, cfg.Properties(), data)
	if err != nil {
		return fmt.Errorf("failed to materialize characteristic %s: %w", l.uuid, err)
	}
	l.char = char
	return nil
}

// Read returns the stored value, or ErrUndefinedCharacteristic before the
// first write.
func (l *LocalCharacteristic) Read() ([]byte, error) {
	if l.char == nil {
		return nil, fmt.Errorf("characteristic %s: %w", l.uuid, ErrUndefinedCharacteristic)
	}
	return l.char.Value(), nil
}

// RemoteCharacteristic is the discovery-side accessor: bound at construction
// to a lookup against the peer's service, read-only, delegating reads to the
// transport.
type RemoteCharacteristic struct {
	uuid   string
	char   *Characteristic
	reader CharacteristicReader
}

// NewRemoteCharacteristic binds a remote accessor to the lookup result
// against service (which may be nil when the peer lacks the service
// entirely). Defined reflects whether the lookup succeeded.
func NewRemoteCharacteristic(service *Service, uuid string, reader CharacteristicReader) *RemoteCharacteristic {
	r := &RemoteCharacteristic{
		uuid:   bledb.NormalizeUUID(uuid),
		reader: reader,
	}
	if service != nil {
		if char, ok := service.FindCharacteristic(uuid); ok {
			r.char = char
		}
	}
	return r
}

// UUID returns the accessor's identity in normalized form.
func (r *RemoteCharacteristic) UUID() string {
	return r.uuid
}

// Defined reports whether discovery found the characteristic.
func (r *RemoteCharacteristic) Defined() bool {
	return r.char != nil
}

// Characteristic returns the discovered characteristic, nil when undefined.
func (r *RemoteCharacteristic) Characteristic() *Characteristic {
	return r.char
}

// Read delegates to the transport and returns the raw value bytes.
// Fails with ErrUndefinedCharacteristic when discovery never found the
// identity.
func (r *RemoteCharacteristic) Read() ([]byte, error) {
	if r.char == nil {
		return nil, fmt.Errorf("characteristic %s: %w", r.uuid, ErrUndefinedCharacteristic)
	}
	return r.reader.ReadCharacteristic(r.char)
}
