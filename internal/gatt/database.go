package gatt

import (
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/cornelk/hashmap"
	"github.com/sirupsen/logrus"

	"github.com/srg/gattkit/internal/bledb"
)

// Database is the local attribute table: the container services are
// published into, and the sole owner of handle allocation. Lookups are safe
// for concurrent use; mutations to a given service must be serialized by the
// caller.
type Database struct {
	services *hashmap.Map[string, *Service]
	logger   *logrus.Logger

	mu         sync.Mutex
	order      []string // registration order of service UUIDs
	nextHandle uint32   // next unassigned handle; handles are never reused
}

// NewDatabase creates an empty attribute table.
func NewDatabase(logger *logrus.Logger) *Database {
	if logger == nil {
		logger = logrus.New()
	}
	return &Database{
		services:   hashmap.New[string, *Service](),
		logger:     logger,
		nextHandle: 0x0001,
	}
}

// allocHandle hands out the next free handle. 0x0000 stays reserved.
func (db *Database) allocHandle() (Handle, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.nextHandle > 0xFFFF {
		return InvalidHandle, ErrHandleExhausted
	}
	h := Handle(db.nextHandle)
	db.nextHandle++
	return h, nil
}

// AddService registers a service under its identity and assigns its
// declaration handle. Duplicate identities are rejected.
func (db *Database) AddService(uuid string, kind ServiceKind) (*Service, error) {
	normalized := bledb.NormalizeUUID(uuid)
	if _, exists := db.services.Get(normalized); exists {
		return nil, fmt.Errorf("service %q already registered", normalized)
	}

	start, err := db.allocHandle()
	if err != nil {
		return nil, err
	}

	svc := newService(normalized, kind, db, start)
	db.services.Set(normalized, svc)

	db.mu.Lock()
	db.order = append(db.order, normalized)
	db.mu.Unlock()

	db.logger.WithFields(logrus.Fields{
		"service": normalized,
		"kind":    kind.String(),
		"handle":  start.String(),
	}).Debug("Service registered")

	return svc, nil
}

// FindService looks a service up by identity.
func (db *Database) FindService(uuid string) (*Service, bool) {
	return db.services.Get(bledb.NormalizeUUID(uuid))
}

// Services returns the registered services in registration order.
func (db *Database) Services() []*Service {
	db.mu.Lock()
	order := make([]string, len(db.order))
	copy(order, db.order)
	db.mu.Unlock()

	result := make([]*Service, 0, len(order))
	for _, uuid := range order {
		if svc, ok := db.services.Get(uuid); ok {
			result = append(result, svc)
		}
	}
	return result
}

// Dump renders the whole table as text, one service per block, in
// registration order. The format is stable so it can be diffed.
func (db *Database) Dump() string {
	var b strings.Builder
	for _, svc := range db.Services() {
		fmt.Fprintf(&b, "service %s%s %s handles=[%s,%s]\n",
			svc.UUID(), knownNameSuffix(svc.KnownName()), svc.Kind(),
			svc.StartHandle(), svc.EndHandle())

		for _, char := range svc.Characteristics() {
			fmt.Fprintf(&b, "  characteristic %s%s decl=%s value=%s props=%s\n",
				char.UUID(), knownNameSuffix(char.KnownName()),
				char.DeclarationHandle(), char.ValueHandle(), char.Properties())

			if v := char.Value(); len(v) > 0 {
				fmt.Fprintf(&b, "    value: %s%s\n", hex.EncodeToString(v), printableSuffix(v))
			}
			for _, d := range char.Descriptors() {
				fmt.Fprintf(&b, "    descriptor %s%s handle=%s\n",
					d.UUID(), knownNameSuffix(d.KnownName()), d.Handle)
			}
		}
	}
	return b.String()
}

func knownNameSuffix(name string) string {
	if name == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", name)
}

// printableSuffix renders the value as a quoted string when every byte is
// printable ASCII.
func printableSuffix(data []byte) string {
	for _, c := range data {
		if c < 0x20 || c > 0x7e {
			return ""
		}
	}
	return fmt.Sprintf(" %q", string(data))
}
