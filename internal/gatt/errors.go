package gatt

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when a GATT resource is not found
type NotFoundError struct {
	Resource string   // "service", "characteristic", "descriptor"
	UUIDs    []string // One or more UUIDs (e.g., [serviceUUID] or [serviceUUID, charUUID])
}

func (e *NotFoundError) Error() string {
	if len(e.UUIDs) == 0 {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	if len(e.UUIDs) == 1 {
		return fmt.Sprintf("%s %q not found", e.Resource, e.UUIDs[0])
	}
	// Multiple UUIDs: a characteristic lives in a service, a descriptor in a
	// characteristic.
	parentResource := "service"
	if e.Resource == "descriptor" {
		parentResource = "characteristic"
	}
	return fmt.Sprintf("%s %q not found in %s %q", e.Resource, e.UUIDs[len(e.UUIDs)-1], parentResource, e.UUIDs[0])
}

// DuplicateCharacteristicError reports an attempt to add a characteristic
// whose identity already exists in the owning service.
type DuplicateCharacteristicError struct {
	Service string
	UUID    string
}

func (e *DuplicateCharacteristicError) Error() string {
	return fmt.Sprintf("service %q already contains characteristic %q", e.Service, e.UUID)
}

// Sentinel errors surfaced by the attribute model and accessors.
var (
	// ErrUndefinedCharacteristic is returned by reads of a characteristic that
	// discovery never found, or of a local characteristic before its first
	// write. Callers are expected to gate reads on Defined()/Has(); skipping
	// the gate yields this error rather than a default value.
	ErrUndefinedCharacteristic = errors.New("characteristic not defined")

	// ErrNotSupported is returned by operations with no defined wire encoding.
	ErrNotSupported = errors.New("not supported")

	// ErrHandleExhausted is returned when the database has no handles left.
	ErrHandleExhausted = errors.New("handle space exhausted")

	// ErrNoData is returned by non-blocking stream reads when no bytes are
	// buffered and the stream is still open.
	ErrNoData = errors.New("no data available")
)
