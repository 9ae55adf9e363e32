// Package bledb provides UUID normalization and name lookups for the
// well-known Bluetooth SIG identifiers this module works with.
//
// UUIDs are stored and compared in normalized form: lowercase hex, no
// dashes or braces, and 16-bit short form whenever the UUID sits on the
// Bluetooth SIG base (0000xxxx-0000-1000-8000-00805f9b34fb).
package bledb

import "strings"

// sigBaseSuffix is the tail of the Bluetooth SIG base UUID in normalized form.
const sigBaseSuffix = "00001000800000805f9b34fb"

// NormalizeUUID converts a UUID string to the internal format (lowercase, no
// dashes). Handles standard UUID format (with dashes), already normalized
// format, braces, and an optional 0x prefix (e.g., "0x2902" -> "2902").
// Full 128-bit UUIDs on the Bluetooth SIG base are collapsed to their 16-bit
// short form.
func NormalizeUUID(uuid string) string {
	u := strings.ToLower(strings.TrimSpace(uuid))
	u = strings.Trim(u, "{}")
	u = strings.TrimPrefix(u, "0x")
	u = strings.ReplaceAll(u, "-", "")

	// Collapse SIG base UUIDs to the 16-bit short form.
	if len(u) == 32 && strings.HasPrefix(u, "0000") && strings.HasSuffix(u, sigBaseSuffix) {
		return u[4:8]
	}
	return u
}

// NormalizeUUIDs normalizes a slice of UUID strings to internal format.
func NormalizeUUIDs(uuids []string) []string {
	result := make([]string, len(uuids))
	for i, u := range uuids {
		result[i] = NormalizeUUID(u)
	}
	return result
}

// ShortenUUID returns a truncated version of a UUID for display purposes.
// Returns the first eight characters for long UUIDs and short UUIDs by themselves.
func ShortenUUID(uuid string) string {
	if len(uuid) > 8 {
		return uuid[:8]
	}
	return uuid
}

// Well-known service names, keyed by normalized UUID.
var serviceNames = map[string]string{
	"1800": "Generic Access",
	"1801": "Generic Attribute",
	"180a": "Device Information",
	"180d": "Heart Rate",
	"180f": "Battery Service",
}

// Well-known characteristic names, keyed by normalized UUID.
var characteristicNames = map[string]string{
	"2a00": "Device Name",
	"2a01": "Appearance",
	"2a19": "Battery Level",
	"2a23": "System ID",
	"2a24": "Model Number String",
	"2a25": "Serial Number String",
	"2a26": "Firmware Revision String",
	"2a27": "Hardware Revision String",
	"2a28": "Software Revision String",
	"2a29": "Manufacturer Name String",
	"2a2a": "IEEE 11073-20601 Regulatory Certification Data List",
	"2a37": "Heart Rate Measurement",
	"2a50": "PnP ID",
}

// Well-known descriptor names, keyed by normalized UUID.
var descriptorNames = map[string]string{
	"2900": "Characteristic Extended Properties",
	"2901": "Characteristic User Descriptor",
	"2902": "Client Characteristic Configuration",
	"2903": "Server Characteristic Configuration",
	"2904": "Characteristic Presentation Format",
	"2905": "Characteristic Aggregate Format",
}

// LookupService returns the human-readable name of a well-known service,
// or "" if the UUID is not in the database.
func LookupService(uuid string) string {
	return serviceNames[NormalizeUUID(uuid)]
}

// LookupCharacteristic returns the human-readable name of a well-known
// characteristic, or "" if the UUID is not in the database.
func LookupCharacteristic(uuid string) string {
	return characteristicNames[NormalizeUUID(uuid)]
}

// LookupDescriptor returns the human-readable name of a well-known
// descriptor, or "" if the UUID is not in the database.
func LookupDescriptor(uuid string) string {
	return descriptorNames[NormalizeUUID(uuid)]
}
