package bledb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNormalizeUUID verifies that NormalizeUUID correctly handles various UUID formats
func TestNormalizeUUID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "16-bit short form",
			input:    "180a",
			expected: "180a",
		},
		{
			name:     "16-bit with 0x prefix",
			input:    "0x180a",
			expected: "180a",
		},
		{
			name:     "uppercase short form",
			input:    "2A50",
			expected: "2a50",
		},
		{
			name:     "Full Bluetooth SIG UUID with dashes",
			input:    "0000180a-0000-1000-8000-00805f9b34fb",
			expected: "180a",
		},
		{
			name:     "Full Bluetooth SIG UUID without dashes",
			input:    "0000180a00001000800000805f9b34fb",
			expected: "180a",
		},
		{
			name:     "Custom 128-bit UUID (not SIG base)",
			input:    "6e400001-b5a3-f393-e0a9-e50e24dcca9e",
			expected: "6e400001b5a3f393e0a9e50e24dcca9e",
		},
		{
			name:     "UUID with braces",
			input:    "{0000180a-0000-1000-8000-00805f9b34fb}",
			expected: "180a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeUUID(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestLookupService verifies that LookupService works with both short and full UUIDs
func TestLookupService(t *testing.T) {
	tests := []struct {
		name     string
		uuid     string
		expected string
	}{
		{
			name:     "Device Information - short form",
			uuid:     "180a",
			expected: "Device Information",
		},
		{
			name:     "Device Information - with 0x prefix",
			uuid:     "0x180a",
			expected: "Device Information",
		},
		{
			name:     "Device Information - full Bluetooth SIG UUID with dashes",
			uuid:     "0000180a-0000-1000-8000-00805f9b34fb",
			expected: "Device Information",
		},
		{
			name:     "Battery Service - short form",
			uuid:     "180f",
			expected: "Battery Service",
		},
		{
			name:     "Unknown UUID",
			uuid:     "ffff",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := LookupService(tt.uuid)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestLookupCharacteristic verifies that LookupCharacteristic works with both short and full UUIDs
func TestLookupCharacteristic(t *testing.T) {
	tests := []struct {
		name     string
		uuid     string
		expected string
	}{
		{
			name:     "PnP ID - short form",
			uuid:     "2a50",
			expected: "PnP ID",
		},
		{
			name:     "System ID - full UUID",
			uuid:     "00002a23-0000-1000-8000-00805f9b34fb",
			expected: "System ID",
		},
		{
			name:     "Manufacturer Name - short form",
			uuid:     "2a29",
			expected: "Manufacturer Name String",
		},
		{
			name:     "Unknown characteristic",
			uuid:     "fff0",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := LookupCharacteristic(tt.uuid)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestLookupDescriptor verifies that LookupDescriptor works with both short and full UUIDs
func TestLookupDescriptor(t *testing.T) {
	tests := []struct {
		name     string
		uuid     string
		expected string
	}{
		{
			name:     "Client Characteristic Configuration - short form",
			uuid:     "2902",
			expected: "Client Characteristic Configuration",
		},
		{
			name:     "Client Characteristic Configuration - full UUID",
			uuid:     "00002902-0000-1000-8000-00805f9b34fb",
			expected: "Client Characteristic Configuration",
		},
		{
			name:     "Characteristic User Descriptor - short form",
			uuid:     "2901",
			expected: "Characteristic User Descriptor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := LookupDescriptor(tt.uuid)
			assert.Equal(t, tt.expected, result)
		})
	}
}
