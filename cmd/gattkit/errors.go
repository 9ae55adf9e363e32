package main

import (
	"errors"

	"github.com/srg/gattkit/internal/gatt"
	"github.com/srg/gattkit/internal/transport/goble"
	"github.com/srg/gattkit/pkg/dis"
)

// FormatUserError turns internal error chains into messages a user can act
// on. Unknown errors pass through unchanged.
func FormatUserError(err error) string {
	switch {
	case errors.Is(err, goble.ErrBluetoothOff):
		return "Bluetooth is turned off. Turn it on and try again."
	case errors.Is(err, goble.ErrNotConnected):
		return "The device is not connected. It may be out of range or powered off."
	case errors.Is(err, gatt.ErrUndefinedCharacteristic):
		return "The device does not expose that characteristic."
	case errors.Is(err, dis.ErrTrailingBytes):
		return "The value is longer than its wire format allows: " + err.Error()
	default:
		return err.Error()
	}
}
