package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/srg/gattkit/pkg/dis"
)

// encodeCmd groups the value encoders.
var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode Device Information Service values to hex",
}

var encodePnPCmd = &cobra.Command{
	Use:   "pnp <vendor-id-source> <vendor-id> <product-id> <product-version>",
	Short: "Encode a PnP ID value",
	Long: `Encodes a PnP ID to its 7-byte wire form.

Values accept decimal or 0x-prefixed hex. vendor-id-source is 1 for
Bluetooth SIG assigned vendor IDs, 2 for USB Implementer's Forum.

Example:
  gattkit encode pnp 1 0x0058 0x0002 0x0013`,
	Args: cobra.ExactArgs(4),
	RunE: runEncodePnP,
}

var encodeSystemIDCmd = &cobra.Command{
	Use:   "system-id <manufacturer-id> <oui>",
	Short: "Encode a System ID value",
	Long: `Encodes a System ID to its 8-byte wire form: a 40-bit
manufacturer-defined identifier and a 24-bit organizationally unique
identifier.

Example:
  gattkit encode system-id 0x0102030405 0x060708`,
	Args: cobra.ExactArgs(2),
	RunE: runEncodeSystemID,
}

func init() {
	encodeCmd.AddCommand(encodePnPCmd)
	encodeCmd.AddCommand(encodeSystemIDCmd)
}

// parseUintArg parses a decimal or 0x-prefixed argument bounded to bits.
func parseUintArg(name, value string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(value, 0, bits)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an unsigned %d-bit integer", name, value, bits)
	}
	return v, nil
}

func runEncodePnP(cmd *cobra.Command, args []string) error {
	source, err := parseUintArg("vendor-id-source", args[0], 8)
	if err != nil {
		return err
	}
	vendor, err := parseUintArg("vendor-id", args[1], 16)
	if err != nil {
		return err
	}
	product, err := parseUintArg("product-id", args[2], 16)
	if err != nil {
		return err
	}
	productVersion, err := parseUintArg("product-version", args[3], 16)
	if err != nil {
		return err
	}

	id := dis.PnPID{
		VendorIDSource: dis.VendorIDSource(source),
		VendorID:       uint16(vendor),
		ProductID:      uint16(product),
		ProductVersion: uint16(productVersion),
	}
	fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(id.Encode()))
	return nil
}

func runEncodeSystemID(cmd *cobra.Command, args []string) error {
	manufacturer, err := parseUintArg("manufacturer-id", args[0], 40)
	if err != nil {
		return err
	}
	oui, err := parseUintArg("oui", args[1], 24)
	if err != nil {
		return err
	}

	id := dis.SystemID{
		ManufacturerID:           manufacturer,
		OrganizationallyUniqueID: uint32(oui),
	}
	fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(id.Encode()))
	return nil
}
