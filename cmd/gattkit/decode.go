package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/srg/gattkit/pkg/dis"
)

// decodeCmd groups the value decoders.
var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode Device Information Service values from hex",
}

var decodePnPCmd = &cobra.Command{
	Use:   "pnp <hex>",
	Short: "Decode a PnP ID value",
	Long: `Decodes a 7-byte PnP ID from hex.

Example:
  gattkit decode pnp 01580002001300`,
	Args: cobra.ExactArgs(1),
	RunE: runDecodePnP,
}

var decodeSystemIDCmd = &cobra.Command{
	Use:   "system-id <hex>",
	Short: "Decode a System ID value",
	Long: `Decodes an 8-byte System ID from hex.

Example:
  gattkit decode system-id 0504030201080706`,
	Args: cobra.ExactArgs(1),
	RunE: runDecodeSystemID,
}

func init() {
	decodeCmd.AddCommand(decodePnPCmd)
	decodeCmd.AddCommand(decodeSystemIDCmd)
}

// parseHexArg decodes a hex string, tolerating spaces and a 0x prefix.
func parseHexArg(value string) ([]byte, error) {
	cleaned := strings.ReplaceAll(value, " ", "")
	cleaned = strings.TrimPrefix(cleaned, "0x")
	data, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", value, err)
	}
	return data, nil
}

func runDecodePnP(cmd *cobra.Command, args []string) error {
	data, err := parseHexArg(args[0])
	if err != nil {
		return err
	}
	id, err := dis.DecodePnPID(data)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "vendor_id_source: %d (%s)\n", uint8(id.VendorIDSource), id.VendorIDSource)
	fmt.Fprintf(out, "vendor_id: 0x%04x\n", id.VendorID)
	fmt.Fprintf(out, "product_id: 0x%04x\n", id.ProductID)
	fmt.Fprintf(out, "product_version: 0x%04x\n", id.ProductVersion)
	return nil
}

func runDecodeSystemID(cmd *cobra.Command, args []string) error {
	data, err := parseHexArg(args[0])
	if err != nil {
		return err
	}
	id, err := dis.DecodeSystemID(data)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "manufacturer_id: 0x%010x\n", id.ManufacturerID)
	fmt.Fprintf(out, "organizationally_unique_id: 0x%06x\n", id.OrganizationallyUniqueID)
	return nil
}
