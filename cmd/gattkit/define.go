package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/srg/gattkit/internal/gatt"
	"github.com/srg/gattkit/pkg/dis"
)

// defineCmd builds a local attribute table from a YAML definition and dumps it.
var defineCmd = &cobra.Command{
	Use:   "define <definition.yaml>",
	Short: "Build a local Device Information Service from a YAML definition",
	Long: `Reads a YAML Device Information Service definition, publishes it into a
fresh attribute table, and prints the resulting table with assigned handles.

Example definition:
  manufacturer_name: Acme Ltd
  model_number: M-1000
  firmware_revision: "1.2.3"
  pnp_id:
    vendor_id_source: 1
    vendor_id: 0x0058
    product_id: 0x0002
    product_version: 0x0013`,
	Args: cobra.ExactArgs(1),
	RunE: runDefine,
}

func runDefine(cmd *cobra.Command, args []string) error {
	logger, err := configureLogger(cmd)
	if err != nil {
		return err
	}

	def, err := dis.LoadDefinitionFile(args[0])
	if err != nil {
		return err
	}

	// All arguments validated - don't show usage on runtime errors
	cmd.SilenceUsage = true

	db := gatt.NewDatabase(logger)
	local, err := dis.NewLocalService(db)
	if err != nil {
		return err
	}
	if err := def.Apply(local); err != nil {
		return fmt.Errorf("failed to apply definition: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), db.Dump())
	return nil
}
