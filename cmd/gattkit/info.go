package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/srg/gattkit/internal/transport/goble"
	"github.com/srg/gattkit/pkg/dis"
)

// infoCmd connects to a peer and reads its Device Information Service.
var infoCmd = &cobra.Command{
	Use:   "info <device-address>",
	Short: "Read a device's Device Information Service",
	Long: `Connects to a BLE device, discovers its attribute table, and reads every
Device Information Service characteristic the device exposes.

Example:
  gattkit info AA:BB:CC:DD:EE:FF
  gattkit info AA:BB:CC:DD:EE:FF --timeout 10s`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

var infoTimeout time.Duration

func init() {
	infoCmd.Flags().DurationVar(&infoTimeout, "timeout", 30*time.Second, "Connect and discovery timeout")
}

func runInfo(cmd *cobra.Command, args []string) error {
	address := args[0]

	logger, err := configureLogger(cmd)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	progress := NewProgressPrinter(fmt.Sprintf("Reading device information from %s", address), "Connecting")
	progress.Start()
	defer progress.Stop()

	client := goble.NewClient(logger)
	if err := client.Connect(context.Background(), address, &goble.ConnectOptions{ConnectTimeout: infoTimeout}); err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(); err != nil {
			logger.WithError(err).Warn("Failed to disconnect cleanly")
		}
	}()

	progress.SetPhase("Reading")

	remote, ok := dis.Find(client, client)
	if !ok {
		return fmt.Errorf("device %s does not expose a Device Information Service", address)
	}

	progress.Stop()
	printDeviceInformation(cmd, remote)
	return nil
}

// printDeviceInformation reads and prints every present characteristic,
// reporting per-field read failures without aborting the rest.
func printDeviceInformation(cmd *cobra.Command, remote *dis.RemoteService) {
	out := cmd.OutOrStdout()

	stringFields := []struct {
		label string
		uuid  string
		read  func() (string, error)
	}{
		{"manufacturer_name", dis.ManufacturerNameUUID, remote.ManufacturerName},
		{"model_number", dis.ModelNumberUUID, remote.ModelNumber},
		{"serial_number", dis.SerialNumberUUID, remote.SerialNumber},
		{"firmware_revision", dis.FirmwareRevisionUUID, remote.FirmwareRevision},
		{"hardware_revision", dis.HardwareRevisionUUID, remote.HardwareRevision},
		{"software_revision", dis.SoftwareRevisionUUID, remote.SoftwareRevision},
	}
	for _, f := range stringFields {
		if !remote.Has(f.uuid) {
			continue
		}
		value, err := f.read()
		if err != nil {
			fmt.Fprintf(out, "%s: error: %v\n", f.label, err)
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", f.label, value)
	}

	if remote.Has(dis.SystemIDUUID) {
		if id, err := remote.SystemID(); err != nil {
			fmt.Fprintf(out, "system_id: error: %v\n", err)
		} else {
			fmt.Fprintf(out, "system_id: %s\n", id)
		}
	}
	if remote.Has(dis.PnPIDUUID) {
		if id, err := remote.PnPID(); err != nil {
			fmt.Fprintf(out, "pnp_id: error: %v\n", err)
		} else {
			fmt.Fprintf(out, "pnp_id: %s\n", id)
		}
	}
	if remote.Has(dis.RegulatoryCertificationsUUID) {
		if data, err := remote.RegulatoryCertifications(); err != nil {
			fmt.Fprintf(out, "regulatory_certifications: error: %v\n", err)
		} else {
			fmt.Fprintf(out, "regulatory_certifications: %x\n", data)
		}
	}
}
