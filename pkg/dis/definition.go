package dis

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition is a declarative Device Information Service description, loaded
// from YAML and applied to a LocalService. Absent fields leave their
// characteristics undefined.
type Definition struct {
	ManufacturerName string `yaml:"manufacturer_name,omitempty"`
	ModelNumber      string `yaml:"model_number,omitempty"`
	SerialNumber     string `yaml:"serial_number,omitempty"`
	FirmwareRevision string `yaml:"firmware_revision,omitempty"`
	HardwareRevision string `yaml:"hardware_revision,omitempty"`
	SoftwareRevision string `yaml:"software_revision,omitempty"`

	SystemID *SystemIDDefinition `yaml:"system_id,omitempty"`
	PnPID    *PnPIDDefinition    `yaml:"pnp_id,omitempty"`
}

// SystemIDDefinition is the YAML form of a System ID value.
type SystemIDDefinition struct {
	ManufacturerID           uint64 `yaml:"manufacturer_id"`
	OrganizationallyUniqueID uint32 `yaml:"organizationally_unique_id"`
}

// PnPIDDefinition is the YAML form of a PnP ID value.
type PnPIDDefinition struct {
	VendorIDSource uint8  `yaml:"vendor_id_source"`
	VendorID       uint16 `yaml:"vendor_id"`
	ProductID      uint16 `yaml:"product_id"`
	ProductVersion uint16 `yaml:"product_version"`
}

// LoadDefinition parses a YAML definition, rejecting unknown fields.
func LoadDefinition(r io.Reader) (*Definition, error) {
	var def Definition
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("failed to parse device information definition: %w", err)
	}
	return &def, nil
}

// LoadDefinitionFile reads and parses a YAML definition file.
func LoadDefinitionFile(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open definition file: %w", err)
	}
	defer f.Close()
	return LoadDefinition(f)
}

// Apply publishes every present field into the local service.
func (d *Definition) Apply(local *LocalService) error {
	setters := []struct {
		value string
		set   func(string) error
	}{
		{d.ManufacturerName, local.SetManufacturerName},
		{d.ModelNumber, local.SetModelNumber},
		{d.SerialNumber, local.SetSerialNumber},
		{d.FirmwareRevision, local.SetFirmwareRevision},
		{d.HardwareRevision, local.SetHardwareRevision},
		{d.SoftwareRevision, local.SetSoftwareRevision},
	}
	for _, s := range setters {
		if s.value == "" {
			continue
		}
		if err := s.set(s.value); err != nil {
			return err
		}
	}

	if d.SystemID != nil {
		err := local.SetSystemID(SystemID{
			ManufacturerID:           d.SystemID.ManufacturerID,
			OrganizationallyUniqueID: d.SystemID.OrganizationallyUniqueID,
		})
		if err != nil {
			return err
		}
	}
	if d.PnPID != nil {
		err := local.SetPnPID(PnPID{
			VendorIDSource: VendorIDSource(d.PnPID.VendorIDSource),
			VendorID:       d.PnPID.VendorID,
			ProductID:      d.PnPID.ProductID,
			ProductVersion: d.PnPID.ProductVersion,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
