package dis

import (
	"fmt"

	"github.com/srg/gattkit/internal/gatt"
)

// LocalService authors a Device Information Service in a local attribute
// table. Characteristics come into existence lazily: each setter materializes
// its characteristic on first use and updates it in place afterwards, so the
// published service contains exactly the fields the caller provided.
type LocalService struct {
	service   *gatt.Service
	accessors map[string]*gatt.LocalCharacteristic
}

// NewLocalService publishes the service into db, reusing it when already
// registered.
func NewLocalService(db *gatt.Database) (*LocalService, error) {
	svc, ok := db.FindService(ServiceUUID)
	if !ok {
		var err error
		svc, err = db.AddService(ServiceUUID, gatt.PrimaryService)
		if err != nil {
			return nil, fmt.Errorf("failed to publish device information service: %w", err)
		}
	}

	l := &LocalService{
		service:   svc,
		accessors: make(map[string]*gatt.LocalCharacteristic, len(CharacteristicUUIDs)),
	}
	for _, uuid := range CharacteristicUUIDs {
		l.accessors[uuid] = gatt.NewLocalCharacteristic(svc, uuid)
	}
	return l, nil
}

// Service returns the underlying service.
func (l *LocalService) Service() *gatt.Service {
	return l.service
}

// Has reports whether the given characteristic has been defined.
func (l *LocalService) Has(uuid string) bool {
	acc, ok := l.accessors[uuid]
	return ok && acc.Defined()
}

func (l *LocalService) setString(uuid, value string) error {
	return l.accessors[uuid].SetValue([]byte(value), gatt.WithMaxLength(len(value)))
}

// SetManufacturerName sets the manufacturer name string (2a29).
func (l *LocalService) SetManufacturerName(name string) error {
	return l.setString(ManufacturerNameUUID, name)
}

// SetModelNumber sets the model number string (2a24).
func (l *LocalService) SetModelNumber(model string) error {
	return l.setString(ModelNumberUUID, model)
}

// SetSerialNumber sets the serial number string (2a25).
func (l *LocalService) SetSerialNumber(serial string) error {
	return l.setString(SerialNumberUUID, serial)
}

// SetFirmwareRevision sets the firmware revision string (2a26).
func (l *LocalService) SetFirmwareRevision(rev string) error {
	return l.setString(FirmwareRevisionUUID, rev)
}

// SetHardwareRevision sets the hardware revision string (2a27).
func (l *LocalService) SetHardwareRevision(rev string) error {
	return l.setString(HardwareRevisionUUID, rev)
}

// SetSoftwareRevision sets the software revision string (2a28).
func (l *LocalService) SetSoftwareRevision(rev string) error {
	return l.setString(SoftwareRevisionUUID, rev)
}

// SetSystemID sets the System ID (2a23) in its 8-byte wire form.
func (l *LocalService) SetSystemID(id SystemID) error {
	return l.accessors[SystemIDUUID].SetValue(id.Encode())
}

// SetPnPID sets the PnP ID (2a50) in its 7-byte wire form.
func (l *LocalService) SetPnPID(id PnPID) error {
	return l.accessors[PnPIDUUID].SetValue(id.Encode())
}

// SetRegulatoryCertifications always fails: the IEEE 11073-20601 regulatory
// certification list (2a2a) has no supported authoring encoding here. The
// characteristic stays undefined rather than holding bytes of unknown shape.
func (l *LocalService) SetRegulatoryCertifications(_ []byte) error {
	return fmt.Errorf("regulatory certification data list: %w", gatt.ErrNotSupported)
}
