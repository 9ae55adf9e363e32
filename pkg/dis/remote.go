package dis

import (
	"fmt"

	"github.com/srg/gattkit/internal/gatt"
)

// RemoteService is a typed view over a peer's Device Information Service.
// Accessors are bound once at construction; Has reports per-characteristic
// presence, and getters on absent characteristics fail with
// gatt.ErrUndefinedCharacteristic.
type RemoteService struct {
	service   *gatt.Service
	accessors map[string]*gatt.RemoteCharacteristic
}

// Find locates the Device Information Service in a discovered attribute
// table. Returns false when the peer does not expose the service.
func Find(table gatt.RemoteTable, reader gatt.CharacteristicReader) (*RemoteService, bool) {
	svc, ok := table.FindService(ServiceUUID)
	if !ok {
		return nil, false
	}
	return NewRemoteService(svc, reader), true
}

// NewRemoteService binds a typed view to an already-located service.
func NewRemoteService(svc *gatt.Service, reader gatt.CharacteristicReader) *RemoteService {
	r := &RemoteService{
		service:   svc,
		accessors: make(map[string]*gatt.RemoteCharacteristic, len(CharacteristicUUIDs)),
	}
	for _, uuid := range CharacteristicUUIDs {
		r.accessors[uuid] = gatt.NewRemoteCharacteristic(svc, uuid, reader)
	}
	return r
}

// Service returns the underlying discovered service.
func (r *RemoteService) Service() *gatt.Service {
	return r.service
}

// Has reports whether discovery found the given characteristic.
func (r *RemoteService) Has(uuid string) bool {
	acc, ok := r.accessors[uuid]
	return ok && acc.Defined()
}

func (r *RemoteService) readString(uuid string) (string, error) {
	data, err := r.accessors[uuid].Read()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ManufacturerName reads the manufacturer name string (2a29).
func (r *RemoteService) ManufacturerName() (string, error) {
	return r.readString(ManufacturerNameUUID)
}

// ModelNumber reads the model number string (2a24).
func (r *RemoteService) ModelNumber() (string, error) {
	return r.readString(ModelNumberUUID)
}

// SerialNumber reads the serial number string (2a25).
func (r *RemoteService) SerialNumber() (string, error) {
	return r.readString(SerialNumberUUID)
}

// FirmwareRevision reads the firmware revision string (2a26).
func (r *RemoteService) FirmwareRevision() (string, error) {
	return r.readString(FirmwareRevisionUUID)
}

// HardwareRevision reads the hardware revision string (2a27).
func (r *RemoteService) HardwareRevision() (string, error) {
	return r.readString(HardwareRevisionUUID)
}

// SoftwareRevision reads the software revision string (2a28).
func (r *RemoteService) SoftwareRevision() (string, error) {
	return r.readString(SoftwareRevisionUUID)
}

// SystemID reads and decodes the System ID (2a23).
func (r *RemoteService) SystemID() (SystemID, error) {
	data, err := r.accessors[SystemIDUUID].Read()
	if err != nil {
		return SystemID{}, err
	}
	id, err := DecodeSystemID(data)
	if err != nil {
		return SystemID{}, fmt.Errorf("characteristic %s: %w", SystemIDUUID, err)
	}
	return id, nil
}

// PnPID reads and decodes the PnP ID (2a50).
func (r *RemoteService) PnPID() (PnPID, error) {
	data, err := r.accessors[PnPIDUUID].Read()
	if err != nil {
		return PnPID{}, err
	}
	id, err := DecodePnPID(data)
	if err != nil {
		return PnPID{}, fmt.Errorf("characteristic %s: %w", PnPIDUUID, err)
	}
	return id, nil
}

// RegulatoryCertifications reads the IEEE regulatory certification data list
// (2a2a) as raw bytes; the list's internal structure is not interpreted.
func (r *RemoteService) RegulatoryCertifications() ([]byte, error) {
	return r.accessors[RegulatoryCertificationsUUID].Read()
}
