package dis

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srg/gattkit/internal/codec"
	"github.com/srg/gattkit/internal/gatt"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// valueReader serves reads straight from the model's stored values, standing
// in for a live connection.
type valueReader struct{}

func (valueReader) ReadCharacteristic(c *gatt.Characteristic) ([]byte, error) {
	return c.Value(), nil
}

func TestPnPIDWireFormat(t *testing.T) {
	id := PnPID{
		VendorIDSource: VendorIDSourceBluetoothSIG,
		VendorID:       0x0058,
		ProductID:      0x0002,
		ProductVersion: 0x0013,
	}

	encoded := id.Encode()
	assert.Equal(t, []byte{0x01, 0x58, 0x00, 0x02, 0x00, 0x13, 0x00}, encoded)

	decoded, err := DecodePnPID(encoded)
	require.NoError(t, err)
	assert.Equal(t, id, decoded)
}

func TestSystemIDWireFormat(t *testing.T) {
	id := SystemID{
		ManufacturerID:           0x0102030405,
		OrganizationallyUniqueID: 0x060708,
	}

	encoded := id.Encode()
	assert.Equal(t, []byte{0x05, 0x04, 0x03, 0x02, 0x01, 0x08, 0x07, 0x06}, encoded)

	decoded, err := DecodeSystemID(encoded)
	require.NoError(t, err)
	assert.Equal(t, id, decoded)
}

func TestDecodeTruncated(t *testing.T) {
	_, err := DecodePnPID([]byte{0x01, 0x58, 0x00})
	require.Error(t, err)

	var trunc *codec.TruncatedStreamError
	assert.ErrorAs(t, err, &trunc)

	_, err = DecodeSystemID([]byte{0x05})
	assert.ErrorAs(t, err, &trunc)
}

func TestDecodeTrailingBytes(t *testing.T) {
	_, err := DecodePnPID([]byte{0x01, 0x58, 0x00, 0x02, 0x00, 0x13, 0x00, 0xff})
	assert.ErrorIs(t, err, ErrTrailingBytes)

	_, err = DecodeSystemID([]byte{0x05, 0x04, 0x03, 0x02, 0x01, 0x08, 0x07, 0x06, 0x00})
	assert.ErrorIs(t, err, ErrTrailingBytes)
}

func TestVendorIDSourceString(t *testing.T) {
	assert.Equal(t, "Bluetooth SIG", VendorIDSourceBluetoothSIG.String())
	assert.Equal(t, "USB Implementer's Forum", VendorIDSourceUSB.String())
	assert.Contains(t, VendorIDSource(9).String(), "9")
}

func TestLocalServicePublish(t *testing.T) {
	db := gatt.NewDatabase(testLogger())

	local, err := NewLocalService(db)
	require.NoError(t, err)

	svc, ok := db.FindService(ServiceUUID)
	require.True(t, ok)
	assert.Same(t, svc, local.Service())

	// Nothing is defined until a setter runs.
	for _, uuid := range CharacteristicUUIDs {
		assert.False(t, local.Has(uuid), uuid)
	}

	require.NoError(t, local.SetManufacturerName("Acme Ltd"))
	require.NoError(t, local.SetModelNumber("M-1000"))
	require.NoError(t, local.SetSystemID(SystemID{ManufacturerID: 0x0102030405, OrganizationallyUniqueID: 0x060708}))

	assert.True(t, local.Has(ManufacturerNameUUID))
	assert.True(t, local.Has(ModelNumberUUID))
	assert.True(t, local.Has(SystemIDUUID))
	assert.False(t, local.Has(SerialNumberUUID), "unset fields stay undefined")

	char, ok := svc.FindCharacteristic(ManufacturerNameUUID)
	require.True(t, ok)
	assert.Equal(t, []byte("Acme Ltd"), char.Value())

	// Updating in place keeps the characteristic defined.
	require.NoError(t, local.SetManufacturerName("Acme"))
	assert.Equal(t, []byte("Acme"), char.Value())
}

func TestLocalServiceReuse(t *testing.T) {
	db := gatt.NewDatabase(testLogger())

	first, err := NewLocalService(db)
	require.NoError(t, err)
	require.NoError(t, first.SetSerialNumber("SN-1"))

	// A second view over the same database binds the same service.
	second, err := NewLocalService(db)
	require.NoError(t, err)
	assert.Same(t, first.Service(), second.Service())
	assert.True(t, second.Has(SerialNumberUUID))
}

func TestSetRegulatoryCertifications(t *testing.T) {
	db := gatt.NewDatabase(testLogger())

	local, err := NewLocalService(db)
	require.NoError(t, err)

	err = local.SetRegulatoryCertifications([]byte{0x00, 0x01})
	require.Error(t, err)
	assert.ErrorIs(t, err, gatt.ErrNotSupported)
	assert.False(t, local.Has(RegulatoryCertificationsUUID))
}

func TestRemoteServiceRoundTrip(t *testing.T) {
	db := gatt.NewDatabase(testLogger())

	local, err := NewLocalService(db)
	require.NoError(t, err)
	require.NoError(t, local.SetManufacturerName("Acme Ltd"))
	require.NoError(t, local.SetFirmwareRevision("1.2.3"))
	require.NoError(t, local.SetPnPID(PnPID{
		VendorIDSource: VendorIDSourceBluetoothSIG,
		VendorID:       0x0058,
		ProductID:      0x0002,
		ProductVersion: 0x0013,
	}))
	require.NoError(t, local.SetSystemID(SystemID{
		ManufacturerID:           0x0102030405,
		OrganizationallyUniqueID: 0x060708,
	}))

	remote, ok := Find(db, valueReader{})
	require.True(t, ok)

	name, err := remote.ManufacturerName()
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", name)

	fw, err := remote.FirmwareRevision()
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", fw)

	pnp, err := remote.PnPID()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0058), pnp.VendorID)
	assert.Equal(t, VendorIDSourceBluetoothSIG, pnp.VendorIDSource)

	sys, err := remote.SystemID()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0102030405), sys.ManufacturerID)
	assert.Equal(t, uint32(0x060708), sys.OrganizationallyUniqueID)
}

func TestRemoteServiceUndefined(t *testing.T) {
	db := gatt.NewDatabase(testLogger())

	local, err := NewLocalService(db)
	require.NoError(t, err)
	require.NoError(t, local.SetManufacturerName("Acme"))

	remote, ok := Find(db, valueReader{})
	require.True(t, ok)

	assert.True(t, remote.Has(ManufacturerNameUUID))
	assert.False(t, remote.Has(ModelNumberUUID))

	_, err = remote.ModelNumber()
	assert.ErrorIs(t, err, gatt.ErrUndefinedCharacteristic)

	_, err = remote.PnPID()
	assert.ErrorIs(t, err, gatt.ErrUndefinedCharacteristic)

	_, err = remote.RegulatoryCertifications()
	assert.ErrorIs(t, err, gatt.ErrUndefinedCharacteristic)
}

func TestFindMissingService(t *testing.T) {
	db := gatt.NewDatabase(testLogger())

	_, ok := Find(db, valueReader{})
	assert.False(t, ok, "no device information service registered")
}

func TestDefinitionApply(t *testing.T) {
	const doc = `
manufacturer_name: Acme Ltd
model_number: M-1000
firmware_revision: "1.2.3"
system_id:
  manufacturer_id: 0x0102030405
  organizationally_unique_id: 0x060708
pnp_id:
  vendor_id_source: 1
  vendor_id: 0x0058
  product_id: 0x0002
  product_version: 0x0013
`
	def, err := LoadDefinition(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", def.ManufacturerName)
	require.NotNil(t, def.SystemID)
	require.NotNil(t, def.PnPID)

	db := gatt.NewDatabase(testLogger())
	local, err := NewLocalService(db)
	require.NoError(t, err)
	require.NoError(t, def.Apply(local))

	assert.True(t, local.Has(ManufacturerNameUUID))
	assert.True(t, local.Has(ModelNumberUUID))
	assert.True(t, local.Has(FirmwareRevisionUUID))
	assert.True(t, local.Has(SystemIDUUID))
	assert.True(t, local.Has(PnPIDUUID))
	assert.False(t, local.Has(SerialNumberUUID), "absent fields stay undefined")

	char, ok := local.Service().FindCharacteristic(PnPIDUUID)
	require.True(t, ok)
	assert.Equal(t, []byte{0x01, 0x58, 0x00, 0x02, 0x00, 0x13, 0x00}, char.Value())
}

func TestDefinitionUnknownField(t *testing.T) {
	_, err := LoadDefinition(strings.NewReader("made_up_field: true\n"))
	assert.Error(t, err)
}
