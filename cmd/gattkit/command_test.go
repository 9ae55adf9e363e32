package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srg/gattkit/internal/testutils"
)

// executeCommand runs the CLI with args and captures its output.
func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestEncodePnP(t *testing.T) {
	out, err := executeCommand("encode", "pnp", "1", "0x0058", "0x0002", "0x0013")
	require.NoError(t, err)
	assert.Equal(t, "01580002001300\n", out)
}

func TestEncodeSystemID(t *testing.T) {
	out, err := executeCommand("encode", "system-id", "0x0102030405", "0x060708")
	require.NoError(t, err)
	assert.Equal(t, "0504030201080706\n", out)
}

func TestEncodeRejectsOutOfRange(t *testing.T) {
	_, err := executeCommand("encode", "pnp", "1", "0x10000", "0", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vendor-id")

	_, err = executeCommand("encode", "system-id", "0x010000000000", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manufacturer-id")
}

func TestDecodePnP(t *testing.T) {
	out, err := executeCommand("decode", "pnp", "01580002001300")
	require.NoError(t, err)
	assert.Contains(t, out, "vendor_id_source: 1 (Bluetooth SIG)")
	assert.Contains(t, out, "vendor_id: 0x0058")
	assert.Contains(t, out, "product_id: 0x0002")
	assert.Contains(t, out, "product_version: 0x0013")
}

func TestDecodeSystemID(t *testing.T) {
	out, err := executeCommand("decode", "system-id", "05 04 03 02 01 08 07 06")
	require.NoError(t, err)
	assert.Contains(t, out, "manufacturer_id: 0x0102030405")
	assert.Contains(t, out, "organizationally_unique_id: 0x060708")
}

func TestDecodeRejectsBadInput(t *testing.T) {
	_, err := executeCommand("decode", "pnp", "zz")
	assert.Error(t, err)

	// Short value
	_, err = executeCommand("decode", "pnp", "0158")
	assert.Error(t, err)

	// Trailing bytes
	_, err = executeCommand("decode", "system-id", "050403020108070600")
	assert.Error(t, err)
}

func TestDefine(t *testing.T) {
	const definition = `
manufacturer_name: Acme Ltd
model_number: M-1000
system_id:
  manufacturer_id: 0x0102030405
  organizationally_unique_id: 0x060708
pnp_id:
  vendor_id_source: 1
  vendor_id: 0x0058
  product_id: 0x0002
  product_version: 0x0013
`
	path := filepath.Join(t.TempDir(), "device.yaml")
	require.NoError(t, os.WriteFile(path, []byte(definition), 0o644))

	out, err := executeCommand("define", path)
	require.NoError(t, err)

	expected := `
service 180a (Device Information) primary handles=[0x0001,0x0009]
  characteristic 2a29 (Manufacturer Name String) decl=0x0002 value=0x0003 props=read
    value: 41636d65204c7464 "Acme Ltd"
  characteristic 2a24 (Model Number String) decl=0x0004 value=0x0005 props=read
    value: 4d2d31303030 "M-1000"
  characteristic 2a23 (System ID) decl=0x0006 value=0x0007 props=read
    value: 0504030201080706
  characteristic 2a50 (PnP ID) decl=0x0008 value=0x0009 props=read
    value: 01580002001300
`
	testutils.NewTextAsserter(t).Assert(out, expected)
}

func TestDefineMissingFile(t *testing.T) {
	_, err := executeCommand("define", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestFormatUserErrorPassthrough(t *testing.T) {
	assert.Equal(t, "assert.AnError general error for testing", FormatUserError(assert.AnError))
}
