package tracker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arkieguy/RAK4631-Helium-Mapper/internal/frame"
	"github.com/arkieguy/RAK4631-Helium-Mapper/internal/reading"
)

func TestEncodeScenario(t *testing.T) {
	got := Encode(reading.SensorReading{
		Latitude: -1,
		Altitude: 100,
		Speed:    10,
		HDOP:     5,
		Battery:  5,
		Sats:     8,
	})
	want := []byte{0x60, 0x79, 0xFE, 0xFF, 0x00, 0x00, 0x00, 0x00, 0x64, 0x00, 0x05, 0x32, 0x0A, 0x00, 0x08}
	require.Equal(t, want, got)
}

func TestEncodeNegativeInt16(t *testing.T) {
	buf := Encode(reading.SensorReading{Altitude: -1, Speed: -32768})
	up := frame.Parse(buf, 0)
	require.Equal(t, int64(-1), up.Int(OffsetAltitude, WidthAltitude))
	require.Equal(t, int64(-32768), up.Int(OffsetSpeed, WidthSpeed))
}

func TestEncodeBatteryClamp(t *testing.T) {
	require.Equal(t, byte(0), Encode(reading.SensorReading{Battery: -3})[OffsetBattery])
	require.Equal(t, byte(255), Encode(reading.SensorReading{Battery: 99})[OffsetBattery])
	require.Equal(t, byte(37), Encode(reading.SensorReading{Battery: 3.7})[OffsetBattery])
}

func TestPutIntLEBounds(t *testing.T) {
	buf := make([]byte, 4)
	require.NoError(t, PutIntLE(buf, 0, 4, -2))
	require.Equal(t, []byte{0xFE, 0xFF, 0xFF, 0xFF}, buf)
	require.Error(t, PutIntLE(buf, 2, 4, 1))
	require.Error(t, PutIntLE(buf, 0, 9, 1))
}
