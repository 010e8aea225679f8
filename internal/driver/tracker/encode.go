package tracker

import (
	"fmt"
	"math"

	"github.com/arkieguy/RAK4631-Helium-Mapper/internal/reading"
)

// PutIntLE writes the low width bytes of v into dst at offset, least
// significant byte first.
func PutIntLE(dst []byte, offset, width int, v int64) error {
	if width < 1 || width > 8 {
		return fmt.Errorf("unsupported integer width %d", width)
	}
	if offset < 0 || offset+width > len(dst) {
		return fmt.Errorf("field at offset %d width %d exceeds buffer of %d bytes", offset, width, len(dst))
	}
	u := uint64(v)
	for i := 0; i < width; i++ {
		dst[offset+i] = byte(u >> (8 * i))
	}
	return nil
}

// Encode packs a reading the way the tracker firmware does. Coordinates are
// rounded to five decimals; altitude and speed keep their int16 bit pattern;
// battery is rounded to tenths and clamped to a byte.
func Encode(r reading.SensorReading) []byte {
	buf := make([]byte, PayloadLength)
	lat := int64(int32(math.Round(r.Latitude * CoordinateScale)))
	lng := int64(int32(math.Round(r.Longitude * CoordinateScale)))
	fields := []struct {
		offset, width int
		value         int64
	}{
		{OffsetLatitude, WidthCoordinate, lat},
		{OffsetLongitude, WidthCoordinate, lng},
		{OffsetAltitude, WidthAltitude, int64(r.Altitude)},
		{OffsetSpeed, WidthSpeed, int64(r.Speed)},
	}
	for _, f := range fields {
		// offsets are constants inside PayloadLength
		_ = PutIntLE(buf, f.offset, f.width, f.value)
	}
	buf[OffsetHDOP] = r.HDOP
	buf[OffsetBattery] = batteryByte(r.Battery)
	buf[OffsetSats] = r.Sats
	return buf
}

func batteryByte(volts float64) byte {
	v := math.Round(volts * BatteryScale)
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= math.MaxUint8:
		return math.MaxUint8
	default:
		return byte(v)
	}
}
