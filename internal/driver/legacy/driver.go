// Package legacy decodes the v1 tracker layout. Every field is assembled
// with inline shifts and the raw bytes at offsets 10..15 are reported
// alongside the decoded values.
package legacy

import (
	"context"

	"github.com/arkieguy/RAK4631-Helium-Mapper/internal/driver"
	"github.com/arkieguy/RAK4631-Helium-Mapper/internal/driver/tracker"
	"github.com/arkieguy/RAK4631-Helium-Mapper/internal/frame"
	"github.com/arkieguy/RAK4631-Helium-Mapper/internal/options"
	"github.com/arkieguy/RAK4631-Helium-Mapper/internal/reading"
)

func init() {
	driver.Register(driver.Detection{Format: options.FormatV1}, Driver{})
}

// Driver implements the legacy payload decoder.
type Driver struct{}

// Name returns the canonical driver name.
func (Driver) Name() string { return "legacy" }

// Process decodes the uplink. The port is not consulted.
func (Driver) Process(ctx context.Context, u *frame.Uplink) (reading.SensorReading, error) {
	if options.PolicyFrom(ctx).Strict {
		if err := u.Require(frame.MinLength); err != nil {
			return reading.SensorReading{}, err
		}
	}
	return Decode(u), nil
}

// Decode extracts every field with zero-fill for missing bytes.
func Decode(u *frame.Uplink) reading.SensorReading {
	b := func(i int) byte { return u.Byte(i) }

	lat := int32(uint32(b(0)) | uint32(b(1))<<8 | uint32(b(2))<<16 | uint32(b(3))<<24)
	lng := int32(uint32(b(4)) | uint32(b(5))<<8 | uint32(b(6))<<16 | uint32(b(7))<<24)
	alt := int16(uint16(b(8)) | uint16(b(9))<<8)
	speed := int16(uint16(b(12)) | uint16(b(13))<<8)

	var raw reading.RawBytes
	for i := range raw {
		raw[i] = b(tracker.OffsetRaw + i)
	}

	return reading.SensorReading{
		Latitude:  float64(lat) / tracker.CoordinateScale,
		Longitude: float64(lng) / tracker.CoordinateScale,
		Altitude:  alt,
		Speed:     speed,
		HDOP:      b(10),
		Battery:   float64(b(11)) / tracker.BatteryScale,
		Sats:      b(14),
		Raw:       &raw,
	}
}
