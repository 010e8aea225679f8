// Package packed decodes the v2 tracker layout through the shared
// little-endian integer helper.
package packed

import (
	"context"

	"github.com/arkieguy/RAK4631-Helium-Mapper/internal/driver"
	"github.com/arkieguy/RAK4631-Helium-Mapper/internal/driver/tracker"
	"github.com/arkieguy/RAK4631-Helium-Mapper/internal/frame"
	"github.com/arkieguy/RAK4631-Helium-Mapper/internal/options"
	"github.com/arkieguy/RAK4631-Helium-Mapper/internal/reading"
)

func init() {
	driver.Register(driver.Detection{Format: options.FormatV2}, Driver{})
}

// Driver implements the packed payload decoder.
type Driver struct{}

// Name returns the canonical driver name.
func (Driver) Name() string { return "packed" }

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
	return reading.SensorReading{
		Latitude:  float64(u.Int(tracker.OffsetLatitude, tracker.WidthCoordinate)) / tracker.CoordinateScale,
		Longitude: float64(u.Int(tracker.OffsetLongitude, tracker.WidthCoordinate)) / tracker.CoordinateScale,
		Altitude:  int16(u.Int(tracker.OffsetAltitude, tracker.WidthAltitude)),
		Speed:     int16(u.Int(tracker.OffsetSpeed, tracker.WidthSpeed)),
		HDOP:      u.Byte(tracker.OffsetHDOP),
		Battery:   float64(u.Byte(tracker.OffsetBattery)) / tracker.BatteryScale,
		Sats:      u.Byte(tracker.OffsetSats),
	}
}
