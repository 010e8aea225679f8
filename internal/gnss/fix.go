// Package gnss assembles a tracker reading from NMEA 0183 sentences, taking
// the same fields the firmware polls from its GPS module.
package gnss

import (
	"errors"
	"math"
	"strings"

	nmea "github.com/adrianmo/go-nmea"

	"github.com/arkieguy/RAK4631-Helium-Mapper/internal/reading"
)

const (
	knotsToMPS = 0.514444
	kphToMPS   = 1 / 3.6
)

// ErrNoFix is returned when no sentence carried a position.
var ErrNoFix = errors.New("no valid GPS position found")

// Builder accumulates sentences until a fix is complete.
type Builder struct {
	r        reading.SensorReading
	hasPos   bool
	hasSpeed bool
	fromRMC  bool
}

// Feed parses one line. Lines that are not NMEA sentences or fail to parse
// are ignored; the return value reports whether the line was used.
func (b *Builder) Feed(line string) bool {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "$") {
		return false
	}
	sentence, err := nmea.Parse(line)
	if err != nil {
		return false
	}
	switch sentence.DataType() {
	case nmea.TypeGGA:
		gga := sentence.(nmea.GGA)
		if gga.FixQuality == nmea.Invalid {
			return false
		}
		b.r.Latitude = gga.Latitude
		b.r.Longitude = gga.Longitude
		b.r.Altitude = clampInt16(gga.Altitude)
		b.r.HDOP = clampUint8(gga.HDOP)
		b.r.Sats = clampUint8(float64(gga.NumSatellites))
		b.hasPos = true
	case nmea.TypeRMC:
		rmc := sentence.(nmea.RMC)
		if rmc.Validity != nmea.ValidRMC {
			return false
		}
		b.r.Speed = clampInt16(rmc.Speed * knotsToMPS)
		b.hasSpeed = true
		b.fromRMC = true
	case nmea.TypeVTG:
		if b.fromRMC {
			return false
		}
		vtg := sentence.(nmea.VTG)
		b.r.Speed = clampInt16(vtg.GroundSpeedKPH * kphToMPS)
		b.hasSpeed = true
	default:
		return false
	}
	return true
}

// HasSpeed reports whether any sentence supplied ground speed.
func (b *Builder) HasSpeed() bool { return b.hasSpeed }

// Reading returns the accumulated fix with the given battery voltage.
func (b *Builder) Reading(battery float64) (reading.SensorReading, error) {
	if !b.hasPos {
		return reading.SensorReading{}, ErrNoFix
	}
	r := b.r
	r.Battery = battery
	return r, nil
}

// FromSentences feeds every line and returns the resulting reading.
func FromSentences(lines []string, battery float64) (reading.SensorReading, error) {
	var b Builder
	for _, line := range lines {
		b.Feed(line)
	}
	return b.Reading(battery)
}

// The firmware stores these through integer assignments, which truncate.
func clampInt16(v float64) int16 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt16:
		return math.MaxInt16
	case v <= math.MinInt16:
		return math.MinInt16
	default:
		return int16(v)
	}
}

func clampUint8(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= math.MaxUint8:
		return math.MaxUint8
	default:
		return uint8(v)
	}
}
