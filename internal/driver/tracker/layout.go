package tracker

// Byte offsets of the RAK4631 tracker uplink. The firmware fills
// lat_1..lat_4, lng_1..lng_4, alt_1..alt_2, hdop, battery, sp_1..sp_2 and
// sats in that order, so bytes 10..13 are shared between the single-byte
// fields and the legacy raw byte view.
const (
	OffsetLatitude  = 0
	OffsetLongitude = 4
	OffsetAltitude  = 8
	OffsetHDOP      = 10
	OffsetBattery   = 11
	OffsetSpeed     = 12
	OffsetSats      = 14

	// OffsetRaw is the first byte of the legacy char_a..char_f view.
	OffsetRaw = 10

	WidthCoordinate = 4
	WidthAltitude   = 2
	WidthSpeed      = 2

	// PayloadLength is the number of bytes the firmware transmits.
	PayloadLength = 15

	// CoordinateScale converts fixed-point coordinates to degrees.
	CoordinateScale = 100000.0
	// BatteryScale converts the battery byte to volts.
	BatteryScale = 10.0
)
