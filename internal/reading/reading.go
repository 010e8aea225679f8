package reading

// SensorReading is one decoded tracker fix.
type SensorReading struct {
	Latitude  float64   `json:"latitude" yaml:"latitude"`
	Longitude float64   `json:"longitude" yaml:"longitude"`
	Altitude  int16     `json:"altitude" yaml:"altitude"`
	Speed     int16     `json:"speed" yaml:"speed"`
	HDOP      uint8     `json:"hdop" yaml:"hdop"`
	Battery   float64   `json:"battery" yaml:"battery"`
	Sats      uint8     `json:"sats" yaml:"sats"`
	Raw       *RawBytes `json:"-" yaml:"-"`
}

// RawBytes mirrors payload offsets 10 through 15 as emitted by the legacy
// decoder (char_a .. char_f).
type RawBytes [6]byte

var rawKeys = [6]string{"char_a", "char_b", "char_c", "char_d", "char_e", "char_f"}

// Fields flattens the reading into the key/value record network servers
// expect.
func (r SensorReading) Fields() map[string]any {
	fields := map[string]any{
		"latitude":  r.Latitude,
		"longitude": r.Longitude,
		"altitude":  int(r.Altitude),
		"speed":     int(r.Speed),
		"hdop":      int(r.HDOP),
		"battery":   r.Battery,
		"sats":      int(r.Sats),
	}
	if r.Raw != nil {
		for i, key := range rawKeys {
			fields[key] = int(r.Raw[i])
		}
	}
	return fields
}

// Common returns a copy without the legacy raw bytes.
func (r SensorReading) Common() SensorReading {
	r.Raw = nil
	return r
}
