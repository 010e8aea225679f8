package mapper

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/arkieguy/RAK4631-Helium-Mapper/internal/driver"
	_ "github.com/arkieguy/RAK4631-Helium-Mapper/internal/driver/legacy" // register driver
	"github.com/arkieguy/RAK4631-Helium-Mapper/internal/driver/packed"
	"github.com/arkieguy/RAK4631-Helium-Mapper/internal/driver/tracker"
	"github.com/arkieguy/RAK4631-Helium-Mapper/internal/frame"
	"github.com/arkieguy/RAK4631-Helium-Mapper/internal/gnss"
	"github.com/arkieguy/RAK4631-Helium-Mapper/internal/reading"
)

// SensorReading is one decoded tracker fix.
type SensorReading = reading.SensorReading

// RawBytes holds the legacy char_a..char_f view of offsets 10..15.
type RawBytes = reading.RawBytes

var (
	// ErrInvalidBufferLength is returned by strict decoding of payloads
	// shorter than MinLength.
	ErrInvalidBufferLength = frame.ErrInvalidBufferLength
	// ErrNoFix is returned by EncodeNMEA when no sentence carried a position.
	ErrNoFix = gnss.ErrNoFix
)

// MinLength is the shortest payload accepted by strict decoding.
const MinLength = frame.MinLength

// Result captures the outcome of a decode.
type Result struct {
	Driver    string
	Format    string
	Port      int
	RawHex    string
	ByteCount int
	Reading   SensorReading
	Fields    map[string]any
}

// String renders a human-readable representation of the result.
func (r Result) String() string {
	summary := map[string]any{
		"driver":     r.Driver,
		"format":     r.Format,
		"port":       r.Port,
		"byte_count": r.ByteCount,
		"raw_hex":    r.RawHex,
	}
	if len(r.Fields) > 0 {
		summary["fields"] = r.Fields
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf("driver: %s bytes:%d raw:%s (marshal error: %v)", r.Driver, r.ByteCount, r.RawHex, err)
	}
	return string(data)
}

// Decode runs the default packed decoder with zero-fill for short payloads.
// The port is accepted for future per-port layouts and otherwise ignored.
func Decode(payload []byte, port int) SensorReading {
	up := frame.Parse(payload, port)
	return packed.Decode(&up)
}

// DecodeWithOptions selects the driver for the requested format and decodes
// the payload.
func DecodeWithOptions(ctx context.Context, payload []byte, port int, opts DecodeOptions) (Result, error) {
	ctx, det, err := opts.toInternal(ctx)
	if err != nil {
		return Result{}, err
	}
	drv, err := driver.Lookup(det)
	if err != nil {
		return Result{}, err
	}
	up := frame.Parse(payload, port)
	result := Result{
		Driver:    drv.Name(),
		Format:    string(det.Format),
		Port:      port,
		RawHex:    strings.ToUpper(hex.EncodeToString(payload)),
		ByteCount: len(payload),
	}
	r, err := drv.Process(ctx, &up)
	if err != nil {
		return result, err
	}
	result.Reading = r
	result.Fields = r.Fields()
	return result, nil
}

// DecodeHex decodes a hex-encoded payload with default options.
func DecodeHex(ctx context.Context, raw string, port int) (Result, error) {
	return DecodeHexWithOptions(ctx, raw, port, DecodeOptions{})
}

// DecodeHexWithOptions decodes a hex-encoded payload with custom options.
func DecodeHexWithOptions(ctx context.Context, raw string, port int, opts DecodeOptions) (Result, error) {
	data, err := decodeHex(raw)
	if err != nil {
		return Result{}, err
	}
	return DecodeWithOptions(ctx, data, port, opts)
}

// DecodeBase64WithOptions decodes a base64 payload as delivered by LoRaWAN
// network servers.
func DecodeBase64WithOptions(ctx context.Context, raw string, port int, opts DecodeOptions) (Result, error) {
	data, err := base64.StdEncoding.DecodeString(stripWhitespace(raw))
	if err != nil {
		return Result{}, fmt.Errorf("decode base64: %w", err)
	}
	return DecodeWithOptions(ctx, data, port, opts)
}

// Encode packs a reading into the 15-byte payload the tracker transmits.
func Encode(r SensorReading) []byte {
	return tracker.Encode(r)
}

// EncodeNMEA builds a payload from NMEA sentences and a battery voltage.
func EncodeNMEA(lines []string, battery float64) ([]byte, error) {
	r, err := gnss.FromSentences(lines, battery)
	if err != nil {
		return nil, err
	}
	return tracker.Encode(r), nil
}

// Formats lists the registered payload format versions.
func Formats() []string {
	return driver.Formats()
}

func decodeHex(input string) ([]byte, error) {
	clean := stripWhitespace(input)
	if strings.HasPrefix(clean, "0X") || strings.HasPrefix(clean, "0x") {
		clean = clean[2:]
	}
	if len(clean)%2 != 0 {
		return nil, fmt.Errorf("hex payload must contain an even number of digits, got %d", len(clean))
	}
	decoded := make([]byte, len(clean)/2)
	if _, err := hex.Decode(decoded, []byte(clean)); err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded, nil
}

func stripWhitespace(s string) string {
	builder := strings.Builder{}
	builder.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '|' || r == '_' {
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
