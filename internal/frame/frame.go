package frame

import (
	"errors"
	"fmt"
)

// MinLength is the number of bytes a tracker uplink must carry to hold every
// field (offsets 0 through 14).
const MinLength = 15

// ErrInvalidBufferLength reports an uplink shorter than the length required
// by the strict decode policy.
var ErrInvalidBufferLength = errors.New("invalid buffer length")

// Uplink represents one payload received from a tracker together with the
// port tag it arrived on. Reads past the end of Raw yield zero.
type Uplink struct {
	Raw  []byte
	Port int
}

// Parse wraps the raw payload. The port is carried as metadata only.
func Parse(raw []byte, port int) Uplink {
	return Uplink{Raw: raw, Port: port}
}

// Len returns the number of bytes actually present.
func (u Uplink) Len() int {
	return len(u.Raw)
}

// Require fails with ErrInvalidBufferLength when fewer than min bytes are present.
func (u Uplink) Require(min int) error {
	if len(u.Raw) < min {
		return fmt.Errorf("%w: need at least %d bytes, got %d", ErrInvalidBufferLength, min, len(u.Raw))
	}
	return nil
}

// Byte returns the byte at offset, or zero when offset is out of range.
func (u Uplink) Byte(offset int) byte {
	if offset < 0 || offset >= len(u.Raw) {
		return 0
	}
	return u.Raw[offset]
}

// Int reads width bytes starting at offset as a little-endian two's
// complement integer. Missing bytes count as zero. Width must be 1..8.
func (u Uplink) Int(offset, width int) int64 {
	if width < 1 || width > 8 {
		panic(fmt.Sprintf("frame: unsupported integer width %d", width))
	}
	var acc uint64
	for i := 0; i < width; i++ {
		acc |= uint64(u.Byte(offset+i)) << (8 * i)
	}
	if width == 8 {
		return int64(acc)
	}
	if u.Byte(offset+width-1)&0x80 != 0 {
		return int64(acc) - int64(1)<<(8*width)
	}
	return int64(acc)
}
