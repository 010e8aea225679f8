package mapper

import (
	"context"
	"encoding/base64"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scenario = []byte{0x60, 0x79, 0xFE, 0xFF, 0x00, 0x00, 0x00, 0x00, 0x64, 0x00, 0x05, 0x32, 0x0A, 0x00, 0x08, 0x00}

func TestDecodeHex(t *testing.T) {
	raw := " |6079_FEFF 0000| "
	data, err := decodeHex(raw)
	require.NoError(t, err)
	require.Len(t, data, 6)

	data, err = decodeHex("0x0A0b")
	require.NoError(t, err)
	require.Equal(t, []byte{0x0A, 0x0B}, data)
}

func TestDecodeHexOddLength(t *testing.T) {
	_, err := decodeHex("ABC")
	require.Error(t, err)
}

func TestDecodeScenario(t *testing.T) {
	r := Decode(scenario, 2)
	assert.Equal(t, -1.0, r.Latitude)
	assert.Equal(t, 0.0, r.Longitude)
	assert.EqualValues(t, 100, r.Altitude)
	assert.EqualValues(t, 10, r.Speed)
	assert.EqualValues(t, 5, r.HDOP)
	assert.Equal(t, 5.0, r.Battery)
	assert.EqualValues(t, 8, r.Sats)
	assert.Nil(t, r.Raw)
}

func TestDecodeDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		buf := make([]byte, 15+rng.Intn(4))
		rng.Read(buf)
		port := rng.Intn(224)
		require.Equal(t, Decode(buf, port), Decode(buf, port))
		require.Equal(t, Decode(buf, port), Decode(buf, port+1), "port must not affect decoding")
	}
}

func TestLatitudeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 1000; i++ {
		lat := float64(rng.Int63n(18000001)-9000000) / 100000
		got := Decode(Encode(SensorReading{Latitude: lat}), 1).Latitude
		require.InDelta(t, lat, got, 1e-9)
	}
	for _, lat := range []float64{-90, 90, 0, 52.52001, -0.00001} {
		require.InDelta(t, lat, Decode(Encode(SensorReading{Latitude: lat}), 1).Latitude, 1e-9)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	in := SensorReading{
		Latitude:  -33.85,
		Longitude: 151.2,
		Altitude:  -12,
		Speed:     -3,
		HDOP:      2,
		Battery:   4.1,
		Sats:      12,
	}
	out := Decode(Encode(in), 1)
	require.InDelta(t, in.Latitude, out.Latitude, 1e-9)
	require.InDelta(t, in.Longitude, out.Longitude, 1e-9)
	require.InDelta(t, in.Battery, out.Battery, 1e-9)
	out.Latitude, out.Longitude, out.Battery = in.Latitude, in.Longitude, in.Battery
	require.Equal(t, in, out)
}

func TestAltitudeSignExtension(t *testing.T) {
	buf := make([]byte, 16)
	buf[8], buf[9] = 0xFF, 0xFF
	require.EqualValues(t, -1, Decode(buf, 0).Altitude)
}

func TestDecodeEmptyPermissive(t *testing.T) {
	require.Equal(t, SensorReading{}, Decode(nil, 0))

	for _, format := range []string{"v1", "v2"} {
		result, err := DecodeWithOptions(context.Background(), []byte{}, 0, DecodeOptions{Format: format})
		require.NoError(t, err, format)
		require.Equal(t, SensorReading{}, result.Reading.Common(), format)
	}
}

func TestDecodeStrict(t *testing.T) {
	ctx := context.Background()
	for _, format := range []string{"v1", "v2"} {
		result, err := DecodeWithOptions(ctx, scenario[:14], 0, DecodeOptions{Format: format, Strict: true})
		require.True(t, errors.Is(err, ErrInvalidBufferLength), format)
		require.Equal(t, 14, result.ByteCount)
		require.Nil(t, result.Fields)

		_, err = DecodeWithOptions(ctx, scenario[:MinLength], 0, DecodeOptions{Format: format, Strict: true})
		require.NoError(t, err, format)
	}
}

func TestFormatsEquivalent(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		buf := make([]byte, rng.Intn(20))
		rng.Read(buf)
		v1, err := DecodeWithOptions(ctx, buf, 1, DecodeOptions{Format: "legacy"})
		require.NoError(t, err)
		v2, err := DecodeWithOptions(ctx, buf, 1, DecodeOptions{Format: "packed"})
		require.NoError(t, err)
		require.Equal(t, v2.Reading, v1.Reading.Common())
		for k, v := range v2.Fields {
			require.Equal(t, v, v1.Fields[k], k)
		}
		require.Len(t, v1.Fields, len(v2.Fields)+6)
	}
}

func TestDecodeWithOptionsMetadata(t *testing.T) {
	result, err := DecodeWithOptions(context.Background(), scenario, 3, DecodeOptions{})
	require.NoError(t, err)
	require.Equal(t, "packed", result.Driver)
	require.Equal(t, "v2", result.Format)
	require.Equal(t, 3, result.Port)
	require.Equal(t, 16, result.ByteCount)
	require.Equal(t, "6079FEFF00000000640005320A000800", result.RawHex)
	require.Contains(t, result.String(), `"driver": "packed"`)

	sats, err := result.FieldSet().Int("sats")
	require.NoError(t, err)
	require.EqualValues(t, 8, sats)
	battery, err := result.FieldSet().Float("battery")
	require.NoError(t, err)
	require.Equal(t, 5.0, battery)
	_, err = result.FieldSet().Int("char_a")
	require.Error(t, err)
}

func TestDecodeUnknownFormat(t *testing.T) {
	_, err := DecodeWithOptions(context.Background(), scenario, 1, DecodeOptions{Format: "msb"})
	require.ErrorContains(t, err, "unknown payload format")
}

func TestDecodeBase64(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(scenario)
	result, err := DecodeBase64WithOptions(context.Background(), encoded, 1, DecodeOptions{Format: "v1"})
	require.NoError(t, err)
	require.Equal(t, "legacy", result.Driver)
	require.EqualValues(t, 0x32, result.Fields["char_b"])

	_, err = DecodeBase64WithOptions(context.Background(), "***", 1, DecodeOptions{})
	require.Error(t, err)
}

func TestEncodeNMEANoFix(t *testing.T) {
	_, err := EncodeNMEA([]string{"not nmea"}, 4)
	require.True(t, errors.Is(err, ErrNoFix))
}

func TestFormats(t *testing.T) {
	require.Equal(t, []string{"v1", "v2"}, Formats())
}

func TestFieldSetFloatRejectsMissing(t *testing.T) {
	fs := Result{Fields: map[string]any{"x": math.Pi}}.FieldSet()
	_, err := fs.Float("y")
	require.Error(t, err)
	_, err = fs.Int("x")
	require.Error(t, err)
	s, err := fs.String("x")
	require.NoError(t, err)
	require.NotEmpty(t, s)
}
