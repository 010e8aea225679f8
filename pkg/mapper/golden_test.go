package mapper

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arkieguy/RAK4631-Helium-Mapper/internal/testutil"
)

func TestGolden(t *testing.T) {
	fixtures := []struct {
		format string
		name   string
	}{
		{format: "v2", name: "scenario"},
		{format: "v2", name: "southern"},
		{format: "v2", name: "empty"},
		{format: "v1", name: "scenario"},
		{format: "v1", name: "southern"},
	}
	for _, tc := range fixtures {
		tc := tc
		t.Run(tc.format+"_"+tc.name, func(t *testing.T) {
			hexStr := testutil.LoadHex(t, tc.format+"/"+tc.name+".hex")
			result, err := DecodeHexWithOptions(context.Background(), hexStr, 1, DecodeOptions{Format: tc.format})
			require.NoError(t, err)
			require.Equal(t, tc.format, result.Format)

			var expected map[string]any
			testutil.LoadJSON(t, tc.format+"/"+tc.name+".json", &expected)
			require.Equal(t, "", diffMaps(expected, result.Fields))
		})
	}
}

func TestGoldenNMEA(t *testing.T) {
	lines := testutil.LoadLines(t, "nmea/munich.nmea")
	payload, err := EncodeNMEA(lines, 3.7)
	require.NoError(t, err)

	want, err := decodeHex(testutil.LoadHex(t, "nmea/munich.hex"))
	require.NoError(t, err)
	require.Equal(t, want, payload)

	r := Decode(payload, 1)
	require.InDelta(t, 48.1173, r.Latitude, 1e-9)
	require.InDelta(t, 11.51667, r.Longitude, 1e-9)
	require.EqualValues(t, 545, r.Altitude)
	require.EqualValues(t, 11, r.Speed)
	require.InDelta(t, 3.7, r.Battery, 1e-9)
}

func diffMaps(expected, actual map[string]any) string {
	if len(expected) != len(actual) {
		return fmt.Sprintf("len mismatch expected %d actual %d", len(expected), len(actual))
	}
	actualSet := FieldSet{data: actual}
	for k, v := range expected {
		if _, ok := actual[k]; !ok {
			return fmt.Sprintf("missing key %s", k)
		}
		switch ev := v.(type) {
		case float64:
			av, err := actualSet.Float(k)
			if err != nil || math.Abs(ev-av) > 1e-6 {
				return fmt.Sprintf("key %s mismatch expected %v got %v", k, v, actual[k])
			}
		default:
			if fmt.Sprintf("%v", v) != fmt.Sprintf("%v", actual[k]) {
				return fmt.Sprintf("key %s mismatch expected %v got %v", k, v, actual[k])
			}
		}
	}
	return ""
}
