package terrain_test

import (
	"encoding/binary"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/trailmap/terrain-backend-go/internal/terrain"
)

// demBuf encodes cells as the little-endian int16 wire format of a DEM
// tile pack.
func demBuf(cells ...int16) []byte {
	buf := make([]byte, len(cells)*2)
	for i, v := range cells {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(v))
	}
	return buf
}

func demMeta(width, height int, b terrain.Bounds) terrain.Metadata {
	return terrain.Metadata{
		Format:   "grid",
		Width:    width,
		Height:   height,
		Encoding: "int16",
		Nodata:   terrain.NodataValue,
		Units:    "m",
		Bounds:   b,
	}
}

// uniformDEM builds a width x height grid filled with a single value.
func uniformDEM(width, height int, value int16) []byte {
	cells := make([]int16, width*height)
	for i := range cells {
		cells[i] = value
	}
	return demBuf(cells...)
}

func TestNewRejectsMalformedInput(t *testing.T) {
	bounds := terrain.Bounds{MinLat: 10, MinLng: 20, MaxLat: 11, MaxLng: 21}

	for _, tc := range []struct {
		name string
		meta terrain.Metadata
		buf  []byte
	}{
		{
			name: "buffer too short",
			meta: demMeta(3, 3, bounds),
			buf:  uniformDEM(3, 2, 0),
		},
		{
			name: "buffer too long",
			meta: demMeta(2, 2, bounds),
			buf:  uniformDEM(3, 3, 0),
		},
		{
			name: "degenerate dimensions",
			meta: demMeta(1, 4, bounds),
			buf:  uniformDEM(1, 4, 0),
		},
		{
			name: "inverted bounds",
			meta: demMeta(2, 2, terrain.Bounds{MinLat: 11, MinLng: 20, MaxLat: 10, MaxLng: 21}),
			buf:  uniformDEM(2, 2, 0),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := terrain.New(tc.meta, tc.buf)
			assert.Error(t, err)
		})
	}
}

func TestNewDecodesValidBuffer(t *testing.T) {
	bounds := terrain.Bounds{MinLat: 10, MinLng: 20, MaxLat: 11, MaxLng: 21}
	svc, err := terrain.New(demMeta(2, 2, bounds), demBuf(100, 200, 300, 400))
	assert.NoError(t, err)
	assert.Equal(t, bounds, svc.Bounds())
}

func TestNegativeElevationsSurviveDecoding(t *testing.T) {
	// Signed cells: depressions below sea level are real elevations,
	// only the sentinel means absence.
	bounds := terrain.Bounds{MinLat: 10, MinLng: 20, MaxLat: 11, MaxLng: 21}
	svc, err := terrain.New(demMeta(2, 2, bounds), demBuf(-100, -100, -100, -100))
	assert.NoError(t, err)

	h, ok := svc.Elevation(10.5, 20.5)
	assert.True(t, ok)
	assert.Equal(t, -100.0, h)
}

func TestBoundsContains(t *testing.T) {
	b := terrain.Bounds{MinLat: 10, MinLng: 20, MaxLat: 11, MaxLng: 21}

	assert.True(t, b.Contains(10.5, 20.5))
	assert.True(t, b.Contains(10, 20))
	assert.True(t, b.Contains(11, 21))
	assert.False(t, b.Contains(9.999, 20.5))
	assert.False(t, b.Contains(10.5, 21.001))
}
