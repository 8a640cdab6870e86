package display

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImagePrimitives(t *testing.T) {
	im := NewImage(32, 16)

	im.VLine(5, 2, 4, Black)
	assert.Equal(t, Black, im.At(5, 2))
	assert.Equal(t, Black, im.At(5, 5))
	assert.Equal(t, White, im.At(5, 6))

	im.HLine(0, 10, 3, Black)
	assert.Equal(t, Black, im.At(2, 10))
	assert.Equal(t, White, im.At(3, 10))

	im.Rect(10, 10, 4, 4, Black, false)
	assert.Equal(t, Black, im.At(10, 10))
	assert.Equal(t, Black, im.At(13, 13))
	assert.Equal(t, White, im.At(11, 11))

	im.Fill(White)
	assert.Equal(t, White, im.At(5, 2))
}

func TestImageClipsOutOfBounds(t *testing.T) {
	im := NewImage(8, 8)

	// Off-screen drawing must be a no-op, not a panic. The firmware relied
	// on the panel driver clipping the same way.
	im.VLine(-1, 0, 4, Black)
	im.VLine(3, 6, 10, Black)
	im.Text("clip", 20, 20, Black)

	assert.Equal(t, Black, im.At(3, 7))
	assert.Equal(t, White, im.At(9, 9))
}

func TestImageTextMarksPixels(t *testing.T) {
	im := NewImage(64, 16)
	im.Text("CO2", 0, 0, Black)

	found := false
	for y := 0; y < 16 && !found; y++ {
		for x := 0; x < 24 && !found; x++ {
			if im.At(x, y) == Black {
				found = true
			}
		}
	}
	assert.True(t, found, "text should rasterize at least one pixel")
}

func TestImageSnapshotAndPNG(t *testing.T) {
	im := NewImage(16, 16)
	im.SnapshotPath = filepath.Join(t.TempDir(), "frame.png")

	require.NoError(t, im.FullRefresh())
	require.NoError(t, im.PartialRefresh())
	fulls, partials := im.Refreshes()
	assert.Equal(t, 1, fulls)
	assert.Equal(t, 1, partials)

	var buf bytes.Buffer
	require.NoError(t, im.EncodePNG(&buf))
	assert.NotZero(t, buf.Len())
}
