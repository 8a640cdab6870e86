package display

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Image is a host-side Surface backed by an in-memory grayscale framebuffer.
// It stands in for the e-paper panel when running on a workstation: refreshes
// optionally write a PNG snapshot, so `airgraph run` and `airgraph demo` can
// be eyeballed without hardware.
//
// Text uses the basicfont face from golang.org/x/image; glyphs are 7x13 but
// the layout grid stays at the panel's 8 px cell so coordinates match the
// firmware rendering.
type Image struct {
	img *image.Gray

	// SnapshotPath, when non-empty, receives a PNG of the framebuffer on
	// every refresh.
	SnapshotPath string

	fulls    int
	partials int
}

func NewImage(w, h int) *Image {
	im := &Image{img: image.NewGray(image.Rect(0, 0, w, h))}
	im.Fill(White)
	return im
}

func (im *Image) Size() (int, int) {
	b := im.img.Bounds()
	return b.Dx(), b.Dy()
}

func (im *Image) set(x, y int, c Color) {
	if !image.Pt(x, y).In(im.img.Bounds()) {
		return
	}
	im.img.SetGray(x, y, color.Gray{Y: uint8(c)})
}

// At reports the pixel color, White for out-of-bounds coordinates.
func (im *Image) At(x, y int) Color {
	if !image.Pt(x, y).In(im.img.Bounds()) {
		return White
	}
	if im.img.GrayAt(x, y).Y < 0x80 {
		return Black
	}
	return White
}

func (im *Image) Fill(c Color) {
	b := im.img.Bounds()
	im.FillRect(b.Min.X, b.Min.Y, b.Dx(), b.Dy(), c)
}

func (im *Image) FillRect(x, y, w, h int, c Color) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			im.set(xx, yy, c)
		}
	}
}

func (im *Image) Rect(x, y, w, h int, c Color, filled bool) {
	if filled {
		im.FillRect(x, y, w, h, c)
		return
	}
	im.HLine(x, y, w, c)
	im.HLine(x, y+h-1, w, c)
	im.VLine(x, y, h, c)
	im.VLine(x+w-1, y, h, c)
}

func (im *Image) HLine(x, y, length int, c Color) {
	for i := 0; i < length; i++ {
		im.set(x+i, y, c)
	}
}

func (im *Image) VLine(x, y, length int, c Color) {
	for i := 0; i < length; i++ {
		im.set(x, y+i, c)
	}
}

func (im *Image) Text(s string, x, y int, c Color) {
	d := font.Drawer{
		Dst:  im.img,
		Src:  image.NewUniform(color.Gray{Y: uint8(c)}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y+basicfont.Face7x13.Ascent-2),
	}
	d.DrawString(s)
}

func (im *Image) FullRefresh() error {
	im.fulls++
	return im.snapshot()
}

func (im *Image) PartialRefresh() error {
	im.partials++
	return im.snapshot()
}

// Refreshes reports how many full and partial refreshes have been issued.
func (im *Image) Refreshes() (fulls, partials int) {
	return im.fulls, im.partials
}

func (im *Image) snapshot() error {
	if im.SnapshotPath == "" {
		return nil
	}
	f, err := os.Create(im.SnapshotPath)
	if err != nil {
		return fmt.Errorf("display snapshot: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, im.img); err != nil {
		return fmt.Errorf("display snapshot: %w", err)
	}
	return nil
}

// EncodePNG writes the current framebuffer as PNG.
func (im *Image) EncodePNG(w io.Writer) error {
	return png.Encode(w, im.img)
}
