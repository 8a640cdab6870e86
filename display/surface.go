package display

// Color is a monochrome framebuffer color. The values match the byte the
// e-paper controller expects for a fill.
type Color uint8

const (
	White Color = 0xff
	Black Color = 0x00
)

// CharWidth is the pixel width of one text cell. CharHeight is the cell
// height; LineHeight is the vertical advance between stacked text lines.
const (
	CharWidth  = 8
	CharHeight = 8
	LineHeight = 10
)

// Surface is the drawing boundary the charting engine renders against.
// Implementations own the framebuffer; the renderer only issues primitives.
//
// FullRefresh repaints the whole panel (slow, flicker). PartialRefresh is the
// fast e-paper update mode used for every repaint after the first.
type Surface interface {
	Size() (w, h int)
	Fill(c Color)
	FillRect(x, y, w, h int, c Color)
	Rect(x, y, w, h int, c Color, filled bool)
	HLine(x, y, length int, c Color)
	VLine(x, y, length int, c Color)
	Text(s string, x, y int, c Color)
	FullRefresh() error
	PartialRefresh() error
}
