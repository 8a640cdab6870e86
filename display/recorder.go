package display

// OpKind identifies a recorded draw primitive.
type OpKind uint8

const (
	OpFill OpKind = iota
	OpFillRect
	OpRect
	OpHLine
	OpVLine
	OpText
	OpFullRefresh
	OpPartialRefresh
)

// Op is one recorded draw call.
type Op struct {
	Kind   OpKind
	X, Y   int
	W, H   int
	Len    int
	Color  Color
	Filled bool
	Text   string
}

// Recorder is a Surface that records the draw-command sequence instead of
// rasterizing it. Used by tests to assert exact render output, and to check
// render idempotence.
type Recorder struct {
	Width, Height int
	Ops           []Op
	Fulls         int
	Partials      int

	// RefreshErr, when set, is returned by both refresh calls. Lets tests
	// exercise the fatal display-failure path.
	RefreshErr error
}

func NewRecorder(w, h int) *Recorder {
	return &Recorder{Width: w, Height: h}
}

func (r *Recorder) Size() (int, int) { return r.Width, r.Height }

func (r *Recorder) Fill(c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, Color: c})
}

func (r *Recorder) FillRect(x, y, w, h int, c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) Rect(x, y, w, h int, c Color, filled bool) {
	r.Ops = append(r.Ops, Op{Kind: OpRect, X: x, Y: y, W: w, H: h, Color: c, Filled: filled})
}

func (r *Recorder) HLine(x, y, length int, c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpHLine, X: x, Y: y, Len: length, Color: c})
}

func (r *Recorder) VLine(x, y, length int, c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpVLine, X: x, Y: y, Len: length, Color: c})
}

func (r *Recorder) Text(s string, x, y int, c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpText, X: x, Y: y, Text: s, Color: c})
}

func (r *Recorder) FullRefresh() error {
	r.Ops = append(r.Ops, Op{Kind: OpFullRefresh})
	r.Fulls++
	return r.RefreshErr
}

func (r *Recorder) PartialRefresh() error {
	r.Ops = append(r.Ops, Op{Kind: OpPartialRefresh})
	r.Partials++
	return r.RefreshErr
}

// Reset clears recorded state but keeps the configured size.
func (r *Recorder) Reset() {
	r.Ops = nil
	r.Fulls = 0
	r.Partials = 0
}

// Count returns how many ops of the given kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
