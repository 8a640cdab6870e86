package chart

// Entry is one closed time bin: either a candle (min/max summary of the
// samples that fell inside the bin) or a gap (the bin closed empty, kept so
// the x-axis spacing stays honest).
type Entry struct {
	Min  float64
	Max  float64
	Time int64 // bin open, unix seconds; zero for gaps

	gap bool
}

// Candle builds a closed-bin summary entry.
func Candle(min, max float64, ts int64) Entry {
	return Entry{Min: min, Max: max, Time: ts}
}

// Gap builds an empty-bin marker entry.
func Gap() Entry {
	return Entry{gap: true}
}

func (e Entry) IsGap() bool { return e.gap }

// History is a bounded, insertion-ordered sequence of closed-bin entries.
// Index 0 is the oldest retained entry; capacity equals the graph width in
// pixels, one closed bin per pixel column.
type History struct {
	capacity int
	entries  []Entry
}

func NewHistory(capacity int) *History {
	return &History{
		capacity: capacity,
		entries:  make([]Entry, 0, capacity),
	}
}

// Append adds one entry at the tail, then clamps to the most recent
// `capacity` entries. The clamp is keep-last-N, not evict-by-one: if the
// sequence is somehow over capacity it is cut back to the tail wholesale.
func (h *History) Append(e Entry) {
	h.entries = append(h.entries, e)
	if len(h.entries) > h.capacity {
		h.entries = h.entries[len(h.entries)-h.capacity:]
	}
}

func (h *History) Len() int { return len(h.entries) }

// At returns the entry at index i, oldest-first.
func (h *History) At(i int) Entry { return h.entries[i] }

// LastN returns the most recent min(n, len) entries, oldest-first. The
// returned slice aliases the history and must not be mutated.
func (h *History) LastN(n int) []Entry {
	if n > len(h.entries) {
		n = len(h.entries)
	}
	return h.entries[len(h.entries)-n:]
}
