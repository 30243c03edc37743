package domain

// DefaultHistoryCapacity is the number of past rounds kept for display.
const DefaultHistoryCapacity = 15

// HistoryLog keeps the most recent rounds, newest first. Entries are never
// modified after insertion; pushing past capacity evicts the oldest.
type HistoryLog struct {
	capacity int
	entries  []Round
}

func NewHistoryLog(capacity int) *HistoryLog {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}

	return &HistoryLog{
		capacity: capacity,
		entries:  make([]Round, 0, capacity),
	}
}

// Push inserts round at the front.
func (h *HistoryLog) Push(round Round) {
	if len(h.entries) < h.capacity {
		h.entries = append(h.entries, Round{})
	}
	copy(h.entries[1:], h.entries[:len(h.entries)-1])
	h.entries[0] = round
}

// Entries returns a copy of the log, newest first.
func (h *HistoryLog) Entries() []Round {
	out := make([]Round, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *HistoryLog) Len() int {
	return len(h.entries)
}

func (h *HistoryLog) Capacity() int {
	return h.capacity
}
