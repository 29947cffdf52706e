package clipview

import "sync"

// History keeps the most recent distinct snapshots, newest first. Offset 0 is
// the latest one.
type History struct {
	mu      sync.Mutex
	max     int
	entries []Snapshot
}

func NewHistory(max int) *History {
	if max < 1 {
		max = 1
	}
	return &History{max: max}
}

// Push records s unless it is empty or equal to the newest entry.
func (h *History) Push(s Snapshot) {
	if s.IsEmpty() {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) > 0 && h.entries[0] == s {
		return
	}
	h.entries = append([]Snapshot{s}, h.entries...)
	if len(h.entries) > h.max {
		h.entries = h.entries[:h.max]
	}
}

func (h *History) At(offset int) (Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if offset < 0 || offset >= len(h.entries) {
		return Snapshot{}, false
	}
	return h.entries[offset], true
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
