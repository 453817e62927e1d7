package model

// History is the ordered list of executed moves, oldest first.
type History struct {
	records []MoveRecord
}

func (h *History) Push(r MoveRecord) {
	h.records = append(h.records, r)
}

// Pop removes and returns the most recent record.
func (h *History) Pop() (MoveRecord, bool) {
	if len(h.records) == 0 {
		return MoveRecord{}, false
	}
	last := h.records[len(h.records)-1]
	h.records = h.records[:len(h.records)-1]
	return last, true
}

func (h *History) Len() int {
	return len(h.records)
}

// Last returns the most recent record without removing it.
func (h *History) Last() (MoveRecord, bool) {
	if len(h.records) == 0 {
		return MoveRecord{}, false
	}
	return h.records[len(h.records)-1], true
}

// Records returns a deep copy of the history.
func (h *History) Records() []MoveRecord {
	out := make([]MoveRecord, len(h.records))
	for i, r := range h.records {
		out[i] = r.Clone()
	}
	return out
}
