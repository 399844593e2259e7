package editor

import "github.com/zjrosen/videre/internal/buffer"

// snapshot is one entry of the undo history.
type snapshot struct {
	buf    *buffer.Buffer
	cursor Cursor
}

// history is a linear undo/redo stack of full buffer snapshots.
// Recording a new state discards anything that could be redone.
type history struct {
	undos []snapshot
	redos []snapshot
	limit int
}

func newHistory(limit int) *history {
	return &history{limit: limit}
}

func (h *history) push(s snapshot) {
	h.undos = append(h.undos, s)
	if h.limit > 0 && len(h.undos) > h.limit {
		h.undos = h.undos[len(h.undos)-h.limit:]
	}
	h.redos = nil
}

// undo pops the last saved state; current becomes redoable.
func (h *history) undo(current snapshot) (snapshot, bool) {
	if len(h.undos) == 0 {
		return snapshot{}, false
	}
	s := h.undos[len(h.undos)-1]
	h.undos = h.undos[:len(h.undos)-1]
	h.redos = append(h.redos, current)
	return s, true
}

// redo pops the last undone state; current becomes undoable again.
func (h *history) redo(current snapshot) (snapshot, bool) {
	if len(h.redos) == 0 {
		return snapshot{}, false
	}
	s := h.redos[len(h.redos)-1]
	h.redos = h.redos[:len(h.redos)-1]
	h.undos = append(h.undos, current)
	return s, true
}
