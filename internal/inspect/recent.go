package inspect

import (
	"sync"
	"time"

	"github.com/danmuck/disctl/internal/protocol/pdu"
	"github.com/danmuck/disctl/internal/protocol/record"
)

// Summary is the inspector view of one decoded PDU.
type Summary struct {
	ID       string      `json:"id,omitempty"`
	Received time.Time   `json:"received"`
	Source   string      `json:"source,omitempty"`
	Type     string      `json:"type"`
	Family   string      `json:"family"`
	Exercise uint8       `json:"exercise"`
	Length   int         `json:"length"`
	Hash     uint64      `json:"hash"`
	Tree     record.Node `json:"tree"`
}

// Summarize builds a Summary for p. id and source may be empty.
func Summarize(p *pdu.Pdu, id, source string, received time.Time) Summary {
	return Summary{
		ID:       id,
		Received: received,
		Source:   source,
		Type:     p.Header.PduType.String(),
		Family:   p.Header.ProtocolFamily.String(),
		Exercise: p.Header.ExerciseID,
		Length:   int(p.Header.Length),
		Hash:     pdu.Hash(p),
		Tree:     pdu.Describe(p),
	}
}

// Recent keeps the last N summaries. Safe for concurrent use.
type Recent struct {
	mu    sync.Mutex
	items []Summary
	next  int
	full  bool
}

func NewRecent(capacity int) *Recent {
	if capacity < 1 {
		capacity = 1
	}
	return &Recent{items: make([]Summary, capacity)}
}

func (r *Recent) Add(s Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[r.next] = s
	r.next = (r.next + 1) % len(r.items)
	if r.next == 0 {
		r.full = true
	}
}

func (r *Recent) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.full {
		return len(r.items)
	}
	return r.next
}

// Snapshot returns up to limit summaries, newest first. limit <= 0 returns all.
func (r *Recent) Snapshot(limit int) []Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := r.next
	if r.full {
		n = len(r.items)
	}
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Summary, 0, n)
	for i := 1; i <= n; i++ {
		idx := (r.next - i + len(r.items)) % len(r.items)
		out = append(out, r.items[idx])
	}
	return out
}
