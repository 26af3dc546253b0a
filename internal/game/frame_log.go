package game

import "fmt"

// Frame log entry kinds.
const (
	KindRedraw = "redraw"
	KindInput  = "input"
	KindResize = "resize"
	KindExit   = "exit"
)

const frameLogCapacity = 64

// FrameLogEntry is one recorded loop event.
type FrameLogEntry struct {
	Tick   int
	Kind   string
	Detail string
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] input   held=UR pointer=(120,80)
func (e FrameLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-7s %s", e.Tick, e.Kind, e.Detail)
}

// FrameLog is a ring buffer of the most recent loop events.
type FrameLog struct {
	entries []FrameLogEntry
	head    int
	count   int
}

// NewFrameLog creates a log holding at most capacity entries.
func NewFrameLog(capacity int) *FrameLog {
	if capacity < 1 {
		capacity = frameLogCapacity
	}
	return &FrameLog{entries: make([]FrameLogEntry, capacity)}
}

// Add appends an entry, evicting the oldest when full.
func (fl *FrameLog) Add(tick int, kind, detail string) {
	n := len(fl.entries)
	fl.entries[fl.head] = FrameLogEntry{Tick: tick, Kind: kind, Detail: detail}
	fl.head = (fl.head + 1) % n
	if fl.count < n {
		fl.count++
	}
}

// Len returns the number of retained entries.
func (fl *FrameLog) Len() int { return fl.count }

// Recent returns entries in chronological order (oldest first).
func (fl *FrameLog) Recent() []FrameLogEntry {
	n := len(fl.entries)
	out := make([]FrameLogEntry, fl.count)
	for i := 0; i < fl.count; i++ {
		out[i] = fl.entries[(fl.head-fl.count+i+n)%n]
	}
	return out
}

// Last returns up to k of the newest entries, oldest first.
func (fl *FrameLog) Last(k int) []FrameLogEntry {
	all := fl.Recent()
	if k >= 0 && k < len(all) {
		all = all[len(all)-k:]
	}
	return all
}

// Filter returns retained entries of the given kind. Empty kind matches all.
func (fl *FrameLog) Filter(kind string) []FrameLogEntry {
	var out []FrameLogEntry
	for _, e := range fl.Recent() {
		if kind != "" && e.Kind != kind {
			continue
		}
		out = append(out, e)
	}
	return out
}
