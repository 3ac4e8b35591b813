// Package data defines the market event feed consumed by a run and its
// in memory and CSV backed sources
package data

// SliceSource replays an in memory event sequence
type SliceSource struct {
	events []Event
	offset int
}

// NewSliceSource wraps events in a replayable source. The slice is not
// copied, callers must not mutate it while the source is in use
func NewSliceSource(events []Event) *SliceSource {
	return &SliceSource{events: events}
}

// Next implements Source
func (s *SliceSource) Next() (Event, bool) {
	if s.offset >= len(s.events) {
		return Event{}, false
	}
	e := s.events[s.offset]
	s.offset++
	return e, true
}

// Reset implements Source
func (s *SliceSource) Reset() error {
	s.offset = 0
	return nil
}
