// FILE: lixenwraith/conftree/event.go
package conftree

import (
	"fmt"
	"io"
)

// EventType enumerates the parse events consumed by Ingest.
type EventType int

const (
	EventStreamStart EventType = iota + 1
	EventStreamEnd
	EventDocumentStart
	EventDocumentEnd
	EventMappingStart
	EventMappingEnd
	EventSequenceStart
	EventSequenceEnd
	EventScalar
)

var eventNames = map[EventType]string{
	EventStreamStart:   "stream_start",
	EventStreamEnd:     "stream_end",
	EventDocumentStart: "document_start",
	EventDocumentEnd:   "document_end",
	EventMappingStart:  "mapping_start",
	EventMappingEnd:    "mapping_end",
	EventSequenceStart: "sequence_start",
	EventSequenceEnd:   "sequence_end",
	EventScalar:        "scalar",
}

func (e EventType) String() string {
	if s, ok := eventNames[e]; ok {
		return s
	}
	return fmt.Sprintf("EventType(%d)", int(e))
}

// Event is one parse event. Value and Quoted are only meaningful for scalars.
// Quoted marks text the document explicitly typed as a string.
type Event struct {
	Type   EventType
	Value  string
	Quoted bool
	Line   int // 1-based source line, 0 when unknown
}

// EventSource produces parse events one at a time. Next returns io.EOF once
// the stream end event has been delivered.
type EventSource interface {
	Next() (Event, error)
}

// SliceSource replays a fixed list of events.
type SliceSource struct {
	events []Event
	pos    int
}

// NewSliceSource returns a source replaying events in order.
func NewSliceSource(events ...Event) *SliceSource {
	return &SliceSource{events: events}
}

func (s *SliceSource) Next() (Event, error) {
	if s.pos >= len(s.events) {
		return Event{}, io.EOF
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, nil
}

func scalarEvent(value string, quoted bool, line int) Event {
	return Event{Type: EventScalar, Value: value, Quoted: quoted, Line: line}
}
