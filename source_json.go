// FILE: lixenwraith/conftree/source_json.go
package conftree

import (
	"errors"
	"io"
	"strconv"

	"github.com/goccy/go-json"
)

// jsonSource converts a stream of JSON values into parse events. Every
// top-level value is a separate document.
type jsonSource struct {
	dec     *json.Decoder
	pending []Event
	depth   int
	started bool
	done    bool
}

// NewJSONSource returns an EventSource over the JSON values in r.
func NewJSONSource(r io.Reader) EventSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec}
}

func (s *jsonSource) Next() (Event, error) {
	if !s.started {
		s.started = true
		return Event{Type: EventStreamStart}, nil
	}
	if len(s.pending) > 0 {
		ev := s.pending[0]
		s.pending = s.pending[1:]
		return ev, nil
	}
	if s.done {
		return Event{}, io.EOF
	}

	tok, err := s.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			if s.depth > 0 {
				return Event{}, newError(KindParse, "unexpected end of JSON input")
			}
			s.done = true
			return Event{Type: EventStreamEnd}, nil
		}
		return Event{}, wrapError(KindParse, err, "error parsing JSON")
	}

	ev, err := s.event(tok)
	if err != nil {
		return Event{}, err
	}

	topLevel := s.depth == 0
	switch ev.Type {
	case EventMappingStart, EventSequenceStart:
		s.depth++
	case EventMappingEnd, EventSequenceEnd:
		s.depth--
	}

	if topLevel {
		// Scalars and container openers at depth zero begin a new document.
		s.pending = append(s.pending, ev)
		if ev.Type == EventScalar {
			s.pending = append(s.pending, Event{Type: EventDocumentEnd})
		}
		return Event{Type: EventDocumentStart}, nil
	}
	if s.depth == 0 {
		s.pending = append(s.pending, Event{Type: EventDocumentEnd})
	}
	return ev, nil
}

func (s *jsonSource) event(tok any) (Event, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return Event{Type: EventMappingStart}, nil
		case '}':
			return Event{Type: EventMappingEnd}, nil
		case '[':
			return Event{Type: EventSequenceStart}, nil
		case ']':
			return Event{Type: EventSequenceEnd}, nil
		}
		return Event{}, newError(KindParse, "unexpected JSON delimiter '%s'", v)
	case string:
		return scalarEvent(v, true, 0), nil
	case json.Number:
		return scalarEvent(v.String(), false, 0), nil
	case float64:
		return scalarEvent(strconv.FormatFloat(v, 'g', -1, 64), false, 0), nil
	case bool:
		return scalarEvent(strconv.FormatBool(v), false, 0), nil
	case nil:
		return scalarEvent("", false, 0), nil
	default:
		return Event{}, newError(KindParse, "unsupported JSON token %T", tok)
	}
}
