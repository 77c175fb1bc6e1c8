// FILE: lixenwraith/conftree/source_toml.go
package conftree

import (
	"fmt"
	"io"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// tomlItem is a value still to be emitted, optionally preceded by its key,
// or a pending container end when end is set.
type tomlItem struct {
	key    string
	hasKey bool
	value  any
	end    EventType
}

// NewTOMLSource decodes r as a single TOML document and returns an
// EventSource over it. Tables are emitted with keys in sorted order.
func NewTOMLSource(r io.Reader) (EventSource, error) {
	var doc map[string]any
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, wrapError(KindParse, err, "error parsing TOML")
	}
	if doc == nil {
		doc = map[string]any{}
	}

	events := []Event{{Type: EventStreamStart}, {Type: EventDocumentStart}}
	stack := []tomlItem{{value: doc}}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if item.end != 0 {
			events = append(events, Event{Type: item.end})
			continue
		}
		if item.hasKey {
			events = append(events, scalarEvent(item.key, true, 0))
		}

		switch v := item.value.(type) {
		case map[string]any:
			events = append(events, Event{Type: EventMappingStart})
			stack = append(stack, tomlItem{end: EventMappingEnd})
			keys := slices.Sorted(maps.Keys(v))
			for i := len(keys) - 1; i >= 0; i-- {
				stack = append(stack, tomlItem{key: keys[i], hasKey: true, value: v[keys[i]]})
			}
		case []map[string]any:
			events = append(events, Event{Type: EventSequenceStart})
			stack = append(stack, tomlItem{end: EventSequenceEnd})
			for i := len(v) - 1; i >= 0; i-- {
				stack = append(stack, tomlItem{value: v[i]})
			}
		case []any:
			events = append(events, Event{Type: EventSequenceStart})
			stack = append(stack, tomlItem{end: EventSequenceEnd})
			for i := len(v) - 1; i >= 0; i-- {
				stack = append(stack, tomlItem{value: v[i]})
			}
		default:
			events = append(events, tomlScalar(v))
		}
	}
	events = append(events, Event{Type: EventDocumentEnd}, Event{Type: EventStreamEnd})

	return NewSliceSource(events...), nil
}

// tomlScalar renders a decoded TOML value as text that infers back to the
// same type. Strings and date-times are quoted so they stay strings.
func tomlScalar(v any) Event {
	switch x := v.(type) {
	case string:
		return scalarEvent(x, true, 0)
	case int64:
		return scalarEvent(strconv.FormatInt(x, 10), false, 0)
	case float64:
		return scalarEvent(formatTOMLFloat(x), false, 0)
	case bool:
		return scalarEvent(strconv.FormatBool(x), false, 0)
	case time.Time:
		return scalarEvent(x.Format(time.RFC3339Nano), true, 0)
	default:
		return scalarEvent(fmt.Sprint(x), true, 0)
	}
}

func formatTOMLFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
