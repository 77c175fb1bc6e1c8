// FILE: lixenwraith/conftree/source_yaml.go
package conftree

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlCursor tracks the walk position inside one yaml.Node.
type yamlCursor struct {
	node    *yaml.Node
	pos     int
	opened  bool
	aliased bool // reached through an alias
}

// yamlSource turns a multi-document YAML stream into parse events. Each
// document is decoded into a yaml.Node tree and flattened with an explicit
// cursor stack, one event per Next call.
type yamlSource struct {
	dec     *yaml.Decoder
	stack   []yamlCursor
	started bool
	inDoc   bool
	done    bool
	aliased int // nodes emitted through aliases
}

// NewYAMLSource returns an EventSource over the YAML documents in r.
func NewYAMLSource(r io.Reader) EventSource {
	return &yamlSource{dec: yaml.NewDecoder(r)}
}

func (s *yamlSource) Next() (Event, error) {
	if !s.started {
		s.started = true
		return Event{Type: EventStreamStart}, nil
	}
	if s.done {
		return Event{}, io.EOF
	}

	for {
		if len(s.stack) == 0 {
			if s.inDoc {
				s.inDoc = false
				return Event{Type: EventDocumentEnd}, nil
			}
			var doc yaml.Node
			if err := s.dec.Decode(&doc); err != nil {
				if errors.Is(err, io.EOF) {
					s.done = true
					return Event{Type: EventStreamEnd}, nil
				}
				return Event{}, wrapError(KindParse, err, "error parsing YAML")
			}
			s.inDoc = true
			s.stack = append(s.stack, yamlCursor{node: &doc})
			return Event{Type: EventDocumentStart, Line: doc.Line}, nil
		}

		top := &s.stack[len(s.stack)-1]
		n := top.node
		for n.Kind == yaml.AliasNode && n.Alias != nil {
			n = n.Alias
			top.node = n
			top.aliased = true
		}

		switch n.Kind {
		case yaml.DocumentNode:
			if top.pos < len(n.Content) {
				c := n.Content[top.pos]
				top.pos++
				// An empty document decodes to a single null scalar.
				if c.Kind == yaml.ScalarNode && c.Tag == "!!null" && c.Value == "" {
					continue
				}
				s.stack = append(s.stack, yamlCursor{node: c})
				continue
			}
			s.stack = s.stack[:len(s.stack)-1]

		case yaml.MappingNode, yaml.SequenceNode:
			start, end := EventMappingStart, EventMappingEnd
			if n.Kind == yaml.SequenceNode {
				start, end = EventSequenceStart, EventSequenceEnd
			}
			if !top.opened {
				top.opened = true
				if err := s.countAlias(top.aliased, n.Line); err != nil {
					return Event{}, err
				}
				return Event{Type: start, Line: n.Line}, nil
			}
			if top.pos < len(n.Content) {
				c := n.Content[top.pos]
				top.pos++
				s.stack = append(s.stack, yamlCursor{node: c, aliased: top.aliased})
				continue
			}
			s.stack = s.stack[:len(s.stack)-1]
			return Event{Type: end, Line: n.Line}, nil

		case yaml.ScalarNode:
			s.stack = s.stack[:len(s.stack)-1]
			if err := s.countAlias(top.aliased, n.Line); err != nil {
				return Event{}, err
			}
			return scalarEvent(n.Value, yamlQuoted(n), n.Line), nil

		default:
			return Event{}, newError(KindParse, "line %d: unsupported YAML node kind %d", n.Line, n.Kind)
		}
	}
}

// countAlias charges one node against the alias expansion budget.
func (s *yamlSource) countAlias(aliased bool, line int) error {
	if !aliased {
		return nil
	}
	s.aliased++
	if s.aliased > MaxAliasNodes {
		return newError(KindCapacity, "line %d: alias expansion exceeds %d nodes", line, MaxAliasNodes)
	}
	return nil
}

// yamlQuoted reports whether the scalar was explicitly written as a string:
// quoted, block literal or folded, or tagged !!str.
func yamlQuoted(n *yaml.Node) bool {
	const textStyles = yaml.DoubleQuotedStyle | yaml.SingleQuotedStyle | yaml.LiteralStyle | yaml.FoldedStyle
	if n.Style&textStyles != 0 {
		return true
	}
	return n.Tag == "!!str" && n.Style&yaml.TaggedStyle != 0
}
