// FILE: lixenwraith/conftree/source_goyaml.go
package conftree

import (
	"io"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"
)

// goyamlItem is either a node still to be expanded or a pending event
// (a container end, or an empty scalar for a key without a value).
type goyamlItem struct {
	node    ast.Node
	end     EventType
	line    int
	aliased bool // reached through an alias
}

// goyamlSource produces parse events from the goccy/go-yaml AST. The whole
// input is parsed up front; the AST is walked lazily with an explicit stack.
type goyamlSource struct {
	docs    []*ast.DocumentNode
	doc     int
	stack   []goyamlItem
	anchors map[string]ast.Node
	started bool
	inDoc   bool
	done    bool
	aliased int // nodes emitted through aliases
}

// NewGoYAMLSource parses r with goccy/go-yaml and returns an EventSource
// over its documents.
func NewGoYAMLSource(r io.Reader) (EventSource, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, wrapError(KindIO, err, "failed to read YAML input")
	}
	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, wrapError(KindParse, err, "error parsing YAML")
	}
	return &goyamlSource{docs: file.Docs, anchors: make(map[string]ast.Node)}, nil
}

func (s *goyamlSource) Next() (Event, error) {
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
			if s.doc >= len(s.docs) {
				s.done = true
				return Event{Type: EventStreamEnd}, nil
			}
			body := s.docs[s.doc].Body
			s.doc++
			s.inDoc = true
			if body != nil && body.Type() != ast.NullType {
				s.stack = append(s.stack, goyamlItem{node: body})
			}
			return Event{Type: EventDocumentStart}, nil
		}

		item := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		if item.node == nil {
			return Event{Type: item.end, Line: item.line}, nil
		}

		ev, err := s.expand(item.node, item.aliased)
		if err != nil {
			return Event{}, err
		}
		if ev.Type == 0 {
			continue
		}
		if item.aliased {
			s.aliased++
			if s.aliased > MaxAliasNodes {
				return Event{}, newError(KindCapacity, "line %d: alias expansion exceeds %d nodes", ev.Line, MaxAliasNodes)
			}
		}
		return ev, nil
	}
}

// expand emits the event that opens n and schedules its children, which
// inherit aliased. Anchors are recorded and aliases resolved to the anchored
// node.
func (s *goyamlSource) expand(n ast.Node, aliased bool) (Event, error) {
	line := goyamlLine(n)
	push := func(c ast.Node) {
		s.stack = append(s.stack, goyamlItem{node: c, aliased: aliased})
	}
	switch v := n.(type) {
	case *ast.AnchorNode:
		s.anchors[v.Name.GetToken().Value] = v.Value
		push(v.Value)
		return Event{}, nil

	case *ast.AliasNode:
		name := v.Value.GetToken().Value
		target, ok := s.anchors[name]
		if !ok {
			return Event{}, newError(KindParse, "line %d: unknown alias '%s'", line, name)
		}
		s.stack = append(s.stack, goyamlItem{node: target, aliased: true})
		return Event{}, nil

	case *ast.TagNode:
		if v.Start != nil && v.Start.Value == "!!str" {
			return scalarEvent(goyamlText(v.Value), true, line), nil
		}
		push(v.Value)
		return Event{}, nil

	case *ast.MappingNode:
		s.stack = append(s.stack, goyamlItem{end: EventMappingEnd, line: line})
		for i := len(v.Values) - 1; i >= 0; i-- {
			s.pushPair(v.Values[i], aliased)
		}
		return Event{Type: EventMappingStart, Line: line}, nil

	case *ast.MappingValueNode:
		// A lone key/value pair is a one-entry mapping.
		s.stack = append(s.stack, goyamlItem{end: EventMappingEnd, line: line})
		s.pushPair(v, aliased)
		return Event{Type: EventMappingStart, Line: line}, nil

	case *ast.SequenceNode:
		s.stack = append(s.stack, goyamlItem{end: EventSequenceEnd, line: line})
		for i := len(v.Values) - 1; i >= 0; i-- {
			push(v.Values[i])
		}
		return Event{Type: EventSequenceStart, Line: line}, nil

	case *ast.LiteralNode:
		return scalarEvent(v.Value.Value, true, line), nil

	case *ast.StringNode:
		tok := v.GetToken()
		quoted := tok != nil && (tok.Type == token.DoubleQuoteType || tok.Type == token.SingleQuoteType)
		return scalarEvent(v.Value, quoted, line), nil

	case keyScalar:
		return scalarEvent(goyamlText(v), false, line), nil

	case *ast.IntegerNode, *ast.FloatNode, *ast.BoolNode, *ast.NullNode, *ast.InfinityNode, *ast.NanNode:
		return scalarEvent(goyamlText(n), false, line), nil

	default:
		return Event{}, newError(KindParse, "line %d: unsupported YAML node %s", line, n.Type())
	}
}

// pushPair schedules a key scalar followed by its value.
func (s *goyamlSource) pushPair(mv *ast.MappingValueNode, aliased bool) {
	if mv.Value == nil {
		s.stack = append(s.stack, goyamlItem{end: EventScalar, line: goyamlLine(mv), aliased: aliased})
	} else {
		s.stack = append(s.stack, goyamlItem{node: mv.Value, aliased: aliased})
	}
	s.stack = append(s.stack, goyamlItem{node: keyScalar{mv.Key}, aliased: aliased})
}

// keyScalar wraps a mapping key so it is always emitted as a plain name.
type keyScalar struct {
	ast.MapKeyNode
}

func goyamlText(n ast.Node) string {
	switch v := n.(type) {
	case keyScalar:
		return goyamlText(v.MapKeyNode)
	case *ast.StringNode:
		return v.Value
	case *ast.LiteralNode:
		return v.Value.Value
	}
	if tok := n.GetToken(); tok != nil {
		return tok.Value
	}
	return ""
}

func goyamlLine(n ast.Node) int {
	if tok := n.GetToken(); tok != nil && tok.Position != nil {
		return tok.Position.Line
	}
	return 0
}
