// FILE: lixenwraith/conftree/ingest.go
package conftree

import (
	"errors"
	"io"
)

type ingestState int

const (
	stateStart ingestState = iota
	stateStream
	stateDocument
	stateBlock
	stateBlockContent
	stateSequence
	stateStop
)

var stateNames = [...]string{
	stateStart:        "start",
	stateStream:       "stream",
	stateDocument:     "document",
	stateBlock:        "block",
	stateBlockContent: "block_content",
	stateSequence:     "sequence",
	stateStop:         "stop",
}

func (s ingestState) String() string { return stateNames[s] }

// frame is a container currently being populated. next is the insertion
// index used when the container is an array.
type frame struct {
	node *Node
	next uint32
}

// ingester drives tree construction from parse events. The parent stack
// replaces recursion so nesting is bounded by MaxDepth rather than the call stack.
type ingester struct {
	root   *Node
	state  ingestState
	stack  []frame
	key    string
	hasKey bool
	line   int
}

// Ingest consumes src until the end of the stream and merges every document
// into root. Later documents overwrite values set by earlier ones. On error
// the nodes already inserted stay in place.
func Ingest(root *Node, src EventSource) error {
	if root == nil {
		return newError(KindStructural, "no root was specified")
	}
	if src == nil {
		return newError(KindStructural, "no event source was specified")
	}
	if root.Type() != TypeDict {
		return newError(KindType, "document root must be a dictionary, got %s", root.Type())
	}

	in := &ingester{root: root, state: stateStart}
	defer in.release()

	for in.state != stateStop {
		ev, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return newError(KindParse, "unexpected end of events in %s state", in.state)
			}
			if KindOf(err) != 0 {
				return err
			}
			return wrapError(KindParse, err, "error reading document")
		}
		in.line = ev.Line
		if err := in.consume(ev); err != nil {
			return err
		}
	}
	return nil
}

func (in *ingester) release() {
	clear(in.stack)
	in.stack = nil
	in.key, in.hasKey = "", false
}

func (in *ingester) fail(format string, args ...any) error {
	if in.line > 0 {
		format = "line %d: " + format
		args = append([]any{in.line}, args...)
	}
	return newError(KindParse, format, args...)
}

func (in *ingester) unexpected(ev Event) error {
	return in.fail("unexpected %s event in %s state", ev.Type, in.state)
}

func (in *ingester) consume(ev Event) error {
	switch in.state {
	case stateStart:
		if ev.Type != EventStreamStart {
			return in.unexpected(ev)
		}
		in.state = stateStream

	case stateStream:
		switch ev.Type {
		case EventDocumentStart:
			in.state = stateDocument
		case EventStreamEnd:
			in.state = stateStop
		default:
			return in.unexpected(ev)
		}

	case stateDocument:
		switch ev.Type {
		case EventMappingStart:
			if err := in.push(in.root); err != nil {
				return err
			}
			in.state = stateBlock
		case EventDocumentEnd:
			in.state = stateStream
		default:
			return in.unexpected(ev)
		}

	case stateBlock:
		switch ev.Type {
		case EventScalar:
			if in.hasKey {
				err := in.fail("key is already set to '%s'", in.key)
				in.key, in.hasKey = "", false
				return err
			}
			in.key, in.hasKey = ev.Value, true
			in.state = stateBlockContent
		case EventMappingEnd, EventSequenceEnd:
			if err := in.pop(); err != nil {
				return err
			}
			in.resume()
		case EventMappingStart:
			if err := in.addParent(TypeDict); err != nil {
				return err
			}
		case EventDocumentEnd:
			in.state = stateStream
		default:
			return in.unexpected(ev)
		}

	case stateBlockContent:
		switch ev.Type {
		case EventScalar:
			if err := in.addLeaf(TypeDict, ev); err != nil {
				return err
			}
			in.state = stateBlock
		case EventMappingStart:
			if err := in.addParent(TypeDict); err != nil {
				return err
			}
			in.state = stateBlock
		case EventSequenceStart:
			if err := in.addParent(TypeArray); err != nil {
				return err
			}
			in.state = stateSequence
		default:
			return in.unexpected(ev)
		}

	case stateSequence:
		switch ev.Type {
		case EventScalar:
			if err := in.addLeaf(TypeArray, ev); err != nil {
				return err
			}
		case EventMappingStart:
			if err := in.addParent(TypeDict); err != nil {
				return err
			}
			in.state = stateBlock
		case EventSequenceStart:
			if err := in.addParent(TypeArray); err != nil {
				return err
			}
		case EventSequenceEnd:
			if err := in.pop(); err != nil {
				return err
			}
			in.resume()
		default:
			return in.unexpected(ev)
		}

	default:
		return in.unexpected(ev)
	}
	return nil
}

// resume picks the state for the container now on top of the stack after a pop.
func (in *ingester) resume() {
	if top := in.top(); top != nil && top.node.Type() == TypeArray {
		in.state = stateSequence
		return
	}
	in.state = stateBlock
}

func (in *ingester) top() *frame {
	if len(in.stack) == 0 {
		return nil
	}
	return &in.stack[len(in.stack)-1]
}

func (in *ingester) push(n *Node) error {
	if len(in.stack) >= MaxDepth-1 {
		return newError(KindCapacity, "maximum depth reached when reading document")
	}
	in.stack = append(in.stack, frame{node: n})
	return nil
}

func (in *ingester) pop() error {
	if len(in.stack) == 0 {
		return in.fail("parent stack is empty")
	}
	in.stack[len(in.stack)-1] = frame{}
	in.stack = in.stack[:len(in.stack)-1]
	return nil
}

// slot returns the location in the top frame the next child goes to and
// advances the frame past it.
func (in *ingester) slot(want Type) (*Node, segment, error) {
	top := in.top()
	if top == nil {
		return nil, segment{}, in.fail("parent stack is empty")
	}
	parent := top.node
	if want != TypeUnknown && parent.Type() != want {
		return nil, segment{}, in.fail("expected %s parent but got %s", want, parent.Type())
	}

	switch parent.Type() {
	case TypeArray:
		seg := segment{index: top.next, isIndex: true}
		top.next++
		return parent, seg, nil
	case TypeDict:
		if !in.hasKey {
			return nil, segment{}, in.fail("parent is dictionary, but key is not set")
		}
		seg := segment{name: in.key}
		in.key, in.hasKey = "", false
		return parent, seg, nil
	default:
		return nil, segment{}, in.fail("parent node must be dictionary or array")
	}
}

func (in *ingester) addParent(typ Type) error {
	parent, seg, err := in.slot(TypeUnknown)
	if err != nil {
		return err
	}
	child, err := createOrReplace(parent, seg, typ, nil)
	if err != nil {
		return in.at(err)
	}
	return in.push(child)
}

func (in *ingester) addLeaf(parentType Type, ev Event) error {
	typ, value, err := InferScalar(ev.Value, ev.Quoted)
	if err != nil {
		return in.at(err)
	}
	parent, seg, err := in.slot(parentType)
	if err != nil {
		return err
	}
	if _, err = createOrReplace(parent, seg, typ, value); err != nil {
		return in.at(err)
	}
	return nil
}

// at prefixes err with the current source line, keeping its kind.
func (in *ingester) at(err error) error {
	if in.line == 0 {
		return err
	}
	return wrapError(KindOf(err), err, "line %d", in.line)
}
