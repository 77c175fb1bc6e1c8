// FILE: lixenwraith/conftree/path.go
package conftree

import (
	"errors"
	"strconv"
	"strings"
)

const pathDelimiter = "."

// segment is one parsed path component: a dictionary key or an array index.
type segment struct {
	name    string
	index   uint32
	isIndex bool
}

func (s segment) String() string {
	if s.isIndex {
		return "[" + strconv.FormatUint(uint64(s.index), 10) + "]"
	}
	return s.name
}

// parseIndex parses an array index literal of the form "[digits]".
func parseIndex(lit string) (uint32, error) {
	if len(lit) < 3 || lit[0] != '[' || lit[len(lit)-1] != ']' {
		return 0, newError(KindParse, "malformed array index '%s'", lit)
	}
	digits := lit[1 : len(lit)-1]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, newError(KindParse, "malformed array index '%s'", lit)
		}
	}
	v, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, wrapError(KindNumeric, err, "array index overflow in '%s'", lit)
		}
		return 0, wrapError(KindParse, err, "malformed array index '%s'", lit)
	}
	return uint32(v), nil
}

func parseSegment(s string) (segment, error) {
	if s == "" {
		return segment{}, newError(KindParse, "empty path segment")
	}
	if s[0] == '[' {
		idx, err := parseIndex(s)
		if err != nil {
			return segment{}, err
		}
		return segment{index: idx, isIndex: true}, nil
	}
	return segment{name: s}, nil
}

// parsePath splits path into segments and enforces the depth cap.
func parsePath(path string) ([]segment, error) {
	if path == "" {
		return nil, newError(KindParse, "no path was provided")
	}
	parts := strings.Split(path, pathDelimiter)
	if len(parts) >= MaxDepth {
		return nil, newError(KindCapacity, "maximum depth reached when adding '%s'", path)
	}
	segs := make([]segment, 0, len(parts))
	for _, p := range parts {
		seg, err := parseSegment(p)
		if err != nil {
			return nil, wrapError(KindOf(err), err, "invalid path '%s'", path)
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

// child looks seg up in parent. A segment of the wrong kind for the
// container, or any lookup under a scalar, is a type error.
func child(parent *Node, seg segment) (*Node, bool, error) {
	switch parent.Type() {
	case TypeDict:
		if seg.isIndex {
			return nil, false, newError(KindType, "cannot index dictionary with '%s'", seg)
		}
		n, ok := parent.dict.Search(seg.name)
		return n, ok, nil
	case TypeArray:
		if !seg.isIndex {
			return nil, false, newError(KindType, "cannot look up key '%s' in array", seg.name)
		}
		n, ok := parent.arr.Search(seg.index)
		return n, ok, nil
	default:
		return nil, false, newError(KindType, "cannot look up '%s' in %s node", seg, parent.Type())
	}
}

// Get resolves path starting at n. A path that walks off the tree through
// missing containers is not found; walking through a node of the wrong kind
// is an error.
func (n *Node) Get(path string) (*Node, bool, error) {
	if n == nil {
		return nil, false, newError(KindStructural, "no root was specified")
	}
	segs, err := parsePath(path)
	if err != nil {
		return nil, false, err
	}
	cur := n
	for _, seg := range segs {
		next, ok, err := child(cur, seg)
		if err != nil {
			return nil, false, wrapError(KindType, err, "failed to resolve '%s'", path)
		}
		if !ok {
			return nil, false, nil
		}
		cur = next
	}
	return cur, true, nil
}

// Has reports whether path resolves to a node. Resolution errors count as absent.
func (n *Node) Has(path string) bool {
	_, found, err := n.Get(path)
	return found && err == nil
}

func (n *Node) getTyped(path string, want Type) (*Node, bool, error) {
	node, found, err := n.Get(path)
	if err != nil || !found {
		return nil, found, err
	}
	if node.Type() != want {
		return nil, false, newError(KindType, "config node '%s' is %s not %s", path, node.Type(), want)
	}
	return node, true, nil
}

// GetString returns the string at path. Other leaf types are a type error.
func (n *Node) GetString(path string) (string, bool, error) {
	node, found, err := n.getTyped(path, TypeString)
	if !found {
		return "", false, err
	}
	return node.str, true, nil
}

// GetInt returns the integer at path.
func (n *Node) GetInt(path string) (int64, bool, error) {
	node, found, err := n.getTyped(path, TypeInt)
	if !found {
		return 0, false, err
	}
	return node.i, true, nil
}

// GetBool returns the boolean at path.
func (n *Node) GetBool(path string) (bool, bool, error) {
	node, found, err := n.getTyped(path, TypeBool)
	if !found {
		return false, false, err
	}
	return node.b, true, nil
}

// GetFloat returns the floating-point number at path.
func (n *Node) GetFloat(path string) (float64, bool, error) {
	node, found, err := n.getTyped(path, TypeFloat)
	if !found {
		return 0, false, err
	}
	return node.f, true, nil
}

// Set stores value at path, creating missing dictionaries and arrays on the
// way. The container created for a segment is an array when the following
// segment is an index and a dictionary otherwise.
func (n *Node) Set(path string, typ Type, value any) error {
	if n == nil {
		return newError(KindStructural, "no root was specified")
	}
	segs, err := parsePath(path)
	if err != nil {
		return err
	}

	parent := n
	last := len(segs) - 1
	for i, seg := range segs[:last] {
		containerType := TypeDict
		if segs[i+1].isIndex {
			containerType = TypeArray
		}
		if parent, err = createOrReplace(parent, seg, containerType, nil); err != nil {
			return err
		}
	}

	_, err = createOrReplace(parent, segs[last], typ, value)
	return err
}

func (n *Node) SetString(path, s string) error { return n.Set(path, TypeString, s) }

func (n *Node) SetInt(path string, i int64) error { return n.Set(path, TypeInt, i) }

func (n *Node) SetBool(path string, b bool) error { return n.Set(path, TypeBool, b) }

func (n *Node) SetFloat(path string, f float64) error { return n.Set(path, TypeFloat, f) }

// CreateOrReplace stores a node of typ under parent. For an array parent the
// slot is index, unless key is an index literal such as "[3]"; for a
// dictionary parent key is the entry name. An existing node of the same type
// has its payload replaced (containers are returned unchanged) and a node of
// another type is an error.
func CreateOrReplace(parent *Node, key string, index uint32, typ Type, value any) (*Node, error) {
	if parent == nil {
		return nil, newError(KindStructural, "parent node must be defined")
	}
	var seg segment
	switch {
	case parent.Type() == TypeArray && key == "":
		seg = segment{index: index, isIndex: true}
	case key == "":
		return nil, newError(KindStructural, "a key is required to insert into %s", parent.Type())
	default:
		var err error
		if seg, err = parseSegment(key); err != nil {
			return nil, err
		}
		if parent.Type() == TypeArray && !seg.isIndex {
			seg = segment{index: index, isIndex: true}
		}
	}
	return createOrReplace(parent, seg, typ, value)
}

func createOrReplace(parent *Node, seg segment, typ Type, value any) (*Node, error) {
	existing, found, err := child(parent, seg)
	if err != nil {
		return nil, err
	}

	if found {
		if existing.Type() != typ {
			return nil, newError(KindType, "node '%s' already exists, but types do not match ('%s' != '%s')",
				seg, existing.Type(), typ)
		}
		if typ.IsContainer() {
			return existing, nil
		}
		if err := existing.assign(value); err != nil {
			return nil, err
		}
		return existing, nil
	}

	node, err := NewNode(typ, value)
	if err != nil {
		return nil, err
	}
	if parent.Type() == TypeArray {
		err = parent.arr.Insert(seg.index, node)
	} else {
		err = parent.dict.Insert(seg.name, node)
	}
	if err != nil {
		return nil, err
	}
	return node, nil
}
