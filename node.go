// FILE: lixenwraith/conftree/node.go
package conftree

import "fmt"

// Node is a single value in a configuration tree. The variant is fixed at
// construction and only the payload of a matching variant can be replaced.
type Node struct {
	typ  Type
	dict *Dict
	arr  *Array
	str  string
	i    int64
	b    bool
	f    float64
}

// NewNode creates a node of typ. Containers ignore init; scalars require an
// init value of the matching Go type.
func NewNode(typ Type, init any) (*Node, error) {
	n := &Node{typ: typ}
	switch typ {
	case TypeDict:
		n.dict = newDict()
		return n, nil
	case TypeArray:
		arr, err := NewArrayStore(1)
		if err != nil {
			return nil, err
		}
		n.arr = arr
		return n, nil
	case TypeString, TypeInt, TypeBool, TypeFloat:
		if err := n.assign(init); err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, newError(KindStructural, "cannot create node of type %s", typ)
	}
}

// NewRoot returns an empty dictionary suitable as a tree root.
func NewRoot() *Node {
	return &Node{typ: TypeDict, dict: newDict()}
}

// NewString returns a string leaf.
func NewString(s string) *Node { return &Node{typ: TypeString, str: s} }

// NewInt returns an integer leaf.
func NewInt(i int64) *Node { return &Node{typ: TypeInt, i: i} }

// NewBool returns a boolean leaf.
func NewBool(b bool) *Node { return &Node{typ: TypeBool, b: b} }

// NewFloat returns a floating-point leaf.
func NewFloat(f float64) *Node { return &Node{typ: TypeFloat, f: f} }

// assign replaces the scalar payload. v must match the node's variant.
func (n *Node) assign(v any) error {
	switch n.typ {
	case TypeString:
		s, ok := v.(string)
		if !ok {
			return mismatch(n.typ, v)
		}
		n.str = s
	case TypeInt:
		switch iv := v.(type) {
		case int64:
			n.i = iv
		case int:
			n.i = int64(iv)
		case int32:
			n.i = int64(iv)
		default:
			return mismatch(n.typ, v)
		}
	case TypeBool:
		b, ok := v.(bool)
		if !ok {
			return mismatch(n.typ, v)
		}
		n.b = b
	case TypeFloat:
		switch fv := v.(type) {
		case float64:
			n.f = fv
		case float32:
			n.f = float64(fv)
		default:
			return mismatch(n.typ, v)
		}
	default:
		return newError(KindType, "cannot assign a value to a %s node", n.typ)
	}
	return nil
}

func mismatch(typ Type, v any) error {
	return newError(KindType, "value of Go type %T cannot be stored in a %s node", v, typ)
}

// Type returns the node's variant. A nil node reports TypeUnknown.
func (n *Node) Type() Type {
	if n == nil {
		return TypeUnknown
	}
	return n.typ
}

// Dict returns the child index of a dictionary node, nil otherwise.
func (n *Node) Dict() *Dict {
	if n == nil {
		return nil
	}
	return n.dict
}

// Array returns the child store of an array node, nil otherwise.
func (n *Node) Array() *Array {
	if n == nil {
		return nil
	}
	return n.arr
}

func (n *Node) AsString() (string, bool) {
	if n == nil || n.typ != TypeString {
		return "", false
	}
	return n.str, true
}

func (n *Node) AsInt() (int64, bool) {
	if n == nil || n.typ != TypeInt {
		return 0, false
	}
	return n.i, true
}

func (n *Node) AsBool() (bool, bool) {
	if n == nil || n.typ != TypeBool {
		return false, false
	}
	return n.b, true
}

func (n *Node) AsFloat() (float64, bool) {
	if n == nil || n.typ != TypeFloat {
		return 0, false
	}
	return n.f, true
}

// Value returns the scalar payload as an any, or nil for containers.
func (n *Node) Value() any {
	if n == nil {
		return nil
	}
	switch n.typ {
	case TypeString:
		return n.str
	case TypeInt:
		return n.i
	case TypeBool:
		return n.b
	case TypeFloat:
		return n.f
	}
	return nil
}

// String renders scalars in their natural text form and containers by type and size.
func (n *Node) String() string {
	switch n.Type() {
	case TypeDict:
		return fmt.Sprintf("dictionary(%d)", n.dict.Len())
	case TypeArray:
		return fmt.Sprintf("array(%d)", n.arr.Len())
	case TypeUnknown:
		return "<nil>"
	}
	return fmt.Sprint(n.Value())
}

// Destroy recursively releases all children and clears the node. Calling it
// on a nil node is a no-op.
func (n *Node) Destroy() {
	if n == nil {
		return
	}
	switch n.typ {
	case TypeDict:
		if n.dict != nil {
			n.dict.destroy()
		}
	case TypeArray:
		if n.arr != nil {
			n.arr.destroy()
		}
	}
	n.typ, n.dict, n.arr, n.str = TypeUnknown, nil, nil, ""
}
