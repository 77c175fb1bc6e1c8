// File: lixenwraith/conftree/type.go
package conftree

import "fmt"

// Type identifies a node variant. TypeDocument and TypeUsage only appear in
// schema entries and are never stored in a tree.
type Type int

const (
	TypeUnknown Type = iota
	TypeDict
	TypeArray
	TypeString
	TypeInt
	TypeBool
	TypeFloat
	TypeDocument
	TypeUsage
)

var typeNames = [...]string{
	TypeUnknown:  "unknown",
	TypeDict:     "dictionary",
	TypeArray:    "array",
	TypeString:   "string",
	TypeInt:      "integer",
	TypeBool:     "boolean",
	TypeFloat:    "floating-point number",
	TypeDocument: "document file",
	TypeUsage:    "usage",
}

// argNames holds the placeholder shown in usage output for options taking a value.
var argNames = [...]string{
	TypeString:   "<str>",
	TypeInt:      "<int>",
	TypeFloat:    "<float>",
	TypeDocument: "<file>",
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ArgString returns the usage placeholder for the type, empty for types
// that take no argument.
func (t Type) ArgString() string {
	if t >= 0 && int(t) < len(argNames) {
		return argNames[t]
	}
	return ""
}

// IsContainer reports whether nodes of this type hold children.
func (t Type) IsContainer() bool {
	return t == TypeDict || t == TypeArray
}

// IsScalar reports whether t is a leaf type storable in a tree.
func (t Type) IsScalar() bool {
	switch t {
	case TypeString, TypeInt, TypeBool, TypeFloat:
		return true
	}
	return false
}
