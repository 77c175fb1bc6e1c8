// FILE: lixenwraith/conftree/convenience.go
package conftree

import (
	"fmt"
	"strings"
)

// Clone creates a deep copy of the tree below root
func Clone(root *Node) (*Node, error) {
	if root == nil {
		return nil, newError(KindStructural, "no root was specified")
	}
	if root.Type() != TypeDict {
		return nil, newError(KindType, "clone root must be a dictionary, got %s", root.Type())
	}

	clone := NewRoot()
	if err := Merge(clone, root, true); err != nil {
		clone.Destroy()
		return nil, err
	}
	return clone, nil
}

// Debug returns a formatted listing of every node below root with its type
func Debug(root *Node) string {
	var b strings.Builder
	b.WriteString("Configuration Debug Info:\n")

	err := Walk(root, func(path string, n *Node) error {
		indent := strings.Repeat("  ", strings.Count(path, pathDelimiter)+1)
		if n.Type().IsContainer() {
			b.WriteString(fmt.Sprintf("%s%s: (%s)\n", indent, path, n.Type()))
			return nil
		}
		b.WriteString(fmt.Sprintf("%s%s: %s = %s\n", indent, path, n.Type(), n))
		return nil
	})
	if err != nil {
		b.WriteString(fmt.Sprintf("  error: %v\n", err))
	}

	return b.String()
}
