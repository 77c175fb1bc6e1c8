// FILE: lixenwraith/conftree/walk.go
package conftree

import "errors"

// SkipChildren may be returned by a WalkFunc to skip the children of the
// container it was called for.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every node below the walk root with the node's path.
type WalkFunc func(path string, n *Node) error

type walkItem struct {
	path string
	node *Node
}

// Walk visits every node below root depth first, dictionaries in sorted key
// order and arrays in index order. The first error returned by fn other than
// SkipChildren stops the walk and is returned.
func Walk(root *Node, fn WalkFunc) error {
	if root == nil {
		return newError(KindStructural, "no root was specified")
	}
	stack := childItems(nil, "", root)
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := fn(item.path, item.node); err != nil {
			if errors.Is(err, SkipChildren) {
				continue
			}
			return err
		}
		stack = childItems(stack, item.path, item.node)
	}
	return nil
}

// childItems appends n's children to stack in reverse so they pop in order.
func childItems(stack []walkItem, prefix string, n *Node) []walkItem {
	join := func(seg string) string {
		if prefix == "" {
			return seg
		}
		return prefix + pathDelimiter + seg
	}

	var items []walkItem
	switch n.Type() {
	case TypeDict:
		for k, c := range n.dict.All() {
			items = append(items, walkItem{path: join(k), node: c})
		}
	case TypeArray:
		for i, c := range n.arr.All() {
			items = append(items, walkItem{path: join(segment{index: i, isIndex: true}.String()), node: c})
		}
	}
	for i := len(items) - 1; i >= 0; i-- {
		stack = append(stack, items[i])
	}
	return stack
}

// Merge copies every leaf of src into dst. With overwrite false, leaves and
// containers already present in dst are kept and conflicting types are
// ignored; with overwrite true the src value replaces same-typed leaves and
// a type conflict is an error. Keys are copied verbatim, so a key containing
// the path delimiter lands under the same name it had in src.
func Merge(dst, src *Node, overwrite bool) error {
	if dst == nil || src == nil {
		return newError(KindStructural, "merge requires both trees")
	}
	if dst.Type() != src.Type() {
		if overwrite {
			return newError(KindType, "cannot merge %s into %s", src.Type(), dst.Type())
		}
		return nil
	}
	return mergeChildren(dst, src, "", overwrite)
}

// mergeChildren merges the children of src into dst, which has the same
// container type. prefix is only used in error messages.
func mergeChildren(dst, src *Node, prefix string, overwrite bool) error {
	merge := func(seg segment, n *Node) error {
		path := seg.String()
		if prefix != "" {
			path = prefix + pathDelimiter + path
		}

		existing, found, err := child(dst, seg)
		if err != nil {
			return err
		}

		if !n.Type().IsContainer() {
			if found && !overwrite {
				return nil
			}
			if _, err := createOrReplace(dst, seg, n.Type(), n.Value()); err != nil {
				return wrapError(KindOf(err), err, "failed to merge '%s'", path)
			}
			return nil
		}

		if !found {
			if existing, err = createOrReplace(dst, seg, n.Type(), nil); err != nil {
				return wrapError(KindOf(err), err, "failed to merge '%s'", path)
			}
		} else if existing.Type() != n.Type() {
			if overwrite {
				return newError(KindType, "node '%s' already exists, but types do not match ('%s' != '%s')",
					path, existing.Type(), n.Type())
			}
			return nil
		}
		return mergeChildren(existing, n, path, overwrite)
	}

	switch src.Type() {
	case TypeDict:
		for k, c := range src.dict.All() {
			if err := merge(segment{name: k}, c); err != nil {
				return err
			}
		}
	case TypeArray:
		for i, c := range src.arr.All() {
			if err := merge(segment{index: i, isIndex: true}, c); err != nil {
				return err
			}
		}
	}
	return nil
}
