// FILE: lixenwraith/conftree/dict.go
package conftree

import (
	"iter"
	"maps"
	"slices"
)

// Dict is the name-keyed child index of a dictionary node.
type Dict struct {
	entries map[string]*Node
}

func newDict() *Dict {
	return &Dict{entries: make(map[string]*Node)}
}

// Insert adds n under name. An existing entry with the same name is a conflict.
func (d *Dict) Insert(name string, n *Node) error {
	if name == "" {
		return newError(KindStructural, "dictionary key must not be empty")
	}
	if n == nil {
		return newError(KindStructural, "node to insert must be defined")
	}
	if _, exists := d.entries[name]; exists {
		return newError(KindConflict, "key '%s' already exists in dictionary", name)
	}
	d.entries[name] = n
	return nil
}

// Search returns the child stored under name.
func (d *Dict) Search(name string) (*Node, bool) {
	n, ok := d.entries[name]
	return n, ok
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	return len(d.entries)
}

// Keys returns the entry names in sorted order.
func (d *Dict) Keys() []string {
	return slices.Sorted(maps.Keys(d.entries))
}

// All yields every entry. The order is sorted by name but callers should not
// depend on it.
func (d *Dict) All() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		for _, k := range d.Keys() {
			if !yield(k, d.entries[k]) {
				return
			}
		}
	}
}

// ForEach calls fn for every entry and stops at the first error, returning it.
func (d *Dict) ForEach(fn func(name string, n *Node) error) error {
	for k, n := range d.All() {
		if err := fn(k, n); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dict) destroy() {
	for k, n := range d.entries {
		n.Destroy()
		delete(d.entries, k)
	}
}
