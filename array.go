// FILE: lixenwraith/conftree/array.go
package conftree

import "iter"

// Array is a growable, sparse, index-addressed store of child nodes.
// Unoccupied slots are holes and are skipped by iteration.
type Array struct {
	entries []*Node
}

// NewArrayStore creates a store with size slots, all holes.
func NewArrayStore(size int) (*Array, error) {
	if size <= 0 {
		return nil, newError(KindCapacity, "array size must be >0")
	}
	if size > MaxArraySize {
		return nil, newError(KindCapacity, "array size must be <=%d", MaxArraySize)
	}
	return &Array{entries: make([]*Node, size)}, nil
}

// grow extends the store to at least needed slots. It never shrinks.
func (a *Array) grow(needed int) error {
	if len(a.entries) >= needed {
		return nil
	}
	if needed > MaxArraySize {
		return newError(KindCapacity, "array is full (max size %d reached)", MaxArraySize)
	}
	a.entries = append(a.entries, make([]*Node, needed-len(a.entries))...)
	return nil
}

// Insert places n at index, growing the store as needed.
func (a *Array) Insert(index uint32, n *Node) error {
	if n == nil {
		return newError(KindStructural, "node to insert must be defined")
	}
	if err := a.grow(int(index) + 1); err != nil {
		return err
	}
	if a.entries[index] != nil {
		return newError(KindConflict, "there is already a node in array at index '%d'", index)
	}
	a.entries[index] = n
	return nil
}

// Search returns the node at index. Indices past the end are not found.
func (a *Array) Search(index uint32) (*Node, bool) {
	if int(index) >= len(a.entries) {
		return nil, false
	}
	n := a.entries[index]
	return n, n != nil
}

// Next returns the first occupied slot at or after cursor. ok is false at
// the end of the array.
func (a *Array) Next(cursor uint32) (index uint32, n *Node, ok bool) {
	for i := int(cursor); i < len(a.entries); i++ {
		if a.entries[i] != nil {
			return uint32(i), a.entries[i], true
		}
	}
	return 0, nil, false
}

// Size returns the slot count, holes included.
func (a *Array) Size() int {
	return len(a.entries)
}

// Len returns the number of occupied slots.
func (a *Array) Len() int {
	count := 0
	for _, n := range a.entries {
		if n != nil {
			count++
		}
	}
	return count
}

// All yields occupied slots in index order.
func (a *Array) All() iter.Seq2[uint32, *Node] {
	return func(yield func(uint32, *Node) bool) {
		for i, n, ok := a.Next(0); ok; i, n, ok = a.Next(i + 1) {
			if !yield(i, n) {
				return
			}
		}
	}
}

// ForEach calls fn for every occupied slot and stops at the first error.
func (a *Array) ForEach(fn func(index uint32, n *Node) error) error {
	for i, n := range a.All() {
		if err := fn(i, n); err != nil {
			return err
		}
	}
	return nil
}

func (a *Array) destroy() {
	for i, n := range a.entries {
		n.Destroy()
		a.entries[i] = nil
	}
	a.entries = nil
}
