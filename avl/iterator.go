// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Iterator - a position in a tree: a member, End or REnd
//
// iterators are values and can be compared with ==.  Removing the
// member an iterator points at invalidates that iterator only.
type Iterator[K any, T any] struct {
	tree *Tree[K, T]
	link *Link[T]
}

// Begin - the lowest member, End if the tree is empty
func (tree *Tree[K, T]) Begin() Iterator[K, T] {
	return Iterator[K, T]{tree: tree, link: tree.firstOrEnd()}
}

// End - the position after the highest member
func (tree *Tree[K, T]) End() Iterator[K, T] {
	return Iterator[K, T]{tree: tree, link: &tree.back}
}

// RBegin - the highest member, REnd if the tree is empty
func (tree *Tree[K, T]) RBegin() Iterator[K, T] {
	return Iterator[K, T]{tree: tree, link: tree.lastOrREnd()}
}

// REnd - the position before the lowest member
func (tree *Tree[K, T]) REnd() Iterator[K, T] {
	return Iterator[K, T]{tree: tree, link: &tree.front}
}

// Ascend - call f for each owner in ascending key order until f
// returns false
func (tree *Tree[K, T]) Ascend(f func(owner *T) bool) {
	for p := tree.root.first(); nil != p; {
		next := tree.successor(p)
		if !f(p.owner) {
			return
		}
		if next.isSentinel() {
			return
		}
		p = next
	}
}

// Descend - call f for each owner in descending key order until f
// returns false
func (tree *Tree[K, T]) Descend(f func(owner *T) bool) {
	for p := tree.root.last(); nil != p; {
		prev := tree.predecessor(p)
		if !f(p.owner) {
			return
		}
		if prev.isSentinel() {
			return
		}
		p = prev
	}
}

// Valid - true when positioned at a member rather than a sentinel
func (it Iterator[K, T]) Valid() bool {
	return nil != it.link && !it.link.isSentinel()
}

// IsEnd - true at the position after the highest member
func (it Iterator[K, T]) IsEnd() bool {
	return nil != it.link && backAnchor == it.link.up.kind
}

// IsREnd - true at the position before the lowest member
func (it Iterator[K, T]) IsREnd() bool {
	return nil != it.link && frontAnchor == it.link.up.kind
}

// Owner - the member at this position, nil at End or REnd
func (it Iterator[K, T]) Owner() *T {
	if !it.Valid() {
		return nil
	}
	return it.link.owner
}

// Key - the key of the member at this position
//
// must only be called when Valid() is true
func (it Iterator[K, T]) Key() K {
	return it.tree.keyOf(it.link)
}

// Next - the following position, End stays at End
func (it Iterator[K, T]) Next() Iterator[K, T] {
	return Iterator[K, T]{tree: it.tree, link: it.tree.successor(it.link)}
}

// Prev - the preceding position, REnd stays at REnd
func (it Iterator[K, T]) Prev() Iterator[K, T] {
	return Iterator[K, T]{tree: it.tree, link: it.tree.predecessor(it.link)}
}

func (tree *Tree[K, T]) firstOrEnd() *Link[T] {
	if nil == tree.root {
		return &tree.back
	}
	return tree.root.first()
}

func (tree *Tree[K, T]) lastOrREnd() *Link[T] {
	if nil == tree.root {
		return &tree.front
	}
	return tree.root.last()
}

// the member with the next highest key, or the back sentinel
func (tree *Tree[K, T]) successor(node *Link[T]) *Link[T] {
	switch node.up.kind {
	case backAnchor:
		return node
	case frontAnchor:
		if root := node.up.root(); nil != root {
			return root.first()
		}
		return &tree.back
	}

	if nil != node.right {
		return node.right.first()
	}
	parent := node.parent()
	for nil != parent && node == parent.right {
		node = parent
		parent = node.parent()
	}
	if nil == parent {
		return &tree.back
	}
	return parent
}

// the member with the next lowest key, or the front sentinel
func (tree *Tree[K, T]) predecessor(node *Link[T]) *Link[T] {
	switch node.up.kind {
	case frontAnchor:
		return node
	case backAnchor:
		// no direct pointer to the last member, recover it from the root
		if root := node.up.root(); nil != root {
			return root.last()
		}
		return &tree.front
	}

	if nil != node.left {
		return node.left.last()
	}
	parent := node.parent()
	for nil != parent && node == parent.left {
		node = parent
		parent = node.parent()
	}
	if nil == parent {
		return &tree.front
	}
	return parent
}
