// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"golang.org/x/exp/constraints"
)

// Tree - type to hold the root node of a tree
//
// a tree contains its own sentinels, so it must not be copied
type Tree[K any, T any] struct {
	root      *Link[T]
	count     int
	front     Link[T] // before the first member
	back      Link[T] // after the last member
	access    Accessor[K, T]
	compare   Compare[K]
	dispose   Disposer[T]
	lockAware bool
}

// New - create an initially empty tree
//
// options.Compare must be set
func New[K any, T any](access Accessor[K, T], options Options[K, T]) *Tree[K, T] {
	if nil == access {
		panic("avl: nil accessor")
	}
	if nil == options.Compare {
		panic("avl: nil compare function")
	}
	tree := &Tree[K, T]{
		root:      nil,
		count:     0,
		access:    access,
		compare:   options.Compare,
		dispose:   options.Dispose,
		lockAware: options.LockAware,
	}
	tree.front.height = 1
	tree.back.height = 1
	tree.front.up = anchor[T]{kind: frontAnchor}
	tree.back.up = anchor[T]{kind: backAnchor}
	return tree
}

// NewOrdered - create an initially empty tree using the native key
// order unless options.Compare is set
func NewOrdered[K constraints.Ordered, T any](access Accessor[K, T], options Options[K, T]) *Tree[K, T] {
	if nil == options.Compare {
		options.Compare = Ascending[K]
	}
	return New(access, options)
}

// IsEmpty - true if tree contains no members
func (tree *Tree[K, T]) IsEmpty() bool {
	return nil == tree.root
}

// Count - number of members currently in the tree
func (tree *Tree[K, T]) Count() int {
	return tree.count
}

// Height - height of the root, zero for an empty tree
func (tree *Tree[K, T]) Height() int {
	return heightOf(tree.root)
}

// LockAware - true if the tree was configured for external locking
func (tree *Tree[K, T]) LockAware() bool {
	return tree.lockAware
}

// Front - the owner with the lowest key, nil if the tree is empty
func (tree *Tree[K, T]) Front() *T {
	if nil == tree.root {
		return nil
	}
	return tree.root.first().owner
}

// Back - the owner with the highest key, nil if the tree is empty
func (tree *Tree[K, T]) Back() *T {
	if nil == tree.root {
		return nil
	}
	return tree.root.last().owner
}

// Contains - true if owner itself is linked into this tree
func (tree *Tree[K, T]) Contains(owner *T) bool {
	return &tree.back == tree.access.Link(owner).home
}

// both sentinels track the current root
func (tree *Tree[K, T]) updateSentinels() {
	if nil != tree.root {
		tree.root.setParent(nil)
	}
	tree.front.up.link = tree.root
	tree.back.up.link = tree.root
}

func (tree *Tree[K, T]) keyOf(l *Link[T]) K {
	return tree.access.Key(l.owner)
}

// order of two links, sentinels sort outside every real key
func (tree *Tree[K, T]) compareLinks(a *Link[T], b *Link[T]) int {
	switch {
	case a == b:
		return 0
	case frontAnchor == a.up.kind, backAnchor == b.up.kind:
		return -1
	case backAnchor == a.up.kind, frontAnchor == b.up.kind:
		return +1
	}
	return tree.compare(tree.keyOf(a), tree.keyOf(b))
}
