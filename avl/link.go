// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// what the up slot of a link refers to
type anchorKind uint8

const (
	regularAnchor anchorKind = iota // up is the parent node
	frontAnchor                     // up is the tree root, link is the front sentinel
	backAnchor                      // up is the tree root, link is the back sentinel
)

// anchor - the upward reference of a link
//
// for an ordinary member it is the parent, for a sentinel it is the
// current root of the tree
type anchor[T any] struct {
	kind anchorKind
	link *Link[T]
}

func (a anchor[T]) parent() *Link[T] {
	if regularAnchor != a.kind {
		return nil
	}
	return a.link
}

func (a anchor[T]) root() *Link[T] {
	if regularAnchor == a.kind {
		return nil
	}
	return a.link
}

// Link - the per tree bookkeeping embedded in an owner
//
// The zero value is an unlinked link.  A link must not be copied
// while it is linked into a tree.
type Link[T any] struct {
	owner  *T
	left   *Link[T] // left sub-tree
	right  *Link[T] // right sub-tree
	up     anchor[T]
	height int
	home   *Link[T] // end sentinel of the tree holding this link
}

// Owner - the object this link is embedded in
//
// nil until the link has been inserted into a tree for the first time
func (l *Link[T]) Owner() *T {
	return l.owner
}

// IsLinked - true while the link is a member of some tree
func (l *Link[T]) IsLinked() bool {
	return nil != l.home
}

func (l *Link[T]) isSentinel() bool {
	return regularAnchor != l.up.kind
}

func (l *Link[T]) parent() *Link[T] {
	return l.up.parent()
}

func (l *Link[T]) setParent(p *Link[T]) {
	l.up = anchor[T]{kind: regularAnchor, link: p}
}

// replace the left child, the old child loses its parent only if it
// still points here, since a rotation may already have moved it
func (l *Link[T]) setLeft(child *Link[T]) {
	if nil != l.left && l == l.left.parent() {
		l.left.setParent(nil)
	}
	l.left = child
	if nil != child {
		child.setParent(l)
	}
}

func (l *Link[T]) setRight(child *Link[T]) {
	if nil != l.right && l == l.right.parent() {
		l.right.setParent(nil)
	}
	l.right = child
	if nil != child {
		child.setParent(l)
	}
}

// back to the unlinked state, owner is kept
func (l *Link[T]) reset() {
	l.left = nil
	l.right = nil
	l.up = anchor[T]{}
	l.height = 1
	l.home = nil
}

func heightOf[T any](l *Link[T]) int {
	if nil == l {
		return 0
	}
	return l.height
}

func (l *Link[T]) updateHeight() {
	hl := heightOf(l.left)
	hr := heightOf(l.right)
	if hl > hr {
		l.height = hl + 1
	} else {
		l.height = hr + 1
	}
}

// height(left) - height(right)
func (l *Link[T]) balance() int {
	return heightOf(l.left) - heightOf(l.right)
}

// internal: lowest node in a sub-tree
func (l *Link[T]) first() *Link[T] {
	if nil == l {
		return nil
	}
	for nil != l.left {
		l = l.left
	}
	return l
}

// internal: highest node in a sub-tree
func (l *Link[T]) last() *Link[T] {
	if nil == l {
		return nil
	}
	for nil != l.right {
		l = l.right
	}
	return l
}

// single left rotation, returns the new sub-tree root
func rotateLeft[T any](p *Link[T]) *Link[T] {
	p1 := p.right
	p.setRight(p1.left)
	p1.setLeft(p)
	p.updateHeight()
	p1.updateHeight()
	return p1
}

// single right rotation, returns the new sub-tree root
func rotateRight[T any](p *Link[T]) *Link[T] {
	p1 := p.left
	p.setLeft(p1.right)
	p1.setRight(p)
	p.updateHeight()
	p1.updateHeight()
	return p1
}
