// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Remove - unlink owner from the tree
//
// returns false, leaving the tree unchanged, if the owner is not a
// member of this tree or its key was changed so that it can no longer
// be found.  The disposer, if any, is called after the tree is
// consistent again.
func (tree *Tree[K, T]) Remove(owner *T) bool {
	node := tree.access.Link(owner)
	if &tree.back != node.home {
		return false
	}
	return tree.unlink(node)
}

// Delete - removes the member with a specific key from the tree
//
// returns the removed owner, or nil and false if no member has key
func (tree *Tree[K, T]) Delete(key K) (*T, bool) {
	node := tree.search(key)
	if nil == node {
		return nil, false
	}
	owner := node.owner
	if !tree.unlink(node) {
		return nil, false
	}
	return owner, true
}

// Clear - remove every member, highest key first
//
// stops early if a member cannot be found because its key was changed
// while it was linked
func (tree *Tree[K, T]) Clear() {
	for nil != tree.root {
		if !tree.unlink(tree.root.last()) {
			return
		}
	}
}

// state carried down a removal
type removal[T any] struct {
	node  *Link[T]
	found bool
}

// remove a member link and dispose of its owner, false if the link
// was not found by its key
func (tree *Tree[K, T]) unlink(node *Link[T]) bool {
	rm := removal[T]{node: node}
	tree.root = tree.remove(&rm, tree.root)
	tree.updateSentinels()
	if !rm.found {
		return false
	}
	node.reset()

	if nil != tree.dispose {
		tree.dispose.Dispose(node.owner)
	}
	return true
}

// internal remove routine, returns the possibly updated sub-tree root
func (tree *Tree[K, T]) remove(rm *removal[T], p *Link[T]) *Link[T] {
	if nil == p { // not in tree
		return nil
	}

	switch c := tree.compareLinks(rm.node, p); {
	case c < 0:
		p.setLeft(tree.remove(rm, p.left))
	case c > 0:
		p.setRight(tree.remove(rm, p.right))
	default:
		if p != rm.node { // equal key on a different member
			return p
		}
		rm.found = true
		p = tree.detach(p)
	}
	if !rm.found {
		return p
	}
	if nil == p {
		return nil
	}

	// deletion can unbalance every level, so always check
	p.updateHeight()
	return rebalance(p)
}

// delete: take p out of its position, returns its replacement
func (tree *Tree[K, T]) detach(p *Link[T]) *Link[T] {
	switch {
	case nil == p.left && nil == p.right:
		tree.count -= 1
		return nil

	case nil == p.left:
		r := p.right
		r.setParent(p.parent())
		tree.count -= 1
		return r

	case nil == p.right:
		r := p.left
		r.setParent(p.parent())
		tree.count -= 1
		return r
	}

	// two children: the in-order successor has no left child so its
	// own removal is one of the simple cases above
	r := p.right.first()
	p.setRight(tree.remove(&removal[T]{node: r}, p.right))
	r.setLeft(p.left)
	r.setRight(p.right)
	r.setParent(p.parent())
	return r
}

// delete: tree balancer
func rebalance[T any](p *Link[T]) *Link[T] {
	bf := p.balance()
	switch {
	case bf > 1 && p.left.balance() >= 0:
		// single LL rotation
		return rotateRight(p)
	case bf > 1:
		// double LR rotation
		p.setLeft(rotateLeft(p.left))
		return rotateRight(p)
	case bf < -1 && p.right.balance() <= 0:
		// single RR rotation
		return rotateLeft(p)
	case bf < -1:
		// double RL rotation
		p.setRight(rotateRight(p.right))
		return rotateLeft(p)
	}
	return p
}
