// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// state carried down an insertion
type insertion[T any] struct {
	node       *Link[T]
	added      bool
	rebalanced bool // at most one rotation per insert
}

// Insert - link owner into the tree
//
// returns false, leaving the tree unchanged, if the owner's link is
// already in a tree or a member with an equal key exists
func (tree *Tree[K, T]) Insert(owner *T) bool {
	node := tree.access.Link(owner)
	if nil != node.home {
		return false
	}
	node.owner = owner
	node.left = nil
	node.right = nil
	node.up = anchor[T]{}
	node.height = 1

	ins := insertion[T]{node: node}
	tree.root = tree.insert(&ins, tree.root)
	tree.updateSentinels()

	if ins.added {
		node.home = &tree.back
		tree.count += 1
	}
	return ins.added
}

// internal routine for insert, returns the possibly updated sub-tree root
func (tree *Tree[K, T]) insert(ins *insertion[T], p *Link[T]) *Link[T] {
	if nil == p { // insert new node
		ins.added = true
		return ins.node
	}

	switch c := tree.compareLinks(ins.node, p); {
	case c < 0:
		p.setLeft(tree.insert(ins, p.left))
	case c > 0:
		p.setRight(tree.insert(ins, p.right))
	default: // duplicate
		return p
	}
	if !ins.added {
		return p
	}

	p.updateHeight()
	if ins.rebalanced {
		return p
	}

	// the inserted key against the heavy child selects the rotation
	bf := p.balance()
	switch {
	case bf > 1 && tree.compareLinks(ins.node, p.left) < 0:
		// single LL rotation
		ins.rebalanced = true
		return rotateRight(p)
	case bf > 1:
		// double LR rotation
		ins.rebalanced = true
		p.setLeft(rotateLeft(p.left))
		return rotateRight(p)
	case bf < -1 && tree.compareLinks(ins.node, p.right) > 0:
		// single RR rotation
		ins.rebalanced = true
		return rotateLeft(p)
	case bf < -1:
		// double RL rotation
		ins.rebalanced = true
		p.setRight(rotateRight(p.right))
		return rotateLeft(p)
	}
	return p
}
