// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Search - find the owner with a specific key
func (tree *Tree[K, T]) Search(key K) (*T, bool) {
	node := tree.search(key)
	if nil == node {
		return nil, false
	}
	return node.owner, true
}

// Find - iterator positioned at key, or End if key is not present
func (tree *Tree[K, T]) Find(key K) Iterator[K, T] {
	node := tree.search(key)
	if nil == node {
		return tree.End()
	}
	return Iterator[K, T]{tree: tree, link: node}
}

// Seek - iterator positioned at the first member whose key is not
// less than key, or End if there is none
func (tree *Tree[K, T]) Seek(key K) Iterator[K, T] {
	var found *Link[T]
	for p := tree.root; nil != p; {
		if tree.compare(tree.keyOf(p), key) < 0 {
			p = p.right
		} else {
			found = p
			p = p.left
		}
	}
	if nil == found {
		return tree.End()
	}
	return Iterator[K, T]{tree: tree, link: found}
}

func (tree *Tree[K, T]) search(key K) *Link[T] {
	p := tree.root
	for nil != p {
		switch c := tree.compare(tree.keyOf(p), key); {
		case c > 0: // p.key > key
			p = p.left
		case c < 0: // p.key < key
			p = p.right
		default:
			return p
		}
	}
	return nil
}
