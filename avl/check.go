// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"fmt"

	"github.com/bitmark-inc/intrusive/fault"
)

// Check - verify every structural invariant of the tree
//
// returns nil for a consistent tree, otherwise a fault error wrapped
// with the key where the first problem was detected
func (tree *Tree[K, T]) Check() error {
	if tree.root != tree.front.up.root() || tree.root != tree.back.up.root() {
		return fault.ErrSentinelRoot
	}
	if nil != tree.root && nil != tree.root.parent() {
		return fmt.Errorf("%w: root has a parent", fault.ErrParentMismatch)
	}

	n, err := tree.checkNode(tree.root, nil)
	if nil != err {
		return err
	}
	if n != tree.count {
		return fmt.Errorf("%w: counted: %d  recorded: %d", fault.ErrCountMismatch, n, tree.count)
	}

	// in-order walk must be strictly ascending
	var previous *Link[T]
	for p := tree.root.first(); nil != p; p = tree.successor(p) {
		if p.isSentinel() {
			break
		}
		if nil != previous && tree.compare(tree.keyOf(previous), tree.keyOf(p)) >= 0 {
			return fmt.Errorf("%w: %v is not below %v", fault.ErrOrderViolation, tree.keyOf(previous), tree.keyOf(p))
		}
		previous = p
	}
	return nil
}

// internal: consistency checker, returns number of nodes in the sub-tree
func (tree *Tree[K, T]) checkNode(p *Link[T], up *Link[T]) (int, error) {
	if nil == p {
		return 0, nil
	}
	if p.isSentinel() {
		return 0, fmt.Errorf("%w: sentinel inside the tree", fault.ErrParentMismatch)
	}
	// keys can only be read once the owner is known to be valid
	if nil == p.owner {
		return 0, fmt.Errorf("%w: link: %p has no owner", fault.ErrOwnerMismatch, p)
	}
	if p != tree.access.Link(p.owner) {
		return 0, fmt.Errorf("%w: link: %p is not embedded in its owner", fault.ErrOwnerMismatch, p)
	}
	if p.parent() != up {
		return 0, fmt.Errorf("%w: at key: %v", fault.ErrParentMismatch, tree.keyOf(p))
	}
	if &tree.back != p.home {
		return 0, fmt.Errorf("%w: at key: %v", fault.ErrForeignLink, tree.keyOf(p))
	}

	nl, err := tree.checkNode(p.left, p)
	if nil != err {
		return 0, err
	}
	nr, err := tree.checkNode(p.right, p)
	if nil != err {
		return 0, err
	}

	hl := heightOf(p.left)
	hr := heightOf(p.right)
	expected := 1 + hl
	if hr > hl {
		expected = 1 + hr
	}
	if p.height != expected {
		return 0, fmt.Errorf("%w: at key: %v  actual: %d  expected: %d", fault.ErrHeightMismatch, tree.keyOf(p), p.height, expected)
	}
	if bf := hl - hr; bf < -1 || bf > 1 {
		return 0, fmt.Errorf("%w: at key: %v  balance: %+d", fault.ErrBalanceViolation, tree.keyOf(p), bf)
	}
	if nil != p.left && tree.compare(tree.keyOf(p.left), tree.keyOf(p)) >= 0 {
		return 0, fmt.Errorf("%w: left child %v of %v", fault.ErrOrderViolation, tree.keyOf(p.left), tree.keyOf(p))
	}
	if nil != p.right && tree.compare(tree.keyOf(p.right), tree.keyOf(p)) <= 0 {
		return 0, fmt.Errorf("%w: right child %v of %v", fault.ErrOrderViolation, tree.keyOf(p.right), tree.keyOf(p))
	}
	return 1 + nl + nr, nil
}
