// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package avl - an intrusive AVL balanced tree with parent pointers
// to allow iteration through the members
//
// The tree never allocates: each member embeds one Link per tree it
// may join, and the tree only rewires those links.  An owner with
// several links can be a member of several independent trees at the
// same time, each with its own key and ordering.  The key of a member
// must not change while it is linked: remove it, change the key, then
// insert it again.
//
// Each tree holds two sentinel links.  The back sentinel is the
// position after the last member (End) and the front sentinel is the
// position before the first member (REnd); both keep a reference to
// the current root so that stepping backwards from End can find the
// last member again.
//
// Note: an individual tree is not thread safe, so either access only
//       in a single go routine or use mutex/rwmutex to restrict
//       access.  The LockAware option only records that the caller
//       has taken on that responsibility.
//
// A comparator or disposer that panics part way through an insert or
// remove leaves the tree in an undefined state, there is no rollback.
package avl
