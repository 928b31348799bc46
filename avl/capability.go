// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"golang.org/x/exp/constraints"
)

// Compare - three way comparison of two keys
//
// negative: a < b, zero: a == b, positive: a > b
type Compare[K any] func(a K, b K) int

// Ascending - the native order of a key type
func Ascending[K constraints.Ordered](a K, b K) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return +1
	default:
		return 0
	}
}

// Disposer - called once for each owner after it has been removed
type Disposer[T any] interface {
	Dispose(owner *T)
}

// DisposeFunc - adapt an ordinary function to a Disposer
type DisposeFunc[T any] func(owner *T)

// Dispose - call f(owner)
func (f DisposeFunc[T]) Dispose(owner *T) {
	f(owner)
}

// Reset - a disposer that overwrites the removed owner with its zero value
//
// this also zeroes every other link embedded in the owner, so the
// owner must already be out of all other trees when it is disposed
func Reset[T any]() Disposer[T] {
	return DisposeFunc[T](func(owner *T) {
		var zero T
		*owner = zero
	})
}

// Accessor - find the key and the embedded link of an owner
//
// one accessor per tree, so an owner with several links uses a
// different accessor for each tree it joins
type Accessor[K any, T any] interface {
	Key(owner *T) K
	Link(owner *T) *Link[T]
}

// Fields - an Accessor built from two functions
type Fields[K any, T any] struct {
	KeyOf  func(owner *T) K
	LinkOf func(owner *T) *Link[T]
}

// Key - extract the key from owner
func (f Fields[K, T]) Key(owner *T) K {
	return f.KeyOf(owner)
}

// Link - extract the link from owner
func (f Fields[K, T]) Link(owner *T) *Link[T] {
	return f.LinkOf(owner)
}

// Member - an owner type that carries a single tree link
type Member[K any, T any] interface {
	*T
	TreeKey() K
	TreeLink() *Link[T]
}

// Embedded - the Accessor for owners implementing Member
type Embedded[K any, T any, P Member[K, T]] struct{}

// Key - return P(owner).TreeKey()
func (Embedded[K, T, P]) Key(owner *T) K {
	return P(owner).TreeKey()
}

// Link - return P(owner).TreeLink()
func (Embedded[K, T, P]) Link(owner *T) *Link[T] {
	return P(owner).TreeLink()
}

// Options - construction time configuration of a tree
type Options[K any, T any] struct {
	Compare   Compare[K]  // required by New, defaults to Ascending in NewOrdered
	Dispose   Disposer[T] // nil: removed owners are left alone
	LockAware bool        // the caller serialises all access with its own lock
}
