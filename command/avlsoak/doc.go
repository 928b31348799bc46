// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// avlsoak - soak test for the intrusive tree
//
// runs a number of workers, each driving its own schedule table with a
// random mix of add, cancel, reschedule, lookup and expire operations.
// Every result is compared against a plain map and the tree invariants
// are verified at a configurable interval.  The first discrepancy is
// logged as critical and stops the run.
//
// The operation rate can be changed while running by editing the
// configuration file.
package main
