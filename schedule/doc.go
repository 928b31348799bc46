// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package schedule - a table of pending tasks
//
// every task carries two tree links so that it can be found by its id
// and also taken in deadline order without any allocation per
// operation.  A Table serialises all access with its own mutex.
package schedule
