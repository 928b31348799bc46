// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"fmt"
	"time"

	"github.com/bitmark-inc/intrusive/background"
	"github.com/bitmark-inc/intrusive/schedule"
)

// expires tasks from a table until shut down
type expirer struct {
	table   *schedule.Table
	expired int
}

func Example() {
	table := schedule.New()
	now := time.Now()
	for i := range 3 {
		table.Add(&schedule.Task{ID: uint64(i), Deadline: now.Add(-time.Second)})
	}

	e := &expirer{table: table}
	p := background.Start(background.Processes{e}, nil)
	time.Sleep(50 * time.Millisecond)
	p.Stop()

	fmt.Printf("expired: %d  remaining: %d\n", e.expired, table.Count())
	// Output: expired: 3  remaining: 0
}

func (e *expirer) Run(args interface{}, shutdown <-chan struct{}) {
	for {
		e.expired += len(e.table.Expire(time.Now()))
		select {
		case <-shutdown:
			return
		case <-time.After(time.Millisecond):
		}
	}
}
