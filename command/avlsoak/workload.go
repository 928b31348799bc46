// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/bitmark-inc/intrusive/fault"
	"github.com/bitmark-inc/intrusive/schedule"
)

// start of the simulated clock
var epoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// one round of random operations on a table, mirrored in a map
type workload struct {
	table      *schedule.Table
	model      map[uint64]time.Time
	now        time.Time
	nextID     uint64
	population int
	random     *rand.Rand
	stats      *statistics
}

func newWorkload(population int, random *rand.Rand, stats *statistics) *workload {
	return &workload{
		table:      schedule.New(),
		model:      make(map[uint64]time.Time),
		now:        epoch,
		nextID:     0,
		population: population,
		random:     random,
		stats:      stats,
	}
}

func mismatch(format string, arguments ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{fault.ErrSoakAborted}, arguments...)...)
}

// a deadline up to population seconds in the future
func (w *workload) deadline() time.Time {
	return w.now.Add(time.Duration(1+w.random.Intn(w.population)) * time.Second)
}

// an id that may or may not still be scheduled
func (w *workload) candidate() uint64 {
	if 0 == w.nextID {
		return 0
	}
	return uint64(w.random.Int63n(int64(w.nextID)))
}

// step - advance the clock by one second and perform one random
// operation
func (w *workload) step() error {
	w.now = w.now.Add(time.Second)
	w.stats.operations.Increment()

	switch n := w.random.Intn(100); {
	case n < 40:
		return w.add()
	case n < 55:
		return w.cancel()
	case n < 70:
		return w.reschedule()
	case n < 85:
		return w.lookup()
	default:
		return w.expire()
	}
}

func (w *workload) add() error {
	id := w.nextID
	w.nextID += 1
	task := &schedule.Task{
		ID:       id,
		Deadline: w.deadline(),
		Payload:  w.now,
	}
	if err := w.table.Add(task); nil != err {
		return mismatch("add: %d  error: %s", id, err)
	}
	w.model[id] = task.Deadline
	w.stats.adds.Increment()
	return nil
}

func (w *workload) cancel() error {
	id := w.candidate()
	_, expected := w.model[id]

	task, err := w.table.Cancel(id)
	switch {
	case expected && nil != err:
		return mismatch("cancel: %d  error: %s", id, err)
	case !expected && !fault.IsErrNotFound(err):
		return mismatch("cancel: %d  absent task returned error: %v", id, err)
	case expected && (id != task.ID || task.Scheduled()):
		return mismatch("cancel: %d  returned task: %d  scheduled: %t", id, task.ID, task.Scheduled())
	}
	delete(w.model, id)
	w.stats.cancels.Increment()
	return nil
}

func (w *workload) reschedule() error {
	id := w.candidate()
	_, expected := w.model[id]

	deadline := w.deadline()
	err := w.table.Reschedule(id, deadline)
	switch {
	case expected && nil != err:
		return mismatch("reschedule: %d  error: %s", id, err)
	case !expected && !fault.IsErrNotFound(err):
		return mismatch("reschedule: %d  absent task returned error: %v", id, err)
	case expected:
		w.model[id] = deadline
	}
	w.stats.reschedules.Increment()
	return nil
}

func (w *workload) lookup() error {
	id := w.candidate()
	deadline, expected := w.model[id]

	task, ok := w.table.Lookup(id)
	if ok != expected {
		return mismatch("lookup: %d  found: %t  expected: %t", id, ok, expected)
	}
	if ok && !task.Deadline.Equal(deadline) {
		return mismatch("lookup: %d  deadline: %s  expected: %s", id, task.Deadline, deadline)
	}
	w.stats.lookups.Increment()
	return nil
}

func (w *workload) expire() error {
	expired := w.table.Expire(w.now)
	for i, task := range expired {
		deadline, ok := w.model[task.ID]
		if !ok {
			return mismatch("expire: unknown task: %d", task.ID)
		}
		if task.Deadline.After(w.now) || !task.Deadline.Equal(deadline) {
			return mismatch("expire: task: %d  deadline: %s  now: %s", task.ID, task.Deadline, w.now)
		}
		if i > 0 && task.Deadline.Before(expired[i-1].Deadline) {
			return mismatch("expire: task: %d out of deadline order", task.ID)
		}
		delete(w.model, task.ID)
	}
	if next, ok := w.table.Next(); ok && !next.After(w.now) {
		return mismatch("expire: due task left at: %s", next)
	}
	w.stats.expired.Add(uint64(len(expired)))
	return nil
}

// verify - full comparison of the table against the model
func (w *workload) verify() error {
	w.stats.checks.Increment()

	if err := w.table.Check(); nil != err {
		return fmt.Errorf("%w: %w", fault.ErrSoakAborted, err)
	}
	if w.table.Count() != len(w.model) {
		return mismatch("count: %d  expected: %d", w.table.Count(), len(w.model))
	}

	expected := make([]uint64, 0, len(w.model))
	for id := range w.model {
		expected = append(expected, id)
	}
	sort.Slice(expected, func(i, j int) bool { return expected[i] < expected[j] })

	actual := w.table.IDs()
	for i, id := range actual {
		if expected[i] != id {
			return mismatch("ids: position: %d  actual: %d  expected: %d", i, id, expected[i])
		}
	}
	return nil
}

// finish - verify then empty the table
func (w *workload) finish() error {
	if err := w.verify(); nil != err {
		return err
	}
	n := w.table.Flush()
	if n != len(w.model) {
		return mismatch("flush: %d  expected: %d", n, len(w.model))
	}
	w.model = make(map[uint64]time.Time)
	w.stats.rounds.Increment()
	return nil
}
