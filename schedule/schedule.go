// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package schedule

import (
	"fmt"
	"sync"
	"time"

	"github.com/bitmark-inc/intrusive/avl"
	"github.com/bitmark-inc/intrusive/fault"
)

// Task - a unit of pending work
//
// ID and Deadline must not be modified while the task is in a Table,
// use Reschedule to move the deadline
type Task struct {
	ID       uint64
	Deadline time.Time
	Payload  interface{}

	byID       avl.Link[Task]
	byDeadline avl.Link[Task]
}

// Scheduled - true while the task is held by a table
func (task *Task) Scheduled() bool {
	return task.byID.IsLinked()
}

// tasks sharing a deadline are kept in id order
type deadlineKey struct {
	deadline time.Time
	id       uint64
}

func compareDeadline(a deadlineKey, b deadlineKey) int {
	switch {
	case a.deadline.Before(b.deadline):
		return -1
	case a.deadline.After(b.deadline):
		return +1
	case a.id < b.id:
		return -1
	case a.id > b.id:
		return +1
	}
	return 0
}

var (
	idAccess = avl.Fields[uint64, Task]{
		KeyOf:  func(task *Task) uint64 { return task.ID },
		LinkOf: func(task *Task) *avl.Link[Task] { return &task.byID },
	}
	deadlineAccess = avl.Fields[deadlineKey, Task]{
		KeyOf:  func(task *Task) deadlineKey { return deadlineKey{deadline: task.Deadline, id: task.ID} },
		LinkOf: func(task *Task) *avl.Link[Task] { return &task.byDeadline },
	}
)

// Table - tasks indexed by id and by deadline
type Table struct {
	sync.Mutex
	byID       *avl.Tree[uint64, Task]
	byDeadline *avl.Tree[deadlineKey, Task]
}

// New - create an empty table
func New() *Table {
	return &Table{
		byID: avl.NewOrdered[uint64, Task](idAccess, avl.Options[uint64, Task]{
			LockAware: true,
		}),
		byDeadline: avl.New[deadlineKey, Task](deadlineAccess, avl.Options[deadlineKey, Task]{
			Compare:   compareDeadline,
			LockAware: true,
		}),
	}
}

// Add - schedule a task
func (table *Table) Add(task *Task) error {
	if nil == task {
		return fault.ErrInvalidTask
	}

	table.Lock()
	defer table.Unlock()

	if task.byID.IsLinked() || task.byDeadline.IsLinked() {
		return fault.ErrInvalidTask
	}
	if !table.byID.Insert(task) {
		return fault.ErrTaskExists
	}
	table.byDeadline.Insert(task)
	return nil
}

// Lookup - find a task by id
func (table *Table) Lookup(id uint64) (*Task, bool) {
	table.Lock()
	defer table.Unlock()

	return table.byID.Search(id)
}

// Cancel - remove a task from the table and return it
func (table *Table) Cancel(id uint64) (*Task, error) {
	table.Lock()
	defer table.Unlock()

	task, ok := table.byID.Delete(id)
	if !ok {
		return nil, fault.ErrTaskNotFound
	}
	table.byDeadline.Remove(task)
	return task, nil
}

// Reschedule - move the deadline of a scheduled task
func (table *Table) Reschedule(id uint64, deadline time.Time) error {
	table.Lock()
	defer table.Unlock()

	task, ok := table.byID.Search(id)
	if !ok {
		return fault.ErrTaskNotFound
	}

	// the key of a linked task must not change
	table.byDeadline.Remove(task)
	task.Deadline = deadline
	table.byDeadline.Insert(task)
	return nil
}

// Next - the earliest deadline in the table
func (table *Table) Next() (time.Time, bool) {
	table.Lock()
	defer table.Unlock()

	task := table.byDeadline.Front()
	if nil == task {
		return time.Time{}, false
	}
	return task.Deadline, true
}

// Expire - remove every task due at or before now
//
// the tasks are returned in deadline order
func (table *Table) Expire(now time.Time) []*Task {
	table.Lock()
	defer table.Unlock()

	expired := []*Task{}
	for {
		task := table.byDeadline.Front()
		if nil == task || task.Deadline.After(now) {
			break
		}
		table.byDeadline.Remove(task)
		table.byID.Remove(task)
		expired = append(expired, task)
	}
	return expired
}

// Count - number of scheduled tasks
func (table *Table) Count() int {
	table.Lock()
	defer table.Unlock()

	return table.byID.Count()
}

// IDs - ids of all scheduled tasks in ascending order
func (table *Table) IDs() []uint64 {
	table.Lock()
	defer table.Unlock()

	ids := make([]uint64, 0, table.byID.Count())
	table.byID.Ascend(func(task *Task) bool {
		ids = append(ids, task.ID)
		return true
	})
	return ids
}

// Check - verify both indexes and that they hold the same tasks
func (table *Table) Check() error {
	table.Lock()
	defer table.Unlock()

	if err := table.byID.Check(); nil != err {
		return fmt.Errorf("id index: %w", err)
	}
	if err := table.byDeadline.Check(); nil != err {
		return fmt.Errorf("deadline index: %w", err)
	}

	if table.byID.Count() != table.byDeadline.Count() {
		return fmt.Errorf("%w: ids: %d  deadlines: %d", fault.ErrTreeMismatch, table.byID.Count(), table.byDeadline.Count())
	}

	var err error
	table.byDeadline.Ascend(func(task *Task) bool {
		if !table.byID.Contains(task) {
			err = fmt.Errorf("%w: task: %d has no id entry", fault.ErrTreeMismatch, task.ID)
			return false
		}
		return true
	})
	return err
}

// Flush - drop every task, returns the number dropped
func (table *Table) Flush() int {
	table.Lock()
	defer table.Unlock()

	n := table.byID.Count()
	table.byDeadline.Clear()
	table.byID.Clear()
	return n
}
