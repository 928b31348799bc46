// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background

// Process - a long running goroutine body
//
// Run must return soon after shutdown is closed
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// a running process
type handle struct {
	shutdown chan struct{}
	finished chan struct{}
}

// T - the set of running processes returned by Start
type T struct {
	handles []handle
}

// Start - run each process in its own goroutine
func Start(processes Processes, args interface{}) *T {
	register := &T{
		handles: make([]handle, len(processes)),
	}

	for i, p := range processes {
		shutdown := make(chan struct{})
		finished := make(chan struct{})
		register.handles[i] = handle{
			shutdown: shutdown,
			finished: finished,
		}
		go func(p Process) {
			defer close(finished)
			p.Run(args, shutdown)
		}(p)
	}
	return register
}

// Stop - signal every process to shut down and wait for all of them
func (t *T) Stop() {
	if nil == t {
		return
	}

	for _, h := range t.handles {
		close(h.shutdown)
	}
	for _, h := range t.handles {
		<-h.finished
	}
}

// Done - a channel closed when every process has returned on its own
// or after Stop
func (t *T) Done() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		for _, h := range t.handles {
			<-h.finished
		}
		close(done)
	}()
	return done
}
