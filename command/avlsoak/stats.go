// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/intrusive/counter"
)

// totals shared by all workers
type statistics struct {
	operations  counter.Counter
	adds        counter.Counter
	cancels     counter.Counter
	reschedules counter.Counter
	lookups     counter.Counter
	expired     counter.Counter
	checks      counter.Counter
	rounds      counter.Counter
	failures    counter.Counter

	once   sync.Once
	failed chan struct{} // closed on the first failure
}

func newStatistics() *statistics {
	return &statistics{
		failed: make(chan struct{}),
	}
}

// record a failure and signal the first one
func (s *statistics) fail() {
	s.failures.Increment()
	s.once.Do(func() {
		close(s.failed)
	})
}

// periodic progress log
type reporter struct {
	log      *logger.L
	stats    *statistics
	interval time.Duration
}

func (r *reporter) Run(args interface{}, shutdown <-chan struct{}) {
	log := r.log
	log.Info("starting…")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	previous := uint64(0)
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			n := r.stats.operations.Uint64()
			log.Infof("operations: %d  rate: %.1f/s", n, float64(n-previous)/r.interval.Seconds())
			previous = n
			r.report()
		}
	}

	r.report()
	log.Info("shutting down…")
	log.Flush()
}

func (r *reporter) report() {
	s := r.stats
	r.log.Infof(
		"rounds: %d  add: %d  cancel: %d  reschedule: %d  lookup: %d  expired: %d  checks: %d  failures: %d",
		s.rounds.Uint64(),
		s.adds.Uint64(),
		s.cancels.Uint64(),
		s.reschedules.Uint64(),
		s.lookups.Uint64(),
		s.expired.Uint64(),
		s.checks.Uint64(),
		s.failures.Uint64(),
	)
}
