// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/intrusive/fault"
)

// a background process running rounds of workload
type worker struct {
	log        *logger.L
	stats      *statistics
	limiter    *rate.Limiter
	rounds     int
	population int
	checkEvery int
	seed       int64
	err        error // first failure, valid after Run returns
}

func newWorker(index int, config *Configuration, stats *statistics) *worker {
	return &worker{
		log:        logger.New("worker"),
		stats:      stats,
		limiter:    rate.NewLimiter(limitOf(config.OperationsPerSecond), config.Burst),
		rounds:     config.Rounds,
		population: config.Population,
		checkEvery: config.CheckEvery,
		seed:       config.Seed + int64(index),
	}
}

// zero is unlimited
func limitOf(operationsPerSecond float64) rate.Limit {
	if 0 == operationsPerSecond {
		return rate.Inf
	}
	return rate.Limit(operationsPerSecond)
}

func (w *worker) Run(args interface{}, shutdown <-chan struct{}) {
	log := w.log
	log.Infof("starting… seed: %d", w.seed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-shutdown:
			cancel()
		case <-ctx.Done():
		}
	}()

	err := w.soak(ctx)
	switch {
	case nil != ctx.Err():
		log.Info("stopped")
	case nil != err:
		w.err = err
		w.stats.fail()
		fault.Report(fmt.Sprintf("worker seed: %d", w.seed), err)
	default:
		log.Infof("completed rounds: %d", w.rounds)
	}
	log.Flush()
}

func (w *worker) soak(ctx context.Context) error {
	random := rand.New(rand.NewSource(w.seed))

	for round := range w.rounds {
		load := newWorkload(w.population, random, w.stats)
		for i := 1; i <= w.population; i += 1 {
			if err := w.limiter.Wait(ctx); nil != err {
				return err
			}
			if err := load.step(); nil != err {
				return err
			}
			if 0 == i%w.checkEvery {
				if err := load.verify(); nil != err {
					return err
				}
			}
		}
		if err := load.finish(); nil != err {
			return err
		}
		w.log.Debugf("round: %d  completed", round)
	}
	return nil
}

// adjust the operation rate of a running worker
func (w *worker) setRate(operationsPerSecond float64, burst int) {
	w.limiter.SetLimit(limitOf(operationsPerSecond))
	w.limiter.SetBurst(burst)
}
