// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/intrusive/background"
	"github.com/bitmark-inc/intrusive/fault"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	if len(options["verbose"]) > 0 {
		theConfiguration.Logging.Console = true
	}

	// start logging
	if err = os.MkdirAll(theConfiguration.Logging.Directory, 0o700); nil != err {
		exitwithstatus.Message("%s: cannot create log directory: %q  error: %s", program, theConfiguration.Logging.Directory, err)
	}
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: fault setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	stats := newStatistics()

	workers := make([]*worker, theConfiguration.Workers)
	processes := make(background.Processes, 0, len(workers))
	for i := range workers {
		workers[i] = newWorker(i, theConfiguration, stats)
		processes = append(processes, workers[i])
	}

	w, err := newWatcher(configurationFile, func(config *Configuration) {
		log.Infof("new rate: %g/s  burst: %d", config.OperationsPerSecond, config.Burst)
		for _, wk := range workers {
			wk.setRate(config.OperationsPerSecond, config.Burst)
		}
	})
	if nil != err {
		log.Criticalf("watcher initialise error: %s", err)
		exitwithstatus.Message("watcher initialise error: %s", err)
	}

	support := background.Processes{
		w,
		&reporter{
			log:      logger.New("reporter"),
			stats:    stats,
			interval: time.Duration(theConfiguration.ReportInterval) * time.Second,
		},
	}

	soak := background.Start(processes, nil)
	monitor := background.Start(support, nil)

	if 0 == len(options["quiet"]) {
		fmt.Printf("soak running with %d workers, CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM) to stop…\n", len(workers))
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-ch:
		log.Infof("received signal: %v", sig)
		if 0 == len(options["quiet"]) {
			fmt.Printf("\nreceived signal: %v\n", sig)
		}
	case <-soak.Done():
		log.Info("all workers finished")
	case <-stats.failed:
		log.Critical("worker failed")
	}

	log.Info("shutting down…")
	soak.Stop()
	monitor.Stop()

	for _, wk := range workers {
		if nil != wk.err {
			fault.Criticalf("worker seed: %d  error: %s", wk.seed, wk.err)
			exitwithstatus.Message("%s: %s", program, wk.err)
		}
	}

	if 0 == len(options["quiet"]) {
		fmt.Printf("rounds: %d  operations: %d  checks: %d\n", stats.rounds.Uint64(), stats.operations.Uint64(), stats.checks.Uint64())
	}
}
