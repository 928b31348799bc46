// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/intrusive/configuration"
	"github.com/bitmark-inc/intrusive/fault"
)

const (
	defaultWorkers             = 4
	defaultRounds              = 100
	defaultPopulation          = 1000
	defaultOperationsPerSecond = 0 // unlimited
	defaultBurst               = 100
	defaultCheckEvery          = 500
	defaultSeed                = 1
	defaultReportInterval      = 10 // seconds

	defaultLogDirectory = "log"
	defaultLogFile      = "avlsoak.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// to hold log levels
type LoglevelMap map[string]string

var defaultLogLevels = LoglevelMap{
	logger.DefaultTag: "critical",
}

// Configuration - contents of the Lua configuration file
type Configuration struct {
	Workers             int                  `gluamapper:"workers" json:"workers"`
	Rounds              int                  `gluamapper:"rounds" json:"rounds"`
	Population          int                  `gluamapper:"population" json:"population"`
	OperationsPerSecond float64              `gluamapper:"operations_per_second" json:"operations_per_second"`
	Burst               int                  `gluamapper:"burst" json:"burst"`
	CheckEvery          int                  `gluamapper:"check_every" json:"check_every"`
	Seed                int64                `gluamapper:"seed" json:"seed"`
	ReportInterval      int                  `gluamapper:"report_interval" json:"report_interval"`
	Logging             logger.Configuration `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// directory of the configuration file
	baseDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		Workers:             defaultWorkers,
		Rounds:              defaultRounds,
		Population:          defaultPopulation,
		OperationsPerSecond: defaultOperationsPerSecond,
		Burst:               defaultBurst,
		CheckEvery:          defaultCheckEvery,
		Seed:                defaultSeed,
		ReportInterval:      defaultReportInterval,

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	counts := []struct {
		name  string
		value int
	}{
		{"workers", options.Workers},
		{"rounds", options.Rounds},
		{"population", options.Population},
		{"burst", options.Burst},
		{"check_every", options.CheckEvery},
		{"report_interval", options.ReportInterval},
	}
	for _, c := range counts {
		if c.value <= 0 {
			return nil, fmt.Errorf("%w: %s: %d", fault.ErrInvalidCount, c.name, c.value)
		}
	}
	if options.OperationsPerSecond < 0 {
		return nil, fmt.Errorf("%w: operations_per_second: %g", fault.ErrInvalidCount, options.OperationsPerSecond)
	}

	// relative log directory is below the configuration file
	if !filepath.IsAbs(options.Logging.Directory) {
		options.Logging.Directory = filepath.Join(baseDirectory, options.Logging.Directory)
	}

	return options, nil
}
