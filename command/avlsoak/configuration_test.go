// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/intrusive/fault"
)

func writeConfiguration(t *testing.T, directory string, text string) string {
	fileName := filepath.Join(directory, "avlsoak.conf")
	require.NoError(t, os.WriteFile(fileName, []byte(text), 0o600), "write configuration")
	return fileName
}

func TestConfigurationDefaults(t *testing.T) {
	directory := t.TempDir()
	fileName := writeConfiguration(t, directory, "return {}")

	config, err := getConfiguration(fileName)
	require.NoError(t, err, "configuration")

	assert.Equal(t, defaultWorkers, config.Workers, "workers")
	assert.Equal(t, defaultRounds, config.Rounds, "rounds")
	assert.Equal(t, defaultPopulation, config.Population, "population")
	assert.Equal(t, float64(defaultOperationsPerSecond), config.OperationsPerSecond, "rate")
	assert.Equal(t, defaultBurst, config.Burst, "burst")
	assert.Equal(t, defaultCheckEvery, config.CheckEvery, "check every")
	assert.Equal(t, int64(defaultSeed), config.Seed, "seed")
	assert.Equal(t, defaultReportInterval, config.ReportInterval, "report interval")
	assert.Equal(t, defaultLogFile, config.Logging.File, "log file")
	assert.Equal(t, filepath.Join(directory, defaultLogDirectory), config.Logging.Directory, "log directory")
}

func TestConfigurationOverrides(t *testing.T) {
	directory := t.TempDir()
	fileName := writeConfiguration(t, directory, `
local M = {}
M.workers = 2
M.rounds = 3
M.population = 50
M.operations_per_second = 1000
M.burst = 10
M.check_every = 7
M.seed = 99
M.report_interval = 1
M.logging = {
    directory = "/var/log/avlsoak",
    file = "soak.log",
}
return M
`)

	config, err := getConfiguration(fileName)
	require.NoError(t, err, "configuration")

	assert.Equal(t, 2, config.Workers, "workers")
	assert.Equal(t, 3, config.Rounds, "rounds")
	assert.Equal(t, 50, config.Population, "population")
	assert.Equal(t, 1000.0, config.OperationsPerSecond, "rate")
	assert.Equal(t, 10, config.Burst, "burst")
	assert.Equal(t, 7, config.CheckEvery, "check every")
	assert.Equal(t, int64(99), config.Seed, "seed")
	assert.Equal(t, 1, config.ReportInterval, "report interval")
	assert.Equal(t, "/var/log/avlsoak", config.Logging.Directory, "absolute log directory")
	assert.Equal(t, "soak.log", config.Logging.File, "log file")
}

func TestConfigurationInvalid(t *testing.T) {
	invalid := []string{
		"return { workers = 0 }",
		"return { rounds = -1 }",
		"return { population = 0 }",
		"return { burst = 0 }",
		"return { check_every = 0 }",
		"return { report_interval = 0 }",
		"return { operations_per_second = -5 }",
	}
	for _, text := range invalid {
		fileName := writeConfiguration(t, t.TempDir(), text)
		_, err := getConfiguration(fileName)
		assert.ErrorIs(t, err, fault.ErrInvalidCount, "config: %s", text)
	}

	_, err := getConfiguration(filepath.Join(t.TempDir(), "absent.conf"))
	assert.Error(t, err, "absent file")
}
