// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
)

// reloads the configuration file whenever it is written
type watcher struct {
	log      *logger.L
	watcher  *fsnotify.Watcher
	filePath string
	reload   func(*Configuration)
}

// watch the directory so that editors replacing the file are seen
func newWatcher(fileName string, reload func(*Configuration)) (*watcher, error) {
	filePath, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}
	if err := w.Add(filepath.Dir(filePath)); nil != err {
		w.Close()
		return nil, err
	}

	return &watcher{
		log:      logger.New("watcher"),
		watcher:  w,
		filePath: filePath,
		reload:   reload,
	}, nil
}

func (w *watcher) Run(args interface{}, shutdown <-chan struct{}) {
	log := w.log
	log.Infof("watching: %q", w.filePath)

	defer w.watcher.Close()

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if filepath.Base(event.Name) != filepath.Base(w.filePath) || !isChange(event) {
				continue loop
			}
			log.Infof("file event: %v", event)

			config, err := getConfiguration(w.filePath)
			if nil != err {
				log.Errorf("reload: %q  error: %s", w.filePath, err)
				continue loop
			}
			w.reload(config)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("watcher error: %s", err)
		}
	}

	log.Info("shutting down…")
	log.Flush()
}

func isChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create
}
