// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/logger"
)

// watch the configuration file and warn when it is edited while the
// daemon is running, changes only take effect after a restart
func startConfigurationWatcher(log *logger.L, configurationFile string) (func(), error) {

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}

	err = watcher.Add(configurationFile)
	if nil != err {
		watcher.Close()
		return nil, err
	}

	done := make(chan struct{})

	go func() {
	loop:
		for {
			select {
			case <-done:
				break loop

			case event, ok := <-watcher.Events:
				if !ok {
					break loop
				}
				if 0 != event.Op&(fsnotify.Write|fsnotify.Create) {
					log.Warnf("configuration file changed: %q restart required", event.Name)
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					break loop
				}
				log.Errorf("configuration watcher error: %s", err)
			}
		}
		watcher.Close()
	}()

	stop := func() {
		close(done)
	}
	return stop, nil
}
