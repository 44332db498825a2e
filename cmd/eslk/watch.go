// Copyright (c) 2014, Kevin Walsh.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchFile blocks, calling reload once up front and again every time path
// changes on disk, debouncing rapid writes the way codenerd's
// MangleWatcher does for its own .mg source files. reload's own error is
// printed rather than returned, since a watch loop's job is to keep running
// across a momentarily broken file, not to exit on the first bad edit.
func watchFile(path string, reload func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("eslk: starting file watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		return fmt.Errorf("eslk: watching %s: %w", path, err)
	}

	if err := reload(); err != nil {
		fmt.Println("error:", err)
	}

	const debounce = 200 * time.Millisecond
	var pending bool
	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			pending = true
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			fmt.Println("---", path, "changed ---")
			if err := reload(); err != nil {
				fmt.Println("error:", err)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Println("watch error:", err)
		}
	}
}
