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
	"github.com/spf13/cobra"

	"github.com/lakemeyer-levesque/eslk/bat"
)

// newLoadCmd parses a BAT file, initialises its engine, evaluates every
// query statement the file itself declares, and prints each answer. With
// --watch it keeps re-running the whole pipeline every time the file
// changes on disk (watch.go), the way a developer iterates on a theory.
func newLoadCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "load <file>",
		Short: "load a BAT file and print the results of its embedded queries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			reload := func() error {
				l := bat.NewLoader(logger)
				if err := l.LoadFile(path); err != nil {
					return err
				}
				warnPlaceholderCap(l.Engine.HPlusSize(), cfg.PlaceholderCap)
				printResults(l.Results)
				return nil
			}

			if watch {
				return watchFile(path, reload)
			}
			return reload()
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "re-load and re-evaluate every time the file changes")
	return cmd
}
