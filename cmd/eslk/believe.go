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

	"github.com/spf13/cobra"

	"github.com/lakemeyer-levesque/eslk/bat"
	"github.com/lakemeyer-levesque/eslk/clause"
)

// newBelieveCmd loads a BAT file, then decides one ad hoc conditional
// belief query neg_phi => psi at split depth k against the plausibility
// ranking the file's "believe" statements built (spec.md 4.5).
func newBelieveCmd() *cobra.Command {
	var k int

	cmd := &cobra.Command{
		Use:   "believe <file> <neg_phi> <psi>",
		Short: "decide a conditional belief query against a loaded BAT file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, negPhiSrc, psiSrc := args[0], args[1], args[2]

			l := bat.NewLoader(logger)
			if err := l.LoadFile(path); err != nil {
				return err
			}
			warnPlaceholderCap(l.Engine.HPlusSize(), cfg.PlaceholderCap)

			negPhiLits, err := l.ParseDisjunction("neg_phi", negPhiSrc)
			if err != nil {
				return fmt.Errorf("eslk: parsing neg_phi: %w", err)
			}
			psiLits, err := l.ParseDisjunction("psi", psiSrc)
			if err != nil {
				return fmt.Errorf("eslk: parsing psi: %w", err)
			}

			kk := k
			if !cmd.Flags().Changed("k") {
				kk = cfg.SplitBudget
			}

			yes := l.Engine.EntailsConditionalBelief(clause.New(nil, negPhiLits...), clause.New(nil, psiLits...), kk)
			verdict := "no"
			if yes {
				verdict = "yes"
			}
			fmt.Printf("%s => %s  @ k=%d  =>  %s\n", negPhiSrc, psiSrc, kk, verdict)
			return nil
		},
	}

	cmd.Flags().IntVar(&k, "k", 0, "split budget (default: config split-budget)")
	return cmd
}
