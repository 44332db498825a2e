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
	"github.com/lakemeyer-levesque/eslk/query"
)

// newQueryCmd loads a BAT file for its sorts/names/predicates/axioms, then
// evaluates one ad hoc disjunction fragment supplied on the command line
// against the resulting engine at a given split budget k, printing yes,
// no, or unknown. --know wraps the fragment in K_k(.) instead of asking
// about it objectively.
func newQueryCmd() *cobra.Command {
	var k int
	var know bool

	cmd := &cobra.Command{
		Use:   "query <file> <formula>",
		Short: "evaluate an ad hoc formula against a loaded BAT file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, src := args[0], args[1]

			l := bat.NewLoader(logger)
			if err := l.LoadFile(path); err != nil {
				return err
			}
			warnPlaceholderCap(l.Engine.HPlusSize(), cfg.PlaceholderCap)

			lits, err := l.ParseDisjunction("query", src)
			if err != nil {
				return fmt.Errorf("eslk: parsing query formula: %w", err)
			}
			fs := make([]query.Formula, len(lits))
			for i, lit := range lits {
				fs[i] = query.LitF(lit)
			}
			f := query.OrF(fs...)

			kk := k
			if !cmd.Flags().Changed("k") {
				kk = cfg.SplitBudget
			}
			if know {
				f = query.KnowF(kk, f)
			}

			r, err := l.Engine.EntailsFormula(f, kk)
			if err != nil {
				return err
			}
			fmt.Printf("%s  @ k=%d  =>  %s\n", src, kk, r)
			return nil
		},
	}

	cmd.Flags().IntVar(&k, "k", 0, "split budget (default: config split-budget)")
	cmd.Flags().BoolVar(&know, "know", false, "wrap the formula in K_k(.) rather than asking objectively")

	return cmd
}
