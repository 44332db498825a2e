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
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Global flags shared by every subcommand.
var (
	configFile string
	logLevel   string

	cfg    Config
	logger *zap.Logger
)

// NewRootCmd builds the eslk CLI's root command: a BAT file is loaded and
// its queries answered by one of load, query or believe, each configured by
// the same YAML-file-plus-flags layering (cmd/eslk/config.go).
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eslk",
		Short: "eslk answers limited-belief entailment queries over a basic action theory",
		Long: `eslk loads a textual basic-action-theory file (sorts, names, predicates,
static and boxed clauses, belief conditionals, action sequences and
queries) and answers each query as yes, no, or unknown at a given split
budget.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			cfg = loaded

			zc := zap.NewProductionConfig()
			level, err := zapcore.ParseLevel(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("eslk: invalid log level %q: %w", cfg.LogLevel, err)
			}
			zc.Level = zap.NewAtomicLevelAt(level)
			l, err := zc.Build()
			if err != nil {
				return fmt.Errorf("eslk: building logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "optional YAML config file (split-budget, cnf, placeholder-cap, log-level)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "zap log level: debug, info, warn, error")
	cmd.PersistentFlags().Int("split-budget", 0, "default split budget k for queries that do not name their own (0 keeps the config default)")
	cmd.PersistentFlags().Bool("cnf", false, "CNF toggle; stored in the loaded config but not read by any subcommand (modal-free formulas are always clausified)")
	cmd.PersistentFlags().Int("placeholder-cap", 0, "warn if the grounded Herbrand universe exceeds this many names (0 keeps the config default)")

	cmd.AddCommand(newLoadCmd())
	cmd.AddCommand(newQueryCmd())
	cmd.AddCommand(newBelieveCmd())

	return cmd
}
