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

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds the ambient knobs SPEC_FULL.md 2 assigns to the CLI: the
// default split budget a query runs at when a subcommand's --k flag is not
// given, a CNF toggle (loaded and kept here, but no subcommand reads it),
// the warning threshold on the size of the grounded Herbrand universe, and
// the zap log level. It is loaded from an optional YAML file and then
// overridden by whatever flags the invoked subcommand actually defines.
type Config struct {
	SplitBudget    int    `koanf:"split-budget"`
	CNF            bool   `koanf:"cnf"`
	PlaceholderCap int    `koanf:"placeholder-cap"`
	LogLevel       string `koanf:"log-level"`
}

func defaultConfig() Config {
	return Config{
		SplitBudget:    1,
		CNF:            false,
		PlaceholderCap: 10000,
		LogLevel:       "info",
	}
}

// loadConfig merges, in increasing precedence: built-in defaults, an
// optional YAML file at path (skipped entirely if path is empty), and
// whatever flags were actually set on flags.
func loadConfig(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")
	cfg := defaultConfig()
	defaults := map[string]interface{}{
		"split-budget":    cfg.SplitBudget,
		"cnf":             cfg.CNF,
		"placeholder-cap": cfg.PlaceholderCap,
		"log-level":       cfg.LogLevel,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return Config{}, fmt.Errorf("eslk: loading built-in defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("eslk: reading config file %s: %w", path, err)
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Config{}, fmt.Errorf("eslk: applying flag overrides: %w", err)
		}
	}

	var out Config
	if err := k.Unmarshal("", &out); err != nil {
		return Config{}, fmt.Errorf("eslk: unmarshalling config: %w", err)
	}
	return out, nil
}
