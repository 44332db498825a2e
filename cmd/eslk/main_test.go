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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// TestQueryCmdAnswersSplitScenario mirrors bat/loader_test.go's
// forward-action split scenario, but driven end to end through the
// command line: a BAT file on disk, the ad hoc query subcommand, and the
// printed yes/no/unknown line.
func TestQueryCmdAnswersSplitScenario(t *testing.T) {
	src := `
sort action
sort idx

name f : action
name i1, i2, i3 : idx

pred D(idx)

static: D(i1) | D(i2)
static: ~D(i1) | D(i3)

box: ~D(X) | D(X) @ [A]
box: D(X) | ~D(X) @ [A]

actions: [f]
`
	dir := t.TempDir()
	path := filepath.Join(dir, "theory.bat")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("writing theory file: %v", err)
	}

	runQuery := func(k string) string {
		old := os.Stdout
		r, w, err := os.Pipe()
		if err != nil {
			t.Fatalf("creating pipe: %v", err)
		}
		os.Stdout = w

		cfg = defaultConfig()
		logger = zap.NewNop()
		cmd := NewRootCmd()
		cmd.SetArgs([]string{"query", path, "D(i2) @ [f] | D(i3) @ [f]", "--k", k})
		if err := cmd.Execute(); err != nil {
			w.Close()
			os.Stdout = old
			t.Fatalf("executing query command at k=%s: %v", k, err)
		}

		w.Close()
		os.Stdout = old
		buf := make([]byte, 4096)
		n, _ := r.Read(buf)
		return string(buf[:n])
	}

	out0 := runQuery("0")
	if strings.Contains(out0, "yes") {
		t.Fatalf("expected k=0 query to not be yes, got: %s", out0)
	}

	out1 := runQuery("1")
	if !strings.Contains(out1, "yes") {
		t.Fatalf("expected k=1 query to be yes, got: %s", out1)
	}
}

// TestBelieveCmdRoutesConditional confirms the believe subcommand reaches
// belief.Setups.EntailsConditional for a file-declared plausibility
// ranking.
func TestBelieveCmdRoutesConditional(t *testing.T) {
	src := `
sort idx
name r1, l1 : idx

pred R1(idx)
pred L1(idx)

believe: ~L1(r1) => R1(r1) at 0
`
	dir := t.TempDir()
	path := filepath.Join(dir, "belief.bat")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("writing theory file: %v", err)
	}

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("creating pipe: %v", err)
	}
	os.Stdout = w

	cfg = defaultConfig()
	logger = zap.NewNop()
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"believe", path, "~L1(r1)", "R1(r1)", "--k", "0"})
	if err := cmd.Execute(); err != nil {
		w.Close()
		os.Stdout = old
		t.Fatalf("executing believe command: %v", err)
	}

	w.Close()
	os.Stdout = old
	buf := make([]byte, 4096)
	n, _ := r.Read(buf)
	out := string(buf[:n])
	if !strings.Contains(out, "yes") {
		t.Fatalf("expected the conditional to be believed, got: %s", out)
	}
}
