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

package bat

import (
	"strings"
	"testing"

	"github.com/lakemeyer-levesque/eslk/kb"
)

// TestLoadStringResolvesAndAnswersSplitScenario mirrors kb/kb_test.go's
// forward-action splitting scenario but ingested as BAT source, to confirm
// the loader's symbol tables and "recover" step (the dlengine.Engine
// pattern it is grounded on) produce the same grounded theory as the
// hand-built Go calls.
func TestLoadStringResolvesAndAnswersSplitScenario(t *testing.T) {
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

query: D(i2) @ [f] | D(i3) @ [f] at 0
query: D(i2) @ [f] | D(i3) @ [f] at 1
`
	l := NewLoader(nil)
	if err := l.LoadString("split", src); err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	if len(l.Results) != 2 {
		t.Fatalf("expected 2 query results, got %d", len(l.Results))
	}
	if l.Results[0].Result == kb.Yes {
		t.Fatalf("expected k=0 query to not be Yes, got %v", l.Results[0].Result)
	}
	if l.Results[1].Result != kb.Yes {
		t.Fatalf("expected k=1 query to be Yes, got %v", l.Results[1].Result)
	}
}

// TestLoadStringAggregatesMalformedStatements confirms that multiple
// independently malformed statements are all reported in one returned
// error rather than stopping at the first (SPEC_FULL.md 10).
func TestLoadStringAggregatesMalformedStatements(t *testing.T) {
	src := `
sort idx
name i1 : idx
pred D(idx)

static: Missing(i1)
static: D(nosuchname)
`
	l := NewLoader(nil)
	err := l.LoadString("broken", src)
	if err == nil {
		t.Fatal("expected an aggregated error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "Missing") {
		t.Errorf("expected the undeclared-predicate error to be reported, got: %s", msg)
	}
	if !strings.Contains(msg, "nosuchname") {
		t.Errorf("expected the undeclared-name error to be reported, got: %s", msg)
	}
}
