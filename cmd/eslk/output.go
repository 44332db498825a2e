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

	"github.com/lakemeyer-levesque/eslk/bat"
)

func printResults(results []bat.QueryResult) {
	for _, r := range results {
		fmt.Printf("%s  @ k=%d  =>  %s\n", r.Source, r.K, r.Result)
	}
}

func warnPlaceholderCap(hplusSize, cap int) {
	if cap > 0 && hplusSize > cap {
		fmt.Printf("warning: grounded Herbrand universe has %d names, past the configured cap of %d\n", hplusSize, cap)
	}
}
