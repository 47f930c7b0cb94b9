// Copyright 2026 The ordhash Authors
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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gohashkit/ordhash"
)

var cmdDemo = &cobra.Command{
	Use:   "demo",
	Short: "Add keys to a Set and report the small-to-large promotion point",
	Long: `
The "demo" command adds --count sequential integer keys to a fresh
OrderedSet one at a time, logging the moment the set promotes from the
small form to the large form, then prints the final insertion-order
snapshot.

EXIT STATUS
===========

Exit status is 0 if the command was successful, and non-zero if there was
any error.
`,
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(demoOptions.Count)
	},
}

// DemoOptions bundles all options for the demo command.
type DemoOptions struct {
	Count int
}

var demoOptions DemoOptions

func init() {
	cmdRoot.AddCommand(cmdDemo)

	f := cmdDemo.Flags()
	f.IntVar(&demoOptions.Count, "count", 300, "number of sequential keys to add")
}

func runDemo(count int) error {
	s, err := ordhash.NewSet[int](0)
	if err != nil {
		return err
	}

	wasLarge := false
	for i := 0; i < count; i++ {
		if err := s.Add(i); err != nil {
			return err
		}
		if stats := s.Stats(); stats.Large && !wasLarge {
			log.Infof("promoted to large form at element %d (capacity=%d)", i+1, stats.Capacity)
			wasLarge = true
		}
	}

	stats := s.Stats()
	fmt.Printf("elements=%d large=%v capacity=%d buckets=%d\n",
		stats.NumElements, stats.Large, stats.Capacity, stats.NumBuckets)

	first, last := -1, -1
	n := 0
	s.All(func(k int) bool {
		if n == 0 {
			first = k
		}
		last = k
		n++
		return true
	})
	fmt.Printf("iteration order: first=%d last=%d count=%d\n", first, last, n)
	return nil
}
