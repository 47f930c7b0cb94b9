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

var cmdStats = &cobra.Command{
	Use:   "stats",
	Short: "Fill a Map, delete a fraction of it, shrink, and report before/after stats",
	Long: `
The "stats" command inserts --count sequential integer keys into a fresh
OrderedMap, deletes --delete-fraction of them, calls Shrink, and prints
the table's capacity and occupancy before and after.

EXIT STATUS
===========

Exit status is 0 if the command was successful, and non-zero if there was
any error.
`,
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStats(statsOptions.Count, statsOptions.DeleteFraction)
	},
}

// StatsOptions bundles all options for the stats command.
type StatsOptions struct {
	Count          int
	DeleteFraction float64
}

var statsOptions StatsOptions

func init() {
	cmdRoot.AddCommand(cmdStats)

	f := cmdStats.Flags()
	f.IntVar(&statsOptions.Count, "count", 1000, "number of sequential keys to insert")
	f.Float64Var(&statsOptions.DeleteFraction, "delete-fraction", 0.9, "fraction of inserted keys to delete before shrinking")
}

func printStats(label string, s ordhash.Stats) {
	fmt.Printf("%-6s large=%-5v capacity=%-6d buckets=%-6d elements=%-6d deleted=%-6d used=%d\n",
		label, s.Large, s.Capacity, s.NumBuckets, s.NumElements, s.NumDeleted, s.UsedCapacity)
}

func runStats(count int, deleteFraction float64) error {
	m, err := ordhash.NewMap[int, int](0)
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		if err := m.Put(i, i); err != nil {
			return err
		}
	}
	printStats("before", m.Stats())

	toDelete := int(float64(count) * deleteFraction)
	log.Debugf("deleting %d of %d keys", toDelete, count)
	for i := 0; i < toDelete; i++ {
		m.Delete(i)
	}
	printStats("thinned", m.Stats())

	if err := m.Shrink(); err != nil {
		return err
	}
	printStats("after", m.Stats())
	return nil
}
