/*
 * Copyright 2026 Rill Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package dom

import (
    `github.com/rill-lang/rill/internal/abs`
)

// Grouping is the integer-numbered view of a linear program: statements
// grouped by the label that opens their block. It is the entry point used
// when the caller has not built a full Graph yet.
type Grouping struct {
    Order  []int
    Number map[abs.Label]int
    Blocks map[int][]abs.Instr
}

// Block numbers of the two synthetic blocks.
const (
    GroupEntry = abs.EntryId
    GroupExit  = abs.ExitId
)

// GroupBlocks partitions a linear instruction sequence into numbered
// statement groups. Real blocks are numbered from 0 in order of
// appearance; the synthetic entry and exit groups are -2 and -1 and stay
// empty. Statements before the first label fall into the entry group.
func GroupBlocks(ins []abs.Instr) *Grouping {
    g := &Grouping {
        Order  : []int { GroupEntry, GroupExit },
        Number : map[abs.Label]int { abs.Entry: GroupEntry, abs.Exit: GroupExit },
        Blocks : map[int][]abs.Instr { GroupEntry: nil, GroupExit: nil },
    }

    /* number the groups as labels appear */
    cur := GroupEntry
    next := 0
    for _, p := range ins {
        if v, ok := abs.LabelOf(p); ok {
            cur = next
            next++
            g.Order = append(g.Order, cur)
            g.Number[v] = cur
        }
        g.Blocks[cur] = append(g.Blocks[cur], p)
    }

    return g
}
