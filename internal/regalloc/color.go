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

package regalloc

import (
    `github.com/rill-lang/rill/internal/abs`
    `github.com/rill-lang/rill/internal/conv`
    `github.com/rill-lang/rill/internal/liveness`
)

// Result maps every allocation vertex to its final index: below rf.Regs
// it is a machine register, at or above it is a spill slot.
type Result struct {
    Assign map[int]int
    rf     *abs.RegFile
}

// IsSpilled reports whether the vertex ended up on the stack.
func (self *Result) IsSpilled(v int) bool {
    return self.Assign[v] >= self.rf.Regs
}

// RegOf returns the register index assigned to v.
func (self *Result) RegOf(v int) int {
    if self.IsSpilled(v) {
        panic("regalloc: vertex is spilled: " + conv.VertexName(v, self.rf))
    }
    return self.Assign[v]
}

// OffsetOf returns the frame offset of a spilled vertex.
func (self *Result) OffsetOf(v int) int {
    return self.rf.SpillOffset(self.Assign[v])
}

// NumSpills counts the vertices that went to the stack.
func (self *Result) NumSpills() int {
    n := 0
    for _, c := range self.Assign {
        if c >= self.rf.Regs {
            n++
        }
    }
    return n
}

// Color assigns an index to every vertex of the graph in the given order.
// Hard registers keep their own index. Temps take the smallest index that
// no neighbour holds and that is not a special-use register; if every
// register is blocked the index runs past the register file and becomes a
// spill slot.
func (self *Graph) Color(order []int) *Result {
    ret := &Result {
        rf     : self.rf,
        Assign : make(map[int]int, len(order)),
    }

    /* hard registers are their own color */
    for _, v := range order {
        if conv.IsReg(v, self.rf) {
            ret.Assign[v] = v
        }
    }

    /* greedy pass over the remaining vertices */
    for _, v := range order {
        if conv.IsReg(v, self.rf) {
            continue
        }

        /* everything the neighbours pin down */
        used := make(liveness.VertexSet)
        for u := range self.adj[v] {
            if c, ok := ret.Assign[u]; ok {
                used.Add(c)
            }
        }

        /* smallest index that is neither taken nor reserved */
        c := 0
        for used.Contains(c) || c < self.rf.Regs && self.rf.SpecialUse(c) {
            c++
        }
        ret.Assign[v] = c
    }

    return ret
}
