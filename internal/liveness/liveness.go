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

/** Liveness is the classic backward may-analysis over program lines. The
 *  solver is a worklist fixpoint: lines are seeded in reverse program
 *  order so that one sweep already propagates most facts, and only the
 *  predecessors of a changed line are revisited afterwards.
 */

package liveness

import (
    `fmt`

    `github.com/oleiade/lane`
    `github.com/rill-lang/rill/internal/abs`
    `github.com/rill-lang/rill/internal/conv`
)

// MalformedProgram occurs when the line sequence cannot be analyzed, for
// instance when a branch names a label no line opens.
type MalformedProgram struct {
    Label  abs.Label
    Reason string
}

func (self MalformedProgram) Error() string {
    return fmt.Sprintf("MalformedProgram: %s (label %s)", self.Reason, self.Label)
}

// Info is the result of the analysis: per-line live-in and live-out sets
// over allocation vertices, plus the per-line transfer sets they were
// computed from.
type Info struct {
    Lines []conv.Line
    In    []VertexSet
    Out   []VertexSet
    gen   []VertexSet
    kill  []VertexSet
    succ  [][]int
    rf    *abs.RegFile
}

// Analyze computes liveness for a linear program. Conditional branches
// propagate from both targets, returns end every path, and meta lines are
// transparent.
func Analyze(lines []conv.Line, rf *abs.RegFile) (*Info, error) {
    lv := &Info {
        Lines : lines,
        In    : make([]VertexSet, len(lines)),
        Out   : make([]VertexSet, len(lines)),
        gen   : make([]VertexSet, len(lines)),
        kill  : make([]VertexSet, len(lines)),
        succ  : make([][]int, len(lines)),
        rf    : rf,
    }

    /* derive the line graph, then solve */
    if err := lv.successors(); err != nil {
        return nil, err
    } else {
        lv.transfer()
        lv.solve()
        return lv, nil
    }
}

func (self *Info) successors() error {
    at := make(map[abs.Label]int, len(self.Lines))

    /* index the label lines */
    for i, ln := range self.Lines {
        if v, ok := ln.Label(); ok {
            if _, dup := at[v]; dup {
                return MalformedProgram { Label: v, Reason: "duplicate label" }
            }
            at[v] = i
        }
    }

    /* control either falls through or names explicit targets */
    for i, ln := range self.Lines {
        if ln.Falls() && i + 1 < len(self.Lines) {
            self.succ[i] = append(self.succ[i], i + 1)
        }
        for _, v := range ln.Targets() {
            if j, ok := at[v]; ok {
                self.succ[i] = append(self.succ[i], j)
            } else {
                return MalformedProgram { Label: v, Reason: "branch to unknown label" }
            }
        }
    }

    return nil
}

func (self *Info) transfer() {
    for i, ln := range self.Lines {
        gen := make(VertexSet)
        kill := make(VertexSet)

        /* reads generate liveness */
        for _, op := range ln.Uses() {
            if op.IsAllocatable() {
                gen.Add(conv.Encode(op, self.rf))
            }
        }

        /* writes kill it, unless the same vertex is also read */
        for _, op := range ln.Defs() {
            if op.IsAllocatable() {
                if v := conv.Encode(op, self.rf); !gen.Contains(v) {
                    kill.Add(v)
                }
            }
        }

        self.gen[i] = gen
        self.kill[i] = kill
        self.In[i] = gen.Clone()
        self.Out[i] = make(VertexSet)
    }
}

func (self *Info) solve() {
    q := lane.NewDeque()
    on := make([]bool, len(self.Lines))
    pred := make([][]int, len(self.Lines))

    /* invert the successor relation */
    for i, ss := range self.succ {
        for _, j := range ss {
            pred[j] = append(pred[j], i)
        }
    }

    /* seed in reverse program order */
    for i := len(self.Lines) - 1; i >= 0; i-- {
        on[i] = true
        q.Append(i)
    }

    /* iterate to the fixpoint */
    for !q.Empty() {
        i, _ := q.Shift().(int)
        on[i] = false

        /* out is the union of the successor ins */
        out := make(VertexSet)
        for _, j := range self.succ[i] {
            out.Union(self.In[j])
        }

        /* in is gen plus whatever flows past the kills */
        in := self.gen[i].Clone()
        for v := range out {
            if !self.kill[i].Contains(v) {
                in.Add(v)
            }
        }

        /* revisit the predecessors on change */
        self.Out[i] = out
        if !in.Equal(self.In[i]) {
            self.In[i] = in
            for _, p := range pred[i] {
                if !on[p] {
                    on[p] = true
                    q.Append(p)
                }
            }
        }
    }
}

// Len returns the number of analyzed lines.
func (self *Info) Len() int {
    return len(self.Lines)
}

// LiveIn returns the vertices live just before line i.
func (self *Info) LiveIn(i int) VertexSet {
    return self.In[i]
}

// LiveOut returns the vertices live just after line i.
func (self *Info) LiveOut(i int) VertexSet {
    return self.Out[i]
}

// LiveOutOf is LiveOut in the sorted slice form the allocator consumes.
func (self *Info) LiveOutOf(i int) []int {
    return self.Out[i].Sorted()
}

// UsesOf returns the encoded allocatable reads of line i.
func (self *Info) UsesOf(i int) []int {
    return self.gen[i].Sorted()
}

// DefsOf returns the encoded allocatable writes of line i.
func (self *Info) DefsOf(i int) []int {
    dd := make(VertexSet)
    for _, op := range self.Lines[i].Defs() {
        if op.IsAllocatable() {
            dd.Add(conv.Encode(op, self.rf))
        }
    }
    return dd.Sorted()
}
