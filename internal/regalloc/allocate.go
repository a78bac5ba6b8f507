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
    `github.com/rill-lang/rill/internal/opts`
)

// liveness is consumed through this narrow view so that tests can feed
// hand-built facts without running the analyzer.
type Liveness interface {
    Len() int
    UsesOf(i int) []int
    DefsOf(i int) []int
    LiveOutOf(i int) []int
}

// Build constructs the interference graph from per-line liveness facts.
// At every line each written vertex conflicts with the other writes of
// the same line, with the reads of the line, and with everything live
// after it. Vertices that never conflict still enter the graph.
func Build(lv Liveness, rf *abs.RegFile) *Graph {
    g := NewGraph(rf)

    for i := 0; i < lv.Len(); i++ {
        uses := lv.UsesOf(i)
        defs := lv.DefsOf(i)
        outs := lv.LiveOutOf(i)

        /* every vertex the line touches is allocated something */
        for _, v := range uses {
            g.AddVertex(v)
        }
        for _, v := range defs {
            g.AddVertex(v)
        }
        for _, v := range outs {
            g.AddVertex(v)
        }

        /* conflicts radiate from the definitions */
        for _, d := range defs {
            for _, e := range defs {
                g.AddEdge(d, e)
            }
            for _, u := range uses {
                g.AddEdge(d, u)
            }
            for _, o := range outs {
                g.AddEdge(d, o)
            }
        }
    }

    return g
}

// Allocate colors the interference graph of a function. Functions with
// more vertices than the spill threshold skip coloring entirely, every
// temp gets its own stack slot and only the hard registers stay in
// registers.
func Allocate(lv Liveness, rf *abs.RegFile, o *opts.Options) *Result {
    vv := touchedVertices(lv)

    /* huge functions are not worth the quadratic search, and the
     * interference graph itself is never built for them */
    if o.ShouldSpillAll(len(vv)) {
        return spillAll(vv, rf)
    }

    g := Build(lv, rf)
    return g.Color(g.SimplicialOrder())
}

func touchedVertices(lv Liveness) []int {
    var ret []int
    seen := make(map[int]bool)

    /* first-appearance order over the whole program */
    for i := 0; i < lv.Len(); i++ {
        for _, v := range lv.UsesOf(i) {
            if !seen[v] {
                seen[v] = true
                ret = append(ret, v)
            }
        }
        for _, v := range lv.DefsOf(i) {
            if !seen[v] {
                seen[v] = true
                ret = append(ret, v)
            }
        }
    }

    return ret
}

func spillAll(vv []int, rf *abs.RegFile) *Result {
    ret := &Result {
        rf     : rf,
        Assign : make(map[int]int, len(vv)),
    }

    /* distinct slots in first-appearance order, registers keep themselves */
    next := rf.Regs
    for _, v := range vv {
        if conv.IsReg(v, rf) {
            ret.Assign[v] = v
        } else {
            ret.Assign[v] = next
            next++
        }
    }

    return ret
}
