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

package cfg

import (
    `fmt`

    `github.com/oleiade/lane`
    `github.com/rill-lang/rill/internal/abs`
)

// EdgeMaps carries the successor and predecessor relations of a graph.
// The two maps are mutual inverses and key every block label, possibly
// with an empty set.
type EdgeMaps struct {
    Succ map[abs.Label]LabelSet
    Pred map[abs.Label]LabelSet
}

func newEdgeMaps(g *Graph) *EdgeMaps {
    em := &EdgeMaps {
        Succ: make(map[abs.Label]LabelSet, len(g.Blocks)),
        Pred: make(map[abs.Label]LabelSet, len(g.Blocks)),
    }
    for v := range g.Blocks {
        em.Succ[v] = make(LabelSet)
        em.Pred[v] = make(LabelSet)
    }
    return em
}

func (self *EdgeMaps) addEdge(from abs.Label, to abs.Label) {
    self.Succ[from].Add(to)
    self.Pred[to].Add(from)
}

func (self *EdgeMaps) removeEdge(from abs.Label, to abs.Label) {
    self.Succ[from].Remove(to)
    self.Pred[to].Remove(from)
}

// BuildEdges derives the edge maps from the block terminators. Blocks
// ending in a return flow into the exit block.
func BuildEdges(g *Graph) (*EdgeMaps, error) {
    em := newEdgeMaps(g)

    /* add the edges implied by every terminator */
    for v, b := range g.Blocks {
        t := b.Term()

        /* returns transfer to the exit block */
        if t.IsReturn() {
            if v != g.Exit {
                em.addEdge(v, g.Exit)
            }
            continue
        }

        /* everything else must be an explicit jump */
        if !abs.IsControl(t) {
            return nil, MalformedCFG { Label: v, Reason: "block does not terminate" }
        }

        /* add one edge per target */
        for _, w := range t.Targets() {
            if _, ok := g.Blocks[w]; !ok {
                return nil, MalformedCFG { Label: w, Reason: "dangling jump target" }
            }
            em.addEdge(v, w)
        }
    }

    return em, nil
}

// IsCriticalEdge reports whether (u, v) is a critical edge: u has several
// successors and v several predecessors.
func IsCriticalEdge(u abs.Label, v abs.Label, em *EdgeMaps) bool {
    return len(em.Succ[u]) >= 2 && len(em.Pred[v]) >= 2
}

// SplitEdge interposes a fresh block on the edge (u, v), rewriting the
// terminator of u to target the new block. The edge must exist.
func SplitEdge(u abs.Label, v abs.Label, g *Graph, em *EdgeMaps) error {
    bu := g.Blocks[u]

    /* the edge must be present */
    if bu == nil || !em.Succ[u].Contains(v) {
        return NoSuchEdge { From: u, To: v }
    }

    /* mint the intermediate block */
    m := g.labels.Fresh("split")
    bm := &Block {
        Label : m,
        Ins   : []abs.Instr { g.fac.MakeLabel(m), g.fac.MakeJump(v) },
    }

    /* redirect the terminator of u */
    t := bu.Term()
    r := abs.ReplaceTarget(t, v, m)

    /* a return edge carries no rewritable target */
    if r == t {
        panic(fmt.Sprintf("cfg: terminator of %s does not target %s", u, v))
    }

    /* commit the rewrite */
    bu.Ins[len(bu.Ins) - 1] = r
    g.Blocks[m] = bm

    /* update the edge maps */
    em.Succ[m] = make(LabelSet)
    em.Pred[m] = make(LabelSet)
    em.removeEdge(u, v)
    em.addEdge(u, m)
    em.addEdge(m, v)
    return nil
}

type _CrEdge struct {
    from abs.Label
    to   abs.Label
}

// SplitCritical splits every critical edge of the graph (those that go
// from a block with more than one outedge to a block with more than one
// inedge) by inserting an empty block. Phi deconstruction wants a
// critical-edge-free CFG so that the copies it introduces execute on one
// edge only. Applying the pass twice yields the same graph modulo the
// identity of the fresh labels.
func SplitCritical(g *Graph, em *EdgeMaps) (int, error) {
    var edges []_CrEdge

    /* collect first: splitting mutates the maps being iterated */
    for _, u := range g.Labels() {
        for _, v := range em.Succ[u].Sorted() {
            if IsCriticalEdge(u, v, em) {
                edges = append(edges, _CrEdge { from: u, to: v })
            }
        }
    }

    /* split them all */
    for _, e := range edges {
        if err := SplitEdge(e.from, e.to, g, em); err != nil {
            return 0, err
        }
    }

    return len(edges), nil
}

// Prune removes every block not reachable from the entry block, both from
// the graph and from the edge maps.
func Prune(g *Graph, em *EdgeMaps) {
    q := lane.NewQueue()
    live := labelset(g.Entry)

    /* breadth-first reachability */
    for q.Enqueue(g.Entry); !q.Empty(); {
        u := q.Dequeue().(abs.Label)
        for _, v := range em.Succ[u].Sorted() {
            if !live.Contains(v) {
                live.Add(v)
                q.Enqueue(v)
            }
        }
    }

    /* drop the dead blocks */
    for v := range g.Blocks {
        if !live.Contains(v) {
            delete(g.Blocks, v)
            delete(em.Succ, v)
            delete(em.Pred, v)
        }
    }

    /* dead predecessors may still be recorded on live blocks */
    for v := range em.Pred {
        for _, u := range em.Pred[v].Sorted() {
            if !live.Contains(u) {
                em.Pred[v].Remove(u)
            }
        }
    }
}
