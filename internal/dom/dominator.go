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

/** Immediate dominators are computed with the fixpoint of Cooper, Harvey
 *  and Kennedy, "A Simple, Fast Dominance Algorithm"; the two-finger
 *  intersection walks the partially built idom chain keyed by reverse
 *  postorder numbers.
 */

package dom

import (
    `fmt`
    `sort`

    `github.com/rill-lang/rill/internal/abs`
    `github.com/rill-lang/rill/internal/cfg`
)

// Tree is the dominator structure of one function: immediate dominators,
// the dominator tree itself, and per-block dominance frontiers.
type Tree struct {
    Root     abs.Label
    RPO      []abs.Label
    Idom     map[abs.Label]abs.Label
    Children map[abs.Label][]abs.Label
    Frontier map[abs.Label]cfg.LabelSet
    index    map[abs.Label]int
}

// UnreachableAssumption occurs when dominator information is requested
// for a block the entry cannot reach.
type UnreachableAssumption struct {
    Label abs.Label
}

func (self UnreachableAssumption) Error() string {
    return fmt.Sprintf("UnreachableAssumption: %s is not reachable from entry", self.Label)
}

// Build computes the dominator tree of the graph. Unreachable blocks get
// no idom entry and an empty frontier; they never appear in the tree.
func Build(g *cfg.Graph, em *cfg.EdgeMaps) *Tree {
    t := &Tree {
        Root     : g.Entry,
        RPO      : cfg.ReversePostorder(em, g.Entry),
        Idom     : make(map[abs.Label]abs.Label, len(g.Blocks)),
        Children : make(map[abs.Label][]abs.Label, len(g.Blocks)),
        Frontier : make(map[abs.Label]cfg.LabelSet, len(g.Blocks)),
        index    : make(map[abs.Label]int, len(g.Blocks)),
    }

    /* number the reachable blocks in reverse postorder */
    for i, v := range t.RPO {
        t.index[v] = i
    }

    /* the entry dominates itself */
    t.Idom[g.Entry] = g.Entry
    t.fixpoint(em)
    t.frontiers(g, em)
    t.children()
    return t
}

func (self *Tree) fixpoint(em *cfg.EdgeMaps) {
    for next := true; next; {
        next = false

        /* one sweep in reverse postorder, skipping the entry */
        for _, n := range self.RPO[1:] {
            idom := abs.Label{}
            have := false

            /* fold the processed predecessors with the two-finger walk */
            for _, p := range em.Pred[n].Sorted() {
                if _, ok := self.Idom[p]; !ok {
                    continue
                } else if !have {
                    idom, have = p, true
                } else {
                    idom = self.intersect(p, idom)
                }
            }

            /* reachable nodes always have a processed predecessor by
             * reverse postorder */
            if !have {
                panic(fmt.Sprintf("dom: no processed predecessor for %s", n))
            }

            /* record if changed */
            if v, ok := self.Idom[n]; !ok || v != idom {
                self.Idom[n] = idom
                next = true
            }
        }
    }
}

func (self *Tree) intersect(b1 abs.Label, b2 abs.Label) abs.Label {
    for b1 != b2 {
        for self.index[b1] > self.index[b2] {
            b1 = self.Idom[b1]
        }
        for self.index[b2] > self.index[b1] {
            b2 = self.Idom[b2]
        }
    }
    return b1
}

func (self *Tree) frontiers(g *cfg.Graph, em *cfg.EdgeMaps) {
    /* every block keys the map, unreachable ones stay empty */
    for v := range g.Blocks {
        self.Frontier[v] = make(cfg.LabelSet)
    }

    /* walk up from every predecessor of a join point */
    for _, n := range self.RPO {
        if len(em.Pred[n]) < 2 {
            continue
        }
        for _, p := range em.Pred[n].Sorted() {
            if _, ok := self.Idom[p]; !ok {
                continue
            }
            for r := p; r != self.Idom[n]; r = self.Idom[r] {
                self.Frontier[r].Add(n)
            }
        }
    }
}

func (self *Tree) children() {
    for _, n := range self.RPO {
        if p := self.Idom[n]; p != n {
            self.Children[p] = append(self.Children[p], n)
        }
    }

    /* deterministic child order */
    for _, cc := range self.Children {
        sort.Slice(cc, func(i int, j int) bool { return cc[i].Less(cc[j]) })
    }
}

// IdomOf returns the immediate dominator of v.
func (self *Tree) IdomOf(v abs.Label) (abs.Label, error) {
    if p, ok := self.Idom[v]; ok {
        return p, nil
    }
    return abs.Label{}, UnreachableAssumption { Label: v }
}

// Dominates reports whether a dominates b, walking the idom chain of b.
func (self *Tree) Dominates(a abs.Label, b abs.Label) bool {
    if _, ok := self.Idom[b]; !ok {
        return false
    }
    for {
        if a == b {
            return true
        }
        p := self.Idom[b]
        if p == b {
            return false
        }
        b = p
    }
}
