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

// SimplicialOrder computes a maximum cardinality search order of the
// graph: each step picks the vertex with the most already-ordered
// neighbours. On chordal graphs (which interference graphs of programs in
// SSA-like form are close to) the result is a simplicial elimination
// order, which greedy coloring handles optimally.
//
// Ties break toward the smaller vertex, the order is deterministic.
func (self *Graph) SimplicialOrder() []int {
    wt := make(map[int]int, len(self.order))
    done := make(map[int]bool, len(self.order))
    ret := make([]int, 0, len(self.order))

    for v := range self.adj {
        wt[v] = 0
    }

    for len(ret) < len(self.order) {
        best := -1
        have := false

        /* maximum weight, smallest vertex on ties */
        for _, v := range self.order {
            if !done[v] {
                if !have || wt[v] > wt[best] || wt[v] == wt[best] && v < best {
                    best = v
                    have = true
                }
            }
        }

        /* bump the unordered neighbours */
        done[best] = true
        ret = append(ret, best)
        for u := range self.adj[best] {
            if !done[u] {
                wt[u]++
            }
        }
    }

    return ret
}
