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
    `github.com/oleiade/lane`
    `github.com/rill-lang/rill/internal/abs`
    `github.com/rill-lang/rill/internal/cfg`
)

// PhiSites computes, for every temporary, the set of blocks that need a
// phi for it: the iterated dominance frontier of its definition sites.
// A temporary whose definition blocks all have an empty frontier gets an
// empty set.
func PhiSites(t *Tree, defs map[abs.Temp][]abs.Label) map[abs.Temp]cfg.LabelSet {
    ret := make(map[abs.Temp]cfg.LabelSet, len(defs))

    /* one worklist pass per temporary */
    for r, dd := range defs {
        q := lane.NewQueue()
        sites := make(cfg.LabelSet)
        seen := make(cfg.LabelSet)

        /* seed with the definition blocks */
        for _, v := range dd {
            if !seen.Contains(v) {
                seen.Add(v)
                q.Enqueue(v)
            }
        }

        /* expand until the frontier closure stabilizes */
        for !q.Empty() {
            v := q.Dequeue().(abs.Label)
            for _, w := range t.Frontier[v].Sorted() {
                if !sites.Contains(w) {
                    sites.Add(w)
                    if !seen.Contains(w) {
                        seen.Add(w)
                        q.Enqueue(w)
                    }
                }
            }
        }

        ret[r] = sites
    }

    return ret
}
