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
    `github.com/oleiade/lane`
    `github.com/rill-lang/rill/internal/abs`
)

type _PoFrame struct {
    node abs.Label
    next []abs.Label
}

// Postorder traverses the graph depth-first from the entry and emits each
// reachable label after all of its successors. Successors are explored in
// ascending label order, making the result deterministic. The walk keeps
// an explicit stack, block counts can exceed the goroutine stack.
func Postorder(em *EdgeMaps, entry abs.Label) []abs.Label {
    st := lane.NewStack()
    ret := make([]abs.Label, 0, len(em.Succ))
    vis := labelset(entry)

    /* depth-first with explicit frames */
    for st.Push(&_PoFrame { node: entry, next: em.Succ[entry].Sorted() }); !st.Empty(); {
        f := st.Head().(*_PoFrame)

        /* descend into the first unvisited successor */
        tail := true
        for len(f.next) != 0 {
            v := f.next[0]
            f.next = f.next[1:]

            /* push a frame for it */
            if !vis.Contains(v) {
                vis.Add(v)
                st.Push(&_PoFrame { node: v, next: em.Succ[v].Sorted() })
                tail = false
                break
            }
        }

        /* all successors done, emit the node */
        if tail {
            st.Pop()
            ret = append(ret, f.node)
        }
    }

    return ret
}

// ReversePostorder is Postorder read backwards; it is a topological order
// on the acyclic part of the graph and the iteration order the dominator
// fixpoint wants.
func ReversePostorder(em *EdgeMaps, entry abs.Label) []abs.Label {
    po := Postorder(em, entry)
    for i, j := 0, len(po) - 1; i < j; i, j = i + 1, j - 1 {
        po[i], po[j] = po[j], po[i]
    }
    return po
}
