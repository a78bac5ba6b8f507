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

package liveness

import (
    `sort`
    `strconv`
    `strings`
)

// VertexSet is a set of allocation vertices (see the conv package for the
// vertex encoding).
type VertexSet map[int]struct{}

func vertexset(vv ...int) VertexSet {
    s := make(VertexSet, len(vv))
    for _, v := range vv {
        s.Add(v)
    }
    return s
}

func (self VertexSet) Add(v int) {
    self[v] = struct{}{}
}

func (self VertexSet) Remove(v int) {
    delete(self, v)
}

func (self VertexSet) Contains(v int) bool {
    _, ok := self[v]
    return ok
}

func (self VertexSet) Clone() VertexSet {
    r := make(VertexSet, len(self))
    for v := range self {
        r.Add(v)
    }
    return r
}

// Union adds every member of that and reports whether the receiver grew.
func (self VertexSet) Union(that VertexSet) bool {
    n := len(self)
    for v := range that {
        self.Add(v)
    }
    return len(self) != n
}

func (self VertexSet) Sorted() []int {
    r := make([]int, 0, len(self))
    for v := range self {
        r = append(r, v)
    }
    sort.Ints(r)
    return r
}

func (self VertexSet) Equal(that VertexSet) bool {
    if len(self) != len(that) {
        return false
    }
    for v := range self {
        if !that.Contains(v) {
            return false
        }
    }
    return true
}

func (self VertexSet) String() string {
    nb := make([]string, 0, len(self))
    for _, v := range self.Sorted() {
        nb = append(nb, strconv.Itoa(v))
    }
    return "{" + strings.Join(nb, ", ") + "}"
}
