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
    `fmt`
    `os`

    `github.com/rill-lang/rill/internal/abs`
    `github.com/rill-lang/rill/internal/conv`
    `github.com/rill-lang/rill/internal/liveness`
    `gonum.org/v1/gonum/graph/encoding/dot`
    `gonum.org/v1/gonum/graph/simple`
)

// Graph is an undirected interference graph over allocation vertices. The
// edge relation is symmetric and irreflexive; vertices keep their first
// insertion order so that traversals are deterministic.
type Graph struct {
    adj   map[int]liveness.VertexSet
    order []int
    rf    *abs.RegFile
}

func NewGraph(rf *abs.RegFile) *Graph {
    return &Graph {
        adj : make(map[int]liveness.VertexSet),
        rf  : rf,
    }
}

// AddVertex registers a vertex, possibly with no edges.
func (self *Graph) AddVertex(v int) {
    if _, ok := self.adj[v]; !ok {
        self.adj[v] = make(liveness.VertexSet)
        self.order = append(self.order, v)
    }
}

// AddEdge records that u and v interfere. Self-edges are ignored.
func (self *Graph) AddEdge(u int, v int) {
    if u != v {
        self.AddVertex(u)
        self.AddVertex(v)
        self.adj[u].Add(v)
        self.adj[v].Add(u)
    }
}

// Interferes reports whether u and v share an edge.
func (self *Graph) Interferes(u int, v int) bool {
    return self.adj[u].Contains(v)
}

// Adjacent returns the neighbour set of v.
func (self *Graph) Adjacent(v int) liveness.VertexSet {
    return self.adj[v]
}

func (self *Graph) Degree(v int) int {
    return len(self.adj[v])
}

// Vertices returns the vertices in insertion order.
func (self *Graph) Vertices() []int {
    return self.order
}

func (self *Graph) Len() int {
    return len(self.order)
}

type _DotNode struct {
    id   int64
    name string
}

func (self _DotNode) ID() int64      { return self.id }
func (self _DotNode) DOTID() string  { return self.name }

// Gonum converts the graph into a gonum undirected graph, mainly for
// export and debugging.
func (self *Graph) Gonum() *simple.UndirectedGraph {
    g := simple.NewUndirectedGraph()

    /* vertices first, isolated ones must survive */
    for _, v := range self.order {
        g.AddNode(_DotNode { id: int64(v), name: conv.VertexName(v, self.rf) })
    }

    /* one gonum edge per unordered pair */
    for _, u := range self.order {
        for _, v := range self.adj[u].Sorted() {
            if u < v {
                g.SetEdge(g.NewEdge(g.Node(int64(u)), g.Node(int64(v))))
            }
        }
    }

    return g
}

// DumpDot writes the graph in Graphviz format.
func (self *Graph) DumpDot(fn string) {
    buf, err := dot.Marshal(self.Gonum(), "interference", "", "    ")
    if err != nil {
        panic(fmt.Sprintf("regalloc: cannot marshal interference graph: %v", err))
    }
    if err = os.WriteFile(fn, buf, 0644); err != nil {
        panic(err)
    }
}
