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
    `sort`
    `strings`

    `github.com/rill-lang/rill/internal/abs`
)

// LabelSet is a set of block labels.
type LabelSet map[abs.Label]struct{}

func labelset(vv ...abs.Label) (ls LabelSet) {
    ls = make(LabelSet, len(vv))
    for _, v := range vv { ls.Add(v) }
    return
}

func (self LabelSet) Add(v abs.Label) {
    self[v] = struct{}{}
}

func (self LabelSet) Remove(v abs.Label) {
    delete(self, v)
}

func (self LabelSet) Contains(v abs.Label) bool {
    _, ok := self[v]
    return ok
}

func (self LabelSet) Clone() (ls LabelSet) {
    ls = make(LabelSet, len(self))
    for v := range self { ls.Add(v) }
    return
}

// Sorted extracts the members in ascending label order.
func (self LabelSet) Sorted() []abs.Label {
    vv := make([]abs.Label, 0, len(self))
    for v := range self {
        vv = append(vv, v)
    }
    sort.Slice(vv, func(i int, j int) bool { return vv[i].Less(vv[j]) })
    return vv
}

func (self LabelSet) String() string {
    nb := len(self)
    ss := make([]string, 0, nb)

    /* convert every label */
    for _, v := range self.Sorted() {
        ss = append(ss, v.String())
    }

    /* join them together */
    return fmt.Sprintf(
        "{%s}",
        strings.Join(ss, ", "),
    )
}

// Block is a basic block. The first instruction is always the block's own
// label, the last is the only control-flow instruction in the block.
type Block struct {
    Label abs.Label
    Ins   []abs.Instr
}

// Term returns the block terminator.
func (self *Block) Term() abs.Instr {
    if len(self.Ins) == 0 {
        panic(fmt.Sprintf("cfg: empty basic block %s", self.Label))
    }
    return self.Ins[len(self.Ins) - 1]
}

// Body returns the instructions between the label and the terminator.
func (self *Block) Body() []abs.Instr {
    return self.Ins[1 : len(self.Ins) - 1]
}

func (self *Block) String() string {
    ss := make([]string, 0, len(self.Ins))
    for _, p := range self.Ins {
        ss = append(ss, "    " + p.String())
    }
    return fmt.Sprintf("%s {\n%s\n}", self.Label, strings.Join(ss, "\n"))
}

// Graph is the block map of one function, with the synthesized entry and
// exit blocks.
type Graph struct {
    Entry  abs.Label
    Exit   abs.Label
    Blocks map[abs.Label]*Block
    labels *abs.LabelFactory
    fac    abs.Factory
}

// Labels returns every block label in ascending order.
func (self *Graph) Labels() []abs.Label {
    vv := make([]abs.Label, 0, len(self.Blocks))
    for v := range self.Blocks {
        vv = append(vv, v)
    }
    sort.Slice(vv, func(i int, j int) bool { return vv[i].Less(vv[j]) })
    return vv
}

func (self *Graph) String() string {
    ss := make([]string, 0, len(self.Blocks))
    for _, v := range self.Labels() {
        ss = append(ss, self.Blocks[v].String())
    }
    return strings.Join(ss, "\n")
}

// MalformedCFG occurs when the input instruction sequence cannot form a
// well-shaped control-flow graph: duplicate labels, dangling jump targets
// or a block that does not terminate.
type MalformedCFG struct {
    Label  abs.Label
    Reason string
}

func (self MalformedCFG) Error() string {
    return fmt.Sprintf("MalformedCFG(%s): %s", self.Label, self.Reason)
}

// NoSuchEdge occurs when an edge operation names an edge that is not in
// the graph.
type NoSuchEdge struct {
    From abs.Label
    To   abs.Label
}

func (self NoSuchEdge) Error() string {
    return fmt.Sprintf("NoSuchEdge: %s -> %s", self.From, self.To)
}
