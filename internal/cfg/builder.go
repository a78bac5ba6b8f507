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
    `github.com/rill-lang/rill/internal/abs`
)

// EliminateFallThrough closes every implicit fall-through: wherever a
// non-control instruction is immediately followed by a label, an explicit
// jump to that label is inserted. The function is idempotent.
func EliminateFallThrough(ins []abs.Instr, fac abs.Factory) []abs.Instr {
    ret := make([]abs.Instr, 0, len(ins))

    /* scan for adjacent (non-control, label) pairs */
    for i, p := range ins {
        ret = append(ret, p)

        /* nothing can fall through the last instruction */
        if i == len(ins) - 1 {
            break
        }

        /* insert an explicit jump in between */
        if v, ok := abs.LabelOf(ins[i + 1]); ok && !abs.IsControl(p) {
            ret = append(ret, fac.MakeJump(v))
        }
    }

    return ret
}

type _BlockBuilder struct {
    g    *Graph
    cur  *Block
    meta []abs.Instr
}

// BuildBlocks partitions a linear instruction sequence into basic blocks
// and synthesizes the entry and exit blocks. The input must be free of
// fall-throughs (see EliminateFallThrough); a label reached without a
// preceding terminator is rejected as MalformedCFG.
//
// Instructions between a terminator and the next label are unreachable in
// the original program; they are preserved as dead blocks under fresh
// labels so that later passes may prune them.
func BuildBlocks(ins []abs.Instr, fac abs.Factory, lf *abs.LabelFactory) (*Graph, error) {
    var head abs.Label
    var have bool

    /* the program must open with a label */
    for _, p := range ins {
        if p.IsMeta() {
            continue
        } else if v, ok := abs.LabelOf(p); ok {
            head, have = v, true
            break
        } else {
            return nil, MalformedCFG { Reason: "program does not begin with a label" }
        }
    }

    /* empty programs have no entry point */
    if !have {
        return nil, MalformedCFG { Reason: "program contains no blocks" }
    }

    /* create the graph with the two synthetic blocks */
    bb := &_BlockBuilder {
        g: &Graph {
            Entry  : abs.Entry,
            Exit   : abs.Exit,
            Blocks : make(map[abs.Label]*Block),
            labels : lf,
            fac    : fac,
        },
    }

    /* entry does nothing but transfer to the first real block */
    bb.g.Blocks[abs.Entry] = &Block {
        Label : abs.Entry,
        Ins   : []abs.Instr { fac.MakeLabel(abs.Entry), fac.MakeJump(head) },
    }

    /* exit absorbs every return path */
    bb.g.Blocks[abs.Exit] = &Block {
        Label : abs.Exit,
        Ins   : []abs.Instr { fac.MakeLabel(abs.Exit), fac.MakeRet() },
    }

    /* partition the instructions */
    for _, p := range ins {
        if err := bb.push(p); err != nil {
            return nil, err
        }
    }

    /* a program that ends without a return transfers to exit */
    if bb.cur != nil {
        bb.cur.Ins = append(bb.cur.Ins, fac.MakeJump(abs.Exit))
        if err := bb.seal(); err != nil {
            return nil, err
        }
    }

    /* every jump target must resolve to a block */
    if err := bb.verify(); err != nil {
        return nil, err
    }

    return bb.g, nil
}

func (self *_BlockBuilder) push(p abs.Instr) error {
    if v, ok := abs.LabelOf(p); ok {
        return self.open(v, p)
    }

    /* meta instructions between blocks attach to the next block */
    if p.IsMeta() && self.cur == nil {
        self.meta = append(self.meta, p)
        return nil
    }

    /* instructions after a terminator start a dead block */
    if self.cur == nil && !p.IsMeta() {
        m := self.g.labels.Fresh("dead")
        self.cur = &Block { Label: m, Ins: []abs.Instr { self.g.fac.MakeLabel(m) } }
        self.flushmeta()
    }

    /* add to the current block, terminators seal it */
    self.cur.Ins = append(self.cur.Ins, p)
    if abs.IsControl(p) {
        return self.seal()
    }
    return nil
}

func (self *_BlockBuilder) open(v abs.Label, p abs.Instr) error {
    if self.cur != nil {
        return MalformedCFG { Label: self.cur.Label, Reason: "block does not terminate" }
    }
    if _, ok := self.g.Blocks[v]; ok {
        return MalformedCFG { Label: v, Reason: "duplicate label" }
    }
    self.cur = &Block { Label: v, Ins: []abs.Instr { p } }
    self.flushmeta()
    return nil
}

func (self *_BlockBuilder) flushmeta() {
    self.cur.Ins = append(self.cur.Ins, self.meta...)
    self.meta = nil
}

func (self *_BlockBuilder) seal() error {
    if _, ok := self.g.Blocks[self.cur.Label]; ok {
        return MalformedCFG { Label: self.cur.Label, Reason: "duplicate label" }
    }
    self.g.Blocks[self.cur.Label] = self.cur
    self.cur = nil
    return nil
}

func (self *_BlockBuilder) verify() error {
    for _, b := range self.g.Blocks {
        for _, v := range b.Term().Targets() {
            if v == abs.Entry {
                return MalformedCFG { Label: b.Label, Reason: "jump into the entry block" }
            }
            if _, ok := self.g.Blocks[v]; !ok {
                return MalformedCFG { Label: v, Reason: "dangling jump target" }
            }
        }
    }
    return nil
}

// ToInstrs emits the blocks in the given order as one linear instruction
// sequence.
func ToInstrs(g *Graph, order []abs.Label) []abs.Instr {
    ret := make([]abs.Instr, 0, len(order) * 4)
    for _, v := range order {
        b := g.Blocks[v]
        if b == nil {
            panic("cfg: order names a block that is not in the graph: " + v.String())
        }
        ret = append(ret, b.Ins...)
    }
    return ret
}
