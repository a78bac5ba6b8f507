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

package rill

import (
    `path/filepath`

    `github.com/davecgh/go-spew/spew`
    `github.com/rill-lang/rill/internal/abs`
    `github.com/rill-lang/rill/internal/cfg`
    `github.com/rill-lang/rill/internal/conv`
    `github.com/rill-lang/rill/internal/dom`
    `github.com/rill-lang/rill/internal/liveness`
    `github.com/rill-lang/rill/internal/opts`
    `github.com/rill-lang/rill/internal/regalloc`
)

// Func carries one function through the backend: the linear program it
// started from and every analysis the passes attach to it.
type Func struct {
    Ins   []abs.Instr
    Graph *cfg.Graph
    Edges *cfg.EdgeMaps
    Dom   *dom.Tree
    Live  *liveness.Info
    Alloc *regalloc.Result

    lf  *abs.LabelFactory
    fac abs.Factory
    rf  *abs.RegFile
    opt opts.Options
}

// Linearize emits the current blocks in reverse postorder, the entry
// first and the exit wherever the order puts it.
func (self *Func) Linearize() []abs.Instr {
    return cfg.ToInstrs(self.Graph, cfg.ReversePostorder(self.Edges, self.Graph.Entry))
}

type Pass interface {
    Apply(*Func) error
}

type PassDescriptor struct {
    Pass Pass
    Name string
}

var Passes = [...]PassDescriptor {
    { Name: "CFG Construction"        , Pass: new(BuildCFG) },
    { Name: "Unreachable Block Pruning", Pass: new(PruneBlocks) },
    { Name: "Critical Edge Splitting" , Pass: new(SplitCritical) },
    { Name: "Dominator Analysis"      , Pass: new(Dominators) },
    { Name: "Liveness Analysis"       , Pass: new(Liveness) },
    { Name: "Register Allocation"     , Pass: new(RegAlloc) },
}

// BuildCFG closes the fall-throughs of the input program and partitions
// it into basic blocks with explicit edges.
type BuildCFG struct{}

func (BuildCFG) Apply(fn *Func) error {
    ins := cfg.EliminateFallThrough(fn.Ins, fn.fac)
    g, err := cfg.BuildBlocks(ins, fn.fac, fn.lf)

    if err != nil {
        return err
    }

    em, err := cfg.BuildEdges(g)
    if err != nil {
        return err
    }

    fn.Ins = ins
    fn.Graph = g
    fn.Edges = em
    if fn.opt.DebugDump {
        cfg.DumpDot(filepath.Join(fn.opt.DebugDir, "cfg.dot"), g, em)
    }
    return nil
}

// PruneBlocks removes everything the entry cannot reach.
type PruneBlocks struct{}

func (PruneBlocks) Apply(fn *Func) error {
    cfg.Prune(fn.Graph, fn.Edges)
    return nil
}

// SplitCritical makes the graph critical-edge-free.
type SplitCritical struct{}

func (SplitCritical) Apply(fn *Func) error {
    _, err := cfg.SplitCritical(fn.Graph, fn.Edges)
    return err
}

// Dominators computes the dominator tree and the dominance frontiers.
type Dominators struct{}

func (Dominators) Apply(fn *Func) error {
    fn.Dom = dom.Build(fn.Graph, fn.Edges)
    return nil
}

// Liveness runs the backward dataflow analysis over the linearized
// program.
type Liveness struct{}

func (Liveness) Apply(fn *Func) error {
    lv, err := liveness.Analyze(conv.Lines(fn.Linearize()), fn.rf)
    if err != nil {
        return err
    }

    fn.Live = lv
    if fn.opt.DebugDump {
        lv.DrawLiveOut(filepath.Join(fn.opt.DebugDir, "liveout.svg"))
    }
    return nil
}

// RegAlloc colors the interference graph, or spills everything when the
// function is too large for it.
type RegAlloc struct{}

func (RegAlloc) Apply(fn *Func) error {
    fn.Alloc = regalloc.Allocate(fn.Live, fn.rf, &fn.opt)
    if fn.opt.DebugDump {
        regalloc.Build(fn.Live, fn.rf).DumpDot(filepath.Join(fn.opt.DebugDir, "interference.dot"))
        spew.Dump(fn.Alloc.Assign)
    }
    return nil
}

// AllocateFunc runs the whole backend over one function: CFG
// construction, pruning, critical edge splitting, dominators, liveness
// and register allocation, in that order.
func AllocateFunc(ins []abs.Instr, fac abs.Factory, lf *abs.LabelFactory, options ...Option) (*Func, error) {
    fn := &Func {
        Ins : ins,
        lf  : lf,
        fac : fac,
        rf  : abs.AMD64,
        opt : opts.GetDefaultOptions(),
    }

    /* apply the option setters */
    for _, fv := range options {
        fv(&fn.opt)
    }

    /* run the pass pipeline */
    for _, p := range Passes {
        if err := p.Pass.Apply(fn); err != nil {
            return nil, PassError { Name: p.Name, Err: err }
        }
    }

    return fn, nil
}
