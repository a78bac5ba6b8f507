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

package conv

import (
    `github.com/rill-lang/rill/internal/abs`
)

// Line is one numbered statement of a linear program as the dataflow
// passes see it: its read and written operands plus enough control
// information to derive successor lines.
type Line interface {
    Uses() []abs.Operand
    Defs() []abs.Operand
    IsMove() bool
    IsMeta() bool

    // Label returns the label the line opens, if any.
    Label() (abs.Label, bool)

    // Targets returns the labels control may transfer to.
    Targets() []abs.Label

    // Falls reports whether control may continue to the following line.
    Falls() bool

    // Ins returns the wrapped instruction.
    Ins() abs.Instr
}

type _UsesDefs interface {
    Uses() []abs.Operand
    Defs() []abs.Operand
    IsMove() bool
}

type _InstrLine struct {
    p abs.Instr
}

func (self _InstrLine) Uses() []abs.Operand {
    if v, ok := self.p.(_UsesDefs); ok {
        return v.Uses()
    }
    return nil
}

func (self _InstrLine) Defs() []abs.Operand {
    if v, ok := self.p.(_UsesDefs); ok {
        return v.Defs()
    }
    return nil
}

func (self _InstrLine) IsMove() bool {
    if v, ok := self.p.(_UsesDefs); ok {
        return v.IsMove()
    }
    return false
}

func (self _InstrLine) IsMeta() bool            { return self.p.IsMeta() }
func (self _InstrLine) Label() (abs.Label, bool) { return abs.LabelOf(self.p) }
func (self _InstrLine) Targets() []abs.Label     { return self.p.Targets() }
func (self _InstrLine) Falls() bool              { return !abs.IsControl(self.p) }
func (self _InstrLine) Ins() abs.Instr           { return self.p }

// Lines wraps a linear instruction sequence for the dataflow passes.
func Lines(ins []abs.Instr) []Line {
    ret := make([]Line, len(ins))
    for i, p := range ins {
        ret[i] = _InstrLine { p: p }
    }
    return ret
}
