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

package abs

import (
    `fmt`
)

type BinKind uint8

const (
    B_add BinKind = iota
    B_sub
    B_mul
    B_div
    B_mod
    B_and
    B_or
    B_xor
    B_shl
    B_shr
    B_lt
    B_le
    B_eq
    B_ne
)

var _BinNames = map[BinKind]string {
    B_add : "add",
    B_sub : "sub",
    B_mul : "mul",
    B_div : "div",
    B_mod : "mod",
    B_and : "and",
    B_or  : "or",
    B_xor : "xor",
    B_shl : "shl",
    B_shr : "shr",
    B_lt  : "lt",
    B_le  : "le",
    B_eq  : "eq",
    B_ne  : "ne",
}

const (
    _R_rax = 0
    _R_rdx = 2
)

// baseIns supplies the default classification for every pseudo
// instruction; concrete instructions override the predicates they satisfy.
type baseIns struct{}

func (baseIns) IsLabel()  bool    { return false }
func (baseIns) IsJump()   bool    { return false }
func (baseIns) IsCJump()  bool    { return false }
func (baseIns) IsReturn() bool    { return false }
func (baseIns) IsAssert() bool    { return false }
func (baseIns) IsMeta()   bool    { return false }
func (baseIns) Targets()  []Label { return nil }
func (baseIns) Uses()     []Operand { return nil }
func (baseIns) Defs()     []Operand { return nil }
func (baseIns) IsMove()   bool    { return false }

type (
    InsLabel struct {
        baseIns
        L Label
    }

    InsJump struct {
        baseIns
        To Label
    }

    InsCJump struct {
        baseIns
        Cond Operand
        Then Label
        Else Label
    }

    InsRet struct {
        baseIns
        Src    Operand
        HasSrc bool
    }

    InsMov struct {
        baseIns
        Dst Operand
        Src Operand
    }

    InsBinOp struct {
        baseIns
        Op  BinKind
        Dst Operand
        X   Operand
        Y   Operand
    }

    InsAssert struct {
        baseIns
        Cond Operand
    }

    InsComment struct {
        baseIns
        Text string
    }
)

func (self *InsLabel) IsLabel() bool     { return true }
func (self *InsLabel) LabelValue() Label { return self.L }
func (self *InsLabel) String() string    { return self.L.String() + ":" }

func (self *InsJump) IsJump() bool    { return true }
func (self *InsJump) Targets() []Label { return []Label { self.To } }
func (self *InsJump) String() string  { return "jmp " + self.To.String() }

func (self *InsJump) ReplaceTarget(from Label, to Label) Instr {
    if self.To != from {
        return self
    }
    return &InsJump { To: to }
}

func (self *InsCJump) IsCJump() bool    { return true }
func (self *InsCJump) Targets() []Label { return []Label { self.Then, self.Else } }
func (self *InsCJump) Uses() []Operand  { return []Operand { self.Cond } }

func (self *InsCJump) String() string {
    return fmt.Sprintf("cjmp %s ? %s : %s", self.Cond, self.Then, self.Else)
}

func (self *InsCJump) ReplaceTarget(from Label, to Label) Instr {
    r := *self
    if r.Then == from { r.Then = to }
    if r.Else == from { r.Else = to }
    return &r
}

func (self *InsRet) IsReturn() bool { return true }

func (self *InsRet) Uses() []Operand {
    if self.HasSrc {
        return []Operand { self.Src }
    }
    return nil
}

func (self *InsRet) String() string {
    if self.HasSrc {
        return "ret " + self.Src.String()
    }
    return "ret"
}

func (self *InsMov) Uses() []Operand { return []Operand { self.Src } }
func (self *InsMov) Defs() []Operand { return []Operand { self.Dst } }
func (self *InsMov) IsMove() bool    { return self.Dst.IsAllocatable() && self.Src.IsAllocatable() }
func (self *InsMov) String() string  { return fmt.Sprintf("mov %s <- %s", self.Dst, self.Src) }

func (self *InsBinOp) Uses() []Operand { return []Operand { self.X, self.Y } }

func (self *InsBinOp) Defs() []Operand {
    if self.Op == B_div || self.Op == B_mod {
        return []Operand { self.Dst, RegOp(_R_rax), RegOp(_R_rdx) }
    }
    return []Operand { self.Dst }
}

func (self *InsBinOp) String() string {
    return fmt.Sprintf("%s %s <- %s, %s", _BinNames[self.Op], self.Dst, self.X, self.Y)
}

func (self *InsAssert) IsAssert() bool  { return true }
func (self *InsAssert) Uses() []Operand { return []Operand { self.Cond } }
func (self *InsAssert) String() string  { return "assert " + self.Cond.String() }

func (self *InsComment) IsMeta() bool  { return true }
func (self *InsComment) String() string { return "# " + self.Text }

// PseudoFactory mints synthetic pseudo-assembly instructions for the CFG
// builder.
type PseudoFactory struct{}

func (PseudoFactory) MakeLabel(v Label) Instr { return &InsLabel { L: v } }
func (PseudoFactory) MakeJump(to Label) Instr { return &InsJump { To: to } }
func (PseudoFactory) MakeRet() Instr          { return &InsRet {} }
