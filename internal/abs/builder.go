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

// Builder assembles linear pseudo-assembly programs. Labels are referred
// to by name and may be used before they are placed.
type Builder struct {
    lf   *LabelFactory
    tf   *TempFactory
    refs map[string]Label
    ins  []Instr
}

func CreateBuilder() *Builder {
    return &Builder {
        lf   : NewLabelFactory(),
        tf   : NewTempFactory(),
        refs : make(map[string]Label),
    }
}

// Ref resolves a label name, minting the label on first use.
func (self *Builder) Ref(name string) Label {
    if v, ok := self.refs[name]; ok {
        return v
    }
    v := self.lf.Fresh(name)
    self.refs[name] = v
    return v
}

// Temp mints a fresh temp.
func (self *Builder) Temp() Temp {
    return self.tf.Fresh()
}

// Labels exposes the label factory so that later passes mint labels that
// do not collide with the program's own.
func (self *Builder) Labels() *LabelFactory {
    return self.lf
}

func (self *Builder) Label(name string) *Builder {
    self.ins = append(self.ins, &InsLabel { L: self.Ref(name) })
    return self
}

func (self *Builder) Mov(dst Operand, src Operand) *Builder {
    self.ins = append(self.ins, &InsMov { Dst: dst, Src: src })
    return self
}

func (self *Builder) BinOp(op BinKind, dst Operand, x Operand, y Operand) *Builder {
    self.ins = append(self.ins, &InsBinOp { Op: op, Dst: dst, X: x, Y: y })
    return self
}

func (self *Builder) CJump(cond Operand, then string, orelse string) *Builder {
    self.ins = append(self.ins, &InsCJump { Cond: cond, Then: self.Ref(then), Else: self.Ref(orelse) })
    return self
}

func (self *Builder) Jump(name string) *Builder {
    self.ins = append(self.ins, &InsJump { To: self.Ref(name) })
    return self
}

func (self *Builder) Ret() *Builder {
    self.ins = append(self.ins, &InsRet {})
    return self
}

func (self *Builder) RetVal(src Operand) *Builder {
    self.ins = append(self.ins, &InsRet { Src: src, HasSrc: true })
    return self
}

func (self *Builder) Assert(cond Operand) *Builder {
    self.ins = append(self.ins, &InsAssert { Cond: cond })
    return self
}

func (self *Builder) Comment(text string) *Builder {
    self.ins = append(self.ins, &InsComment { Text: text })
    return self
}

func (self *Builder) Build() []Instr {
    return self.ins
}
