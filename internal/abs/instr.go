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

// Instr is the contract between instruction selection and the CFG layer.
// The CFG builder works against this interface only, it never inspects a
// concrete instruction beyond it.
type Instr interface {
    IsLabel() bool
    IsJump() bool
    IsCJump() bool
    IsReturn() bool
    IsAssert() bool
    IsMeta() bool

    // Targets returns the successor labels implied by the instruction,
    // empty for everything that is not a jump or a conditional jump.
    Targets() []Label
    String() string
}

// HasLabel is implemented by label instructions.
type HasLabel interface {
    LabelValue() Label
}

// Rewriter is implemented by control-flow instructions whose targets can
// be redirected; ReplaceTarget returns the rewritten instruction and
// leaves the receiver untouched.
type Rewriter interface {
    ReplaceTarget(from Label, to Label) Instr
}

// Factory mints the synthetic instructions the CFG builder needs: block
// labels, unconditional jumps and returns. One factory per instruction
// flavour keeps the builder monomorphic over the flavour.
type Factory interface {
    MakeLabel(v Label) Instr
    MakeJump(to Label) Instr
    MakeRet() Instr
}

// LabelOf extracts the label of a label instruction.
func LabelOf(p Instr) (Label, bool) {
    if v, ok := p.(HasLabel); ok && p.IsLabel() {
        return v.LabelValue(), true
    }
    return Label{}, false
}

// IsControl reports whether the instruction terminates a basic block.
func IsControl(p Instr) bool {
    return p.IsJump() || p.IsCJump() || p.IsReturn()
}

// ReplaceTarget rewrites every occurrence of the target label from into
// to. Instructions without targets are returned unchanged.
func ReplaceTarget(p Instr, from Label, to Label) Instr {
    if v, ok := p.(Rewriter); ok {
        return v.ReplaceTarget(from, to)
    }
    return p
}
