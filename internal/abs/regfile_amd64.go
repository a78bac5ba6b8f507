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

    `github.com/chenzhuoyu/iasm/x86_64`
)

// ArchRegs enumerates the general-purpose registers of the target in
// encoding order; the slice index is the register index used everywhere
// else in the backend.
var ArchRegs = [...]x86_64.Register64 {
    x86_64.RAX,
    x86_64.RCX,
    x86_64.RDX,
    x86_64.RBX,
    x86_64.RSP,
    x86_64.RBP,
    x86_64.RSI,
    x86_64.RDI,
    x86_64.R8,
    x86_64.R9,
    x86_64.R10,
    x86_64.R11,
    x86_64.R12,
    x86_64.R13,
    x86_64.R14,
    x86_64.R15,
}

var ArchRegNames = map[x86_64.Register64]string {
    x86_64.RAX : "rax",
    x86_64.RCX : "rcx",
    x86_64.RDX : "rdx",
    x86_64.RBX : "rbx",
    x86_64.RSP : "rsp",
    x86_64.RBP : "rbp",
    x86_64.RSI : "rsi",
    x86_64.RDI : "rdi",
    x86_64.R8  : "r8",
    x86_64.R9  : "r9",
    x86_64.R10 : "r10",
    x86_64.R11 : "r11",
    x86_64.R12 : "r12",
    x86_64.R13 : "r13",
    x86_64.R14 : "r14",
    x86_64.R15 : "r15",
}

// NumRegs is the size of the machine register file.
const NumRegs = len(ArchRegs)

// WordSize is the stack slot granularity in bytes.
const WordSize = 8

const (
    _R_rsp = 4
    _R_rbp = 5
    _R_r15 = 15
)

// RegFile describes a register file to the allocator: how many registers
// there are, how they print, and which indices are excluded from
// allocation. Tests substitute small synthetic files.
type RegFile struct {
    Regs    int
    Names   []string
    Special map[int]bool
}

// AMD64 is the x86-64 register file. The stack pointer and frame pointer
// are never allocated; r15 is reserved as the spill scratch register, it
// stands in for the return-address slot of the calling convention.
var AMD64 = &RegFile {
    Regs    : NumRegs,
    Names   : archRegNameTable(),
    Special : map[int]bool {
        _R_rsp: true,
        _R_rbp: true,
        _R_r15: true,
    },
}

func archRegNameTable() []string {
    nn := make([]string, NumRegs)
    for i, r := range ArchRegs {
        nn[i] = ArchRegNames[r]
    }
    return nn
}

// RegOfIndex returns the machine register with index i.
func RegOfIndex(i int) x86_64.Register64 {
    if i < 0 || i >= NumRegs {
        panic(fmt.Sprintf("abs: invalid register index: %d", i))
    }
    return ArchRegs[i]
}

// IndexOfReg is the inverse of RegOfIndex.
func IndexOfReg(r x86_64.Register64) int {
    for i, v := range ArchRegs {
        if v == r {
            return i
        }
    }
    panic(fmt.Sprintf("abs: not a general-purpose register: %s", r))
}

func (self *RegFile) Name(i int) string {
    if i < 0 || i >= self.Regs {
        panic(fmt.Sprintf("abs: invalid register index: %d", i))
    } else if self.Names == nil {
        return fmt.Sprintf("r%d", i)
    } else {
        return self.Names[i]
    }
}

// SpecialUse reports whether register index i is unavailable for
// allocation.
func (self *RegFile) SpecialUse(i int) bool {
    return self.Special[i]
}

// SpillOffset converts a spill index (>= Regs) into a frame offset.
func (self *RegFile) SpillOffset(index int) int {
    if index < self.Regs {
        panic(fmt.Sprintf("abs: not a spill slot: %d", index))
    }
    return (index - self.Regs + 1) * WordSize
}
