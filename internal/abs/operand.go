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

type OperandKind uint8

const (
    K_imm OperandKind = iota
    K_temp
    K_reg
    K_above
    K_below
)

// Operand is one argument of a pseudo-assembly instruction. Only K_temp
// and K_reg operands participate in liveness and interference; immediates
// and frame slots are carried through untouched.
type Operand struct {
    K OperandKind
    V int64
}

func Imm(v int64) Operand {
    return Operand { K: K_imm, V: v }
}

func TempOp(t Temp) Operand {
    return Operand { K: K_temp, V: int64(t) }
}

func RegOp(i int) Operand {
    if i < 0 || i >= NumRegs {
        panic(fmt.Sprintf("abs: invalid register index: %d", i))
    }
    return Operand { K: K_reg, V: int64(i) }
}

// AboveFrame is the i-th incoming stack argument slot.
func AboveFrame(i int) Operand {
    return Operand { K: K_above, V: int64(i) }
}

// BelowFrame is the i-th outgoing stack argument slot.
func BelowFrame(i int) Operand {
    return Operand { K: K_below, V: int64(i) }
}

// IsAllocatable reports whether the operand names a virtual or hard
// register.
func (self Operand) IsAllocatable() bool {
    return self.K == K_temp || self.K == K_reg
}

func (self Operand) Temp() Temp {
    if self.K != K_temp {
        panic("abs: operand is not a temp")
    }
    return Temp(self.V)
}

func (self Operand) Reg() int {
    if self.K != K_reg {
        panic("abs: operand is not a register")
    }
    return int(self.V)
}

func (self Operand) String() string {
    switch self.K {
        case K_imm   : return fmt.Sprintf("$%d", self.V)
        case K_temp  : return Temp(self.V).String()
        case K_reg   : return "%" + AMD64.Name(int(self.V))
        case K_above : return fmt.Sprintf("above[%d]", self.V)
        case K_below : return fmt.Sprintf("below[%d]", self.V)
        default      : panic("abs: invalid operand kind")
    }
}
