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
    `fmt`

    `github.com/rill-lang/rill/internal/abs`
)

// Vertices are dense non-negative integers shared by liveness and the
// interference graph: an index below rf.Regs is the hard register with
// that index, everything at or above it is a temp shifted by rf.Regs.

// Encode maps an allocatable operand to its vertex. Temps pre-bound to a
// hard register encode as the register itself.
func Encode(op abs.Operand, rf *abs.RegFile) int {
    switch op.K {
        case abs.K_reg  : return op.Reg()
        case abs.K_temp : return encodeTemp(op.Temp(), rf)
        default         : panic(fmt.Sprintf("conv: operand is not allocatable: %s", op))
    }
}

func encodeTemp(t abs.Temp, rf *abs.RegFile) int {
    if t.IsPhys() {
        return t.Phys()
    }
    return int(t.Id()) + rf.Regs
}

// IsReg reports whether the vertex names a hard register.
func IsReg(v int, rf *abs.RegFile) bool {
    return v < rf.Regs
}

// TempId recovers the temp id of a non-register vertex.
func TempId(v int, rf *abs.RegFile) int32 {
    if IsReg(v, rf) {
        panic(fmt.Sprintf("conv: vertex %d is a register", v))
    }
    return int32(v - rf.Regs)
}

// VertexName renders a vertex for diagnostics.
func VertexName(v int, rf *abs.RegFile) string {
    if IsReg(v, rf) {
        return "%" + rf.Name(v)
    }
    return fmt.Sprintf("t%d", TempId(v, rf))
}
