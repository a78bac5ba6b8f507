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
    `testing`

    `github.com/rill-lang/rill/internal/abs`
    `github.com/stretchr/testify/assert`
    `github.com/stretchr/testify/require`
)

func TestEncode_Vertices(t *testing.T) {
    rf := abs.AMD64

    /* registers map to themselves, temps shift past the file */
    assert.Equal(t, 3, Encode(abs.RegOp(3), rf))
    assert.Equal(t, rf.Regs, Encode(abs.TempOp(0), rf))
    assert.Equal(t, rf.Regs + 7, Encode(abs.TempOp(7), rf))

    /* pre-bound temps collapse onto their register */
    assert.Equal(t, 2, Encode(abs.TempOp(abs.TempOf(2)), rf))

    assert.Panics(t, func() { Encode(abs.Imm(1), rf) })
}

func TestEncode_SmallFile(t *testing.T) {
    rf := &abs.RegFile { Regs: 3 }
    assert.Equal(t, 3, Encode(abs.TempOp(0), rf))
    assert.Equal(t, 5, Encode(abs.TempOp(2), rf))
    assert.True(t, IsReg(2, rf))
    assert.False(t, IsReg(3, rf))
    assert.Equal(t, int32(0), TempId(3, rf))
    assert.Panics(t, func() { TempId(2, rf) })
    assert.Equal(t, "r1", VertexName(1, rf))
    assert.Equal(t, "t4", VertexName(7, rf))
}

func TestLines_Wrapping(t *testing.T) {
    p := abs.CreateBuilder()
    t0 := p.Temp()
    p.Label("main")
    p.Mov(abs.TempOp(t0), abs.Imm(1))
    p.Comment("meta")
    p.CJump(abs.TempOp(t0), "a", "b")
    p.Label("a")
    p.Ret()
    p.Label("b")
    p.RetVal(abs.TempOp(t0))

    ll := Lines(p.Build())
    require.Len(t, ll, 8)

    /* label identity */
    v, ok := ll[0].Label()
    require.True(t, ok)
    assert.Equal(t, p.Ref("main"), v)
    _, ok = ll[1].Label()
    assert.False(t, ok)

    /* ordinary lines fall, control does not */
    assert.True(t, ll[1].Falls())
    assert.True(t, ll[2].Falls())
    assert.True(t, ll[2].IsMeta())
    assert.False(t, ll[3].Falls())
    assert.False(t, ll[5].Falls())

    /* branch targets pass through */
    assert.Equal(t, []abs.Label { p.Ref("a"), p.Ref("b") }, ll[3].Targets())
    assert.Empty(t, ll[5].Targets())

    /* operand views */
    assert.Equal(t, []abs.Operand { abs.Imm(1) }, ll[1].Uses())
    assert.Equal(t, []abs.Operand { abs.TempOp(t0) }, ll[1].Defs())
    assert.False(t, ll[1].IsMove())
    assert.Equal(t, []abs.Operand { abs.TempOp(t0) }, ll[7].Uses())
    assert.Empty(t, ll[0].Uses())
}
