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
    `errors`
    `testing`

    `github.com/rill-lang/rill/internal/abs`
    `github.com/rill-lang/rill/internal/cfg`
    `github.com/rill-lang/rill/internal/conv`
    `github.com/stretchr/testify/assert`
    `github.com/stretchr/testify/require`
)

func TestAllocateFunc_EndToEnd(t *testing.T) {
    p := abs.CreateBuilder()
    t0 := p.Temp()
    t1 := p.Temp()
    t2 := p.Temp()
    p.Label("main")
    p.Mov(abs.TempOp(t0), abs.Imm(1))
    p.CJump(abs.TempOp(t0), "then", "join")
    p.Label("then")
    p.BinOp(abs.B_add, abs.TempOp(t1), abs.TempOp(t0), abs.Imm(1))
    p.Label("join")
    p.BinOp(abs.B_add, abs.TempOp(t2), abs.TempOp(t0), abs.Imm(2))
    p.RetVal(abs.TempOp(t2))

    fn, err := AllocateFunc(p.Build(), abs.PseudoFactory{}, p.Labels())
    require.NoError(t, err)

    /* every pass left its artifact behind */
    require.NotNil(t, fn.Graph)
    require.NotNil(t, fn.Edges)
    require.NotNil(t, fn.Dom)
    require.NotNil(t, fn.Live)
    require.NotNil(t, fn.Alloc)

    /* the branch edge into the join was split */
    head := p.Ref("main")
    join := p.Ref("join")
    assert.False(t, fn.Edges.Succ[head].Contains(join))

    /* small functions never spill */
    assert.Equal(t, 0, fn.Alloc.NumSpills())

    /* no temp may take a reserved register */
    for _, v := range []abs.Temp { t0, t1, t2 } {
        k := conv.Encode(abs.TempOp(v), abs.AMD64)
        if _, ok := fn.Alloc.Assign[k]; ok && !fn.Alloc.IsSpilled(k) {
            assert.False(t, abs.AMD64.SpecialUse(fn.Alloc.RegOf(k)))
        }
    }

    /* the linearized program opens with the entry block */
    ins := fn.Linearize()
    v, ok := abs.LabelOf(ins[0])
    require.True(t, ok)
    assert.Equal(t, abs.Entry, v)
}

func TestAllocateFunc_MalformedProgram(t *testing.T) {
    p := abs.CreateBuilder()
    p.Mov(abs.TempOp(p.Temp()), abs.Imm(1))
    p.Ret()

    _, err := AllocateFunc(p.Build(), abs.PseudoFactory{}, p.Labels())
    require.Error(t, err)

    var pe PassError
    require.True(t, errors.As(err, &pe))
    assert.Equal(t, "CFG Construction", pe.Name)

    var mc cfg.MalformedCFG
    assert.True(t, errors.As(err, &mc))
}

func TestAllocateFunc_SpillThresholdOption(t *testing.T) {
    p := abs.CreateBuilder()
    p.Label("main")
    for i := 0; i < 40; i++ {
        p.Mov(abs.TempOp(p.Temp()), abs.Imm(int64(i)))
    }
    p.Ret()

    fn, err := AllocateFunc(p.Build(), abs.PseudoFactory{}, p.Labels(), WithSpillThreshold(32))
    require.NoError(t, err)

    /* above the lowered threshold everything spills */
    assert.Equal(t, 40, fn.Alloc.NumSpills())

    assert.Panics(t, func() { WithSpillThreshold(5) })
}

func TestSetSpillThreshold_Swaps(t *testing.T) {
    old := SetSpillThreshold(512)
    assert.Equal(t, 512, SetSpillThreshold(old))
}
