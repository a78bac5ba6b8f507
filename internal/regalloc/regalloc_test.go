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

package regalloc

import (
    `fmt`
    `testing`

    `github.com/brianvoe/gofakeit/v6`
    `github.com/rill-lang/rill/internal/abs`
    `github.com/rill-lang/rill/internal/conv`
    `github.com/rill-lang/rill/internal/liveness`
    `github.com/rill-lang/rill/internal/opts`
    `github.com/stretchr/testify/assert`
    `github.com/stretchr/testify/require`
)

type _FakeLine struct {
    uses []int
    defs []int
    outs []int
}

type _FakeLiveness []_FakeLine

func (self _FakeLiveness) Len() int              { return len(self) }
func (self _FakeLiveness) UsesOf(i int) []int    { return self[i].uses }
func (self _FakeLiveness) DefsOf(i int) []int    { return self[i].defs }
func (self _FakeLiveness) LiveOutOf(i int) []int { return self[i].outs }

func assertValidColoring(t *testing.T, g *Graph, r *Result) {
    for _, u := range g.Vertices() {
        cu, ok := r.Assign[u]
        require.True(t, ok, "vertex %d has no assignment", u)
        for v := range g.Adjacent(u) {
            assert.NotEqual(t, cu, r.Assign[v], "vertices %d and %d share index %d", u, v, cu)
        }
    }
}

func analyze(t *testing.T, p *abs.Builder, rf *abs.RegFile) *liveness.Info {
    lv, err := liveness.Analyze(conv.Lines(p.Build()), rf)
    require.NoError(t, err)
    return lv
}

func TestGraph_EdgeRelation(t *testing.T) {
    g := NewGraph(abs.AMD64)
    g.AddEdge(16, 17)
    g.AddEdge(17, 16)
    g.AddEdge(17, 17)
    g.AddVertex(18)

    /* symmetric, irreflexive, isolated vertices kept */
    assert.True(t, g.Interferes(16, 17))
    assert.True(t, g.Interferes(17, 16))
    assert.False(t, g.Interferes(17, 17))
    assert.False(t, g.Interferes(16, 18))
    assert.Equal(t, []int { 16, 17, 18 }, g.Vertices())
    assert.Equal(t, 1, g.Degree(16))
    assert.Equal(t, 0, g.Degree(18))
}

func TestBuild_DefLiveOutConflicts(t *testing.T) {
    rf := abs.AMD64
    p := abs.CreateBuilder()
    t0 := p.Temp()
    t1 := p.Temp()
    p.Label("main")
    p.Mov(abs.TempOp(t0), abs.Imm(1))
    p.Mov(abs.TempOp(t1), abs.Imm(2))
    p.BinOp(abs.B_add, abs.TempOp(t0), abs.TempOp(t0), abs.TempOp(t1))
    p.RetVal(abs.TempOp(t0))

    g := Build(analyze(t, p, rf), rf)
    v0 := conv.Encode(abs.TempOp(t0), rf)
    v1 := conv.Encode(abs.TempOp(t1), rf)

    /* t0 is live across the write of t1 */
    assert.True(t, g.Interferes(v0, v1))
}

func TestBuild_MoveRelatedTempsStillConflict(t *testing.T) {
    rf := abs.AMD64
    p := abs.CreateBuilder()
    t0 := p.Temp()
    t1 := p.Temp()
    p.Label("main")
    p.Mov(abs.TempOp(t0), abs.Imm(1))
    p.Mov(abs.TempOp(t1), abs.TempOp(t0))
    p.RetVal(abs.TempOp(t1))

    g := Build(analyze(t, p, rf), rf)
    v0 := conv.Encode(abs.TempOp(t0), rf)
    v1 := conv.Encode(abs.TempOp(t1), rf)

    /* the destination of a move conflicts with its source */
    assert.True(t, g.Interferes(v0, v1))
}

func TestColor_CliqueSpills(t *testing.T) {
    rf := &abs.RegFile { Regs: 3 }
    lv := _FakeLiveness {
        { defs: []int { 3 }, outs: []int { 3 } },
        { defs: []int { 4 }, outs: []int { 3, 4 } },
        { defs: []int { 5 }, outs: []int { 3, 4, 5 } },
        { defs: []int { 6 }, outs: []int { 3, 4, 5, 6 } },
        { uses: []int { 3, 4, 5, 6 } },
    }

    g := Build(lv, rf)
    for u := 3; u <= 6; u++ {
        for v := u + 1; v <= 6; v++ {
            require.True(t, g.Interferes(u, v), "clique edge %d-%d missing", u, v)
        }
    }

    r := g.Color(g.SimplicialOrder())
    assertValidColoring(t, g, r)

    /* three registers hold three temps, the fourth spills */
    assert.Equal(t, 1, r.NumSpills())
    for u := 3; u <= 6; u++ {
        if r.IsSpilled(u) {
            assert.Equal(t, abs.WordSize, r.OffsetOf(u))
            assert.Panics(t, func() { r.RegOf(u) })
        } else {
            assert.Less(t, r.RegOf(u), 3)
        }
    }
}

func TestColor_AvoidsSpecialRegisters(t *testing.T) {
    rf := &abs.RegFile { Regs: 3, Special: map[int]bool { 0: true } }
    lv := _FakeLiveness {
        { defs: []int { 3 }, outs: []int { 3 } },
        { defs: []int { 4 }, outs: []int { 3, 4 } },
        { uses: []int { 3, 4 } },
    }

    g := Build(lv, rf)
    r := g.Color(g.SimplicialOrder())
    assertValidColoring(t, g, r)

    /* index 0 is reserved, so the two temps take 1 and 2 */
    for u := 3; u <= 4; u++ {
        require.False(t, r.IsSpilled(u))
        assert.NotEqual(t, 0, r.RegOf(u))
    }
}

func TestColor_HardRegisterPinned(t *testing.T) {
    rf := abs.AMD64
    p := abs.CreateBuilder()
    t0 := p.Temp()
    t1 := p.Temp()
    p.Label("main")
    p.Mov(abs.TempOp(t0), abs.Imm(10))
    p.Mov(abs.TempOp(t1), abs.Imm(0))
    p.BinOp(abs.B_div, abs.TempOp(t1), abs.TempOp(t0), abs.Imm(3))
    p.BinOp(abs.B_add, abs.TempOp(t1), abs.TempOp(t1), abs.TempOp(t0))
    p.RetVal(abs.TempOp(t1))

    g := Build(analyze(t, p, rf), rf)
    r := g.Color(g.SimplicialOrder())
    assertValidColoring(t, g, r)

    /* rax and rdx keep their own index */
    assert.Equal(t, 0, r.Assign[0])
    assert.Equal(t, 2, r.Assign[2])

    /* t0 survives the division, it may take neither rax nor rdx */
    v0 := conv.Encode(abs.TempOp(t0), rf)
    require.False(t, r.IsSpilled(v0))
    assert.NotEqual(t, 0, r.RegOf(v0))
    assert.NotEqual(t, 2, r.RegOf(v0))
}

func TestMCS_Deterministic(t *testing.T) {
    g := NewGraph(abs.AMD64)
    g.AddEdge(20, 21)
    g.AddEdge(21, 22)
    g.AddEdge(22, 20)
    g.AddVertex(23)

    o1 := g.SimplicialOrder()
    o2 := g.SimplicialOrder()
    assert.Equal(t, o1, o2)
    assert.Len(t, o1, 4)
    assert.Equal(t, 20, o1[0])
}

func TestAllocate_SpillAllFastPath(t *testing.T) {
    rf := abs.AMD64
    p := abs.CreateBuilder()
    p.Label("main")
    for i := 0; i < 2001; i++ {
        p.Mov(abs.TempOp(p.Temp()), abs.Imm(int64(i)))
    }
    p.Ret()

    o := opts.Options { SpillThreshold: 2000 }
    r := Allocate(analyze(t, p, rf), rf, &o)

    /* everything goes to the stack, each temp its own slot */
    assert.Equal(t, 2001, r.NumSpills())
    slots := make(map[int]bool)
    for v, c := range r.Assign {
        require.GreaterOrEqual(t, c, rf.Regs, "vertex %d kept a register", v)
        require.False(t, slots[c], "slot %d assigned twice", c)
        slots[c] = true
    }

    /* slots follow first appearance */
    v0 := conv.Encode(abs.TempOp(0), rf)
    assert.Equal(t, rf.Regs, r.Assign[v0])
    assert.Equal(t, abs.WordSize, r.OffsetOf(v0))
}

func TestAllocate_BelowThresholdColors(t *testing.T) {
    rf := abs.AMD64
    p := abs.CreateBuilder()
    t0 := p.Temp()
    p.Label("main")
    p.Mov(abs.TempOp(t0), abs.Imm(1))
    p.RetVal(abs.TempOp(t0))

    o := opts.Options { SpillThreshold: 2000 }
    r := Allocate(analyze(t, p, rf), rf, &o)
    assert.Equal(t, 0, r.NumSpills())
}

func TestGonum_Export(t *testing.T) {
    g := NewGraph(abs.AMD64)
    g.AddEdge(16, 17)
    g.AddVertex(18)

    u := g.Gonum()
    assert.Equal(t, 3, u.Nodes().Len())
    assert.True(t, u.HasEdgeBetween(16, 17))
    assert.False(t, u.HasEdgeBetween(16, 18))
}

func TestColor_RandomizedValidity(t *testing.T) {
    gofakeit.Seed(0xa110c)

    for round := 0; round < 16; round++ {
        rf := abs.AMD64
        p := abs.CreateBuilder()
        tt := make([]abs.Temp, 8)
        for i := range tt {
            tt[i] = p.Temp()
        }

        p.Label("main")
        for i := range tt {
            p.Mov(abs.TempOp(tt[i]), abs.Imm(int64(i)))
        }
        for i := 0; i < 20; i++ {
            d := tt[gofakeit.Number(0, len(tt) - 1)]
            x := tt[gofakeit.Number(0, len(tt) - 1)]
            y := tt[gofakeit.Number(0, len(tt) - 1)]
            p.BinOp(abs.B_add, abs.TempOp(d), abs.TempOp(x), abs.TempOp(y))
        }
        s := tt[gofakeit.Number(0, len(tt) - 1)]
        p.RetVal(abs.TempOp(s))

        g := Build(analyze(t, p, rf), rf)
        r := g.Color(g.SimplicialOrder())
        assertValidColoring(t, g, r)

        /* allocatable temps never land on reserved registers */
        for _, v := range g.Vertices() {
            if !conv.IsReg(v, rf) && !r.IsSpilled(v) {
                require.False(t, rf.SpecialUse(r.RegOf(v)),
                    fmt.Sprintf("round %d: %s got a reserved register", round, conv.VertexName(v, rf)))
            }
        }
    }
}
