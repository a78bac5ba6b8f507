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

package cfg

import (
    `testing`

    `github.com/rill-lang/rill/internal/abs`
    `github.com/stretchr/testify/assert`
    `github.com/stretchr/testify/require`
)

func mustBuild(t *testing.T, p *abs.Builder) (*Graph, *EdgeMaps) {
    ins := EliminateFallThrough(p.Build(), abs.PseudoFactory{})
    g, err := BuildBlocks(ins, abs.PseudoFactory{}, p.Labels())
    require.NoError(t, err)
    em, err := BuildEdges(g)
    require.NoError(t, err)
    return g, em
}

func assertInverse(t *testing.T, em *EdgeMaps) {
    for u, ss := range em.Succ {
        for v := range ss {
            assert.True(t, em.Pred[v].Contains(u), "missing pred edge %s <- %s", v, u)
        }
    }
    for v, pp := range em.Pred {
        for u := range pp {
            assert.True(t, em.Succ[u].Contains(v), "missing succ edge %s -> %s", u, v)
        }
    }
}

func TestBuilder_SingleLinearBlock(t *testing.T) {
    p := abs.CreateBuilder()
    p.Label("main")
    p.Mov(abs.TempOp(p.Temp()), abs.Imm(1))
    p.Ret()

    g, em := mustBuild(t, p)
    main := g.Blocks[p.Ref("main")]
    require.NotNil(t, main)
    require.Len(t, g.Blocks, 3)

    /* entry -> main -> exit */
    assert.Equal(t, []abs.Label { p.Ref("main") }, em.Succ[g.Entry].Sorted())
    assert.Equal(t, []abs.Label { g.Exit }, em.Succ[p.Ref("main")].Sorted())
    assert.Equal(t, 0, len(em.Succ[g.Exit]))
    assertInverse(t, em)
}

func TestBuilder_FallThroughElimination(t *testing.T) {
    p := abs.CreateBuilder()
    p.Label("a")
    p.Mov(abs.TempOp(p.Temp()), abs.Imm(1))
    p.Label("b")
    p.Ret()

    fac := abs.PseudoFactory{}
    once := EliminateFallThrough(p.Build(), fac)
    twice := EliminateFallThrough(once, fac)

    /* one jump inserted, then stable */
    require.Len(t, once, len(p.Build()) + 1)
    assert.True(t, once[2].IsJump())
    assert.Equal(t, len(once), len(twice))

    g, em := mustBuild(t, p)
    assert.Equal(t, []abs.Label { p.Ref("b") }, em.Succ[p.Ref("a")].Sorted())
    require.Len(t, g.Blocks, 4)
}

func TestBuilder_Malformed(t *testing.T) {
    fac := abs.PseudoFactory{}

    /* no opening label */
    p := abs.CreateBuilder()
    p.Mov(abs.TempOp(0), abs.Imm(1))
    p.Ret()
    _, err := BuildBlocks(p.Build(), fac, p.Labels())
    require.Error(t, err)
    assert.IsType(t, MalformedCFG{}, err)

    /* empty program */
    q := abs.CreateBuilder()
    _, err = BuildBlocks(q.Build(), fac, q.Labels())
    require.Error(t, err)

    /* label reached without a terminator */
    r := abs.CreateBuilder()
    r.Label("a")
    r.Mov(abs.TempOp(0), abs.Imm(1))
    r.Label("b")
    r.Ret()
    _, err = BuildBlocks(r.Build(), fac, r.Labels())
    require.Error(t, err)

    /* jump to a label nobody defines */
    s := abs.CreateBuilder()
    s.Label("a")
    s.Jump("nowhere")
    _, err = BuildBlocks(s.Build(), fac, s.Labels())
    require.Error(t, err)
}

func TestBuilder_ImplicitReturn(t *testing.T) {
    p := abs.CreateBuilder()
    p.Label("main")
    p.Mov(abs.TempOp(p.Temp()), abs.Imm(1))

    g, em := mustBuild(t, p)
    assert.Equal(t, []abs.Label { g.Exit }, em.Succ[p.Ref("main")].Sorted())
}

func TestBuilder_DeadCodeAfterReturn(t *testing.T) {
    p := abs.CreateBuilder()
    p.Label("main")
    p.Ret()
    p.Mov(abs.TempOp(p.Temp()), abs.Imm(1))
    p.Ret()

    g, em := mustBuild(t, p)
    require.Len(t, g.Blocks, 4)

    /* pruning drops the unreachable block */
    Prune(g, em)
    assert.Len(t, g.Blocks, 3)
    assertInverse(t, em)
}

func TestEdges_CriticalSplit(t *testing.T) {
    v := abs.TempOp(0)
    p := abs.CreateBuilder()
    p.Label("head")
    p.CJump(v, "body", "join")
    p.Label("body")
    p.Mov(abs.TempOp(1), abs.Imm(1))
    p.Jump("join")
    p.Label("join")
    p.Ret()

    g, em := mustBuild(t, p)
    head := p.Ref("head")
    join := p.Ref("join")

    /* head -> join is the only critical edge */
    require.True(t, IsCriticalEdge(head, join, em))
    n, err := SplitCritical(g, em)
    require.NoError(t, err)
    require.Equal(t, 1, n)
    assertInverse(t, em)

    /* the direct edge is gone, one hop in between */
    assert.False(t, em.Succ[head].Contains(join))
    found := false
    for _, m := range em.Succ[head].Sorted() {
        if em.Succ[m].Contains(join) && len(em.Succ[m]) == 1 && len(em.Pred[m]) == 1 {
            found = true
        }
    }
    assert.True(t, found)

    /* a second pass has nothing left to split */
    n, err = SplitCritical(g, em)
    require.NoError(t, err)
    assert.Equal(t, 0, n)
}

func TestEdges_SplitMissingEdge(t *testing.T) {
    p := abs.CreateBuilder()
    p.Label("a")
    p.Ret()

    g, em := mustBuild(t, p)
    err := SplitEdge(p.Ref("a"), g.Entry, g, em)
    require.Error(t, err)
    assert.IsType(t, NoSuchEdge{}, err)
}

func TestPostorder_Deterministic(t *testing.T) {
    v := abs.TempOp(0)
    p := abs.CreateBuilder()
    p.Label("a")
    p.CJump(v, "b", "c")
    p.Label("b")
    p.Jump("d")
    p.Label("c")
    p.Jump("d")
    p.Label("d")
    p.Ret()

    g, em := mustBuild(t, p)
    po := Postorder(em, g.Entry)
    rpo := ReversePostorder(em, g.Entry)

    require.Len(t, po, 6)
    assert.Equal(t, g.Entry, po[len(po) - 1])
    assert.Equal(t, g.Entry, rpo[0])

    /* every block after all of its successors */
    seen := make(map[abs.Label]bool)
    for _, u := range rpo {
        seen[u] = true
    }
    pos := make(map[abs.Label]int)
    for i, u := range po {
        pos[u] = i
    }
    assert.Less(t, pos[p.Ref("d")], pos[p.Ref("b")])
    assert.Less(t, pos[p.Ref("d")], pos[p.Ref("c")])
    assert.True(t, seen[g.Exit])

    /* same input, same order */
    assert.Equal(t, po, Postorder(em, g.Entry))
}

func TestToInstrs_RoundTrip(t *testing.T) {
    p := abs.CreateBuilder()
    p.Label("a")
    p.Mov(abs.TempOp(p.Temp()), abs.Imm(7))
    p.Ret()

    g, em := mustBuild(t, p)
    ins := ToInstrs(g, ReversePostorder(em, g.Entry))

    /* entry block first, everything labelled */
    v, ok := abs.LabelOf(ins[0])
    require.True(t, ok)
    assert.Equal(t, g.Entry, v)
    assert.Panics(t, func() { ToInstrs(g, []abs.Label { p.Ref("ghost") }) })
}
