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

package liveness

import (
    `fmt`
    `os`
    `sort`
    `strings`

    `github.com/ajstarks/svgo`
    `github.com/rill-lang/rill/internal/conv`
)

// DrawLiveOut renders the analysis as an SVG chart: one row per line, one
// column per vertex, a solid dot where the vertex is live after the line
// and a hollow dot where the line defines it.
func (self *Info) DrawLiveOut(fn string) {
    maxi := 0
    maxw := 0
    all := make(VertexSet)

    /* collect every vertex that is ever live or defined */
    for i := range self.Lines {
        all.Union(self.Out[i])
        all.Union(self.gen[i])
        all.Union(self.kill[i])
    }

    /* widest instruction text */
    for _, ln := range self.Lines {
        s := strings.TrimSpace(ln.Ins().String())
        if len(s) > maxi {
            maxi = len(s)
        }
    }

    /* widest vertex name */
    vv := all.Sorted()
    for _, v := range vv {
        if s := conv.VertexName(v, self.rf); len(s) > maxw {
            maxw = len(s)
        }
    }

    sort.Ints(vv)
    insw := maxi * 9 + 120
    colw := (maxw + 1) * 8 + 16

    fp, err := os.OpenFile(fn, os.O_RDWR | os.O_CREATE | os.O_TRUNC, 0644)
    if err != nil {
        panic(err)
    }

    p := svg.New(fp)
    p.Start(len(vv) * colw + insw + 100, len(self.Lines) * 24 + 100)
    if _, err = fp.WriteString(`<rect width="100%" height="100%" fill="white" />` + "\n"); err != nil {
        panic(err)
    }

    /* the program text, one row per line */
    for i, ln := range self.Lines {
        h := 95 + i * 24
        s := strings.TrimSpace(ln.Ins().String())
        p.Text(16, 100 + i * 24, fmt.Sprintf("%03d", i), "fill:gray;font-size:16px;font-family:monospace")
        p.Text(insw, 100 + i * 24, s, "fill:black;font-size:16px;font-family:monospace;text-anchor:end")
        p.Line(insw + 10, h, len(vv) * colw + insw + 50, h, "stroke:gray")
    }

    /* one column per vertex */
    for c, v := range vv {
        x := insw + c * colw + 50
        p.Text(x, 70, conv.VertexName(v, self.rf), "fill:black;font-size:16px;font-family:monospace;text-anchor:middle")
        for i := range self.Lines {
            h := 95 + i * 24
            if self.hasDef(i, v) {
                p.Circle(x, h, 4, "fill:white;stroke:black;stroke-width:2")
            } else if self.Out[i].Contains(v) {
                p.Circle(x, h, 4, "fill:black;stroke:black;stroke-width:2")
            }
        }
    }

    p.End()
    if err = fp.Close(); err != nil {
        panic(err)
    }
}

func (self *Info) hasDef(i int, v int) bool {
    for _, op := range self.Lines[i].Defs() {
        if op.IsAllocatable() && conv.Encode(op, self.rf) == v {
            return true
        }
    }
    return false
}
