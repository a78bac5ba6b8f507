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
    `fmt`
    `html`
    `os`
    `strings`
)

func dumpblock(b *Block) string {
    var rows []string

    /* one table row per instruction */
    for _, p := range b.Ins {
        s := strings.ReplaceAll(html.EscapeString(p.String()), " ", "&nbsp;")
        rows = append(rows, fmt.Sprintf("<tr><td align=\"left\">%s</td></tr>", s))
    }

    return fmt.Sprintf(
        "\"%s\" [shape=none, label=<<table border=\"1\" cellborder=\"0\" cellspacing=\"0\">%s</table>>]",
        b.Label,
        strings.Join(rows, ""),
    )
}

// DumpDot writes the graph in Graphviz format, one HTML-table node per
// block with its instruction listing.
func DumpDot(fn string, g *Graph, em *EdgeMaps) {
    var buf []string
    buf = append(buf, "digraph CFG {")
    buf = append(buf, `    node [fontname="monospace"]`)

    /* nodes in label order */
    for _, v := range g.Labels() {
        buf = append(buf, "    " + dumpblock(g.Blocks[v]))
    }

    /* edges in deterministic order */
    for _, u := range g.Labels() {
        for _, v := range em.Succ[u].Sorted() {
            buf = append(buf, fmt.Sprintf("    %q -> %q", u.String(), v.String()))
        }
    }

    buf = append(buf, "}")
    if err := os.WriteFile(fn, []byte(strings.Join(buf, "\n") + "\n"), 0644); err != nil {
        panic(err)
    }
}
