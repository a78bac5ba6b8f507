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
    `fmt`

    `github.com/rill-lang/rill/internal/opts`
)

// Option is the property setter function for opts.Options.
type Option func(*opts.Options)

const (
    _MinSpillThreshold = 16
)

// WithSpillThreshold sets the vertex count above which graph coloring is
// skipped and every temporary is spilled to the stack.
//
// Lowering this option trades code quality of very large functions for
// compilation time, and vice versa. Set it to "0" to disable the limit
// and color everything.
//
// The default value of this option is "2000".
func WithSpillThreshold(n int) Option {
    if n != 0 && n < _MinSpillThreshold {
        panic(fmt.Sprintf("rill: invalid spill threshold: %d", n))
    } else {
        return func(o *opts.Options) { o.SpillThreshold = n }
    }
}

// WithDebugDump makes the passes write their intermediate artifacts
// (live-out charts, interference graphs) into dir.
func WithDebugDump(dir string) Option {
    return func(o *opts.Options) {
        o.DebugDump = true
        o.DebugDir = dir
    }
}

// SetSpillThreshold sets the default spill threshold for every function
// compiled from now on.
//
// This value can also be configured with the `RILL_SPILL_THRESHOLD`
// environment variable.
//
// Returns the old opts.SpillThreshold value.
func SetSpillThreshold(n int) int {
    n, opts.SpillThreshold = opts.SpillThreshold, n
    return n
}
