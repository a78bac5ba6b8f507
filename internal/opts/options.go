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

package opts

// Options tunes the backend pipeline. The zero value is not useful, start
// from GetDefaultOptions.
type Options struct {
    SpillThreshold int
    DebugDump      bool
    DebugDir       string
}

// ShouldSpillAll reports whether a function with nv allocation vertices is
// too large for graph coloring and every temp goes to the stack instead.
func (self *Options) ShouldSpillAll(nv int) bool {
    return self.SpillThreshold != 0 && nv > self.SpillThreshold
}

func GetDefaultOptions() Options {
    return Options {
        SpillThreshold : SpillThreshold,
        DebugDump      : false,
        DebugDir       : "",
    }
}
