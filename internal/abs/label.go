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

// Label identifies a basic block. Labels are comparable and usable as map
// keys; the numeric part orders them.
type Label struct {
    Id   int32
    Name string
}

// Distinguished block numbers for the synthesized entry and exit blocks.
const (
    EntryId = -2
    ExitId  = -1
)

var (
    Entry = Label { Id: EntryId, Name: "entry" }
    Exit  = Label { Id: ExitId,  Name: "exit" }
)

func (self Label) String() string {
    if self.Id == EntryId || self.Id == ExitId {
        return self.Name
    } else if self.Name == "" {
        return fmt.Sprintf("L_%d", self.Id)
    } else {
        return fmt.Sprintf("%s_%d", self.Name, self.Id)
    }
}

// Less orders labels by numeric identity, used for deterministic traversal.
func (self Label) Less(other Label) bool {
    return self.Id < other.Id
}

// LabelFactory mints fresh labels from a monotonic counter. A factory is
// scoped to the compilation of one function; it is not safe for concurrent
// use, thread one factory through the passes instead of sharing it.
type LabelFactory struct {
    n int32
}

func NewLabelFactory() *LabelFactory {
    return new(LabelFactory)
}

// Fresh mints a new label, optionally carrying a human-supplied name.
func (self *LabelFactory) Fresh(name string) Label {
    p := self.n
    self.n++
    return Label { Id: p, Name: name }
}

// Reset rewinds the counter. Labels minted before the reset must not be
// mixed with labels minted after it.
func (self *LabelFactory) Reset() {
    self.n = 0
}
