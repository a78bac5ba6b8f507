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

// Temp is a virtual register. Non-negative ids are ordinary temps minted by
// a TempFactory; negative ids are pre-bound to hard registers, id -(i+1)
// standing for the machine register with index i.
type Temp int32

func (self Temp) Id() int32 {
    return int32(self)
}

// IsPhys reports whether the temp is pre-bound to a hard register.
func (self Temp) IsPhys() bool {
    return self < 0
}

// Phys returns the hard-register index the temp is bound to.
func (self Temp) Phys() int {
    if !self.IsPhys() {
        panic(fmt.Sprintf("abs: t%d is not bound to a machine register", self))
    }
    return int(-self - 1)
}

// TempOf returns the temp pre-bound to the hard register with index i.
func TempOf(i int) Temp {
    if i < 0 || i >= NumRegs {
        panic(fmt.Sprintf("abs: invalid register index: %d", i))
    }
    return Temp(-i - 1)
}

func (self Temp) String() string {
    if self.IsPhys() {
        return "%" + AMD64.Name(self.Phys())
    } else {
        return fmt.Sprintf("t%d", int32(self))
    }
}

// TempFactory mints fresh temps from a monotonic counter, one factory per
// function compilation.
type TempFactory struct {
    n int32
}

func NewTempFactory() *TempFactory {
    return new(TempFactory)
}

func (self *TempFactory) Fresh() Temp {
    p := self.n
    self.n++
    return Temp(p)
}

func (self *TempFactory) Reset() {
    self.n = 0
}
