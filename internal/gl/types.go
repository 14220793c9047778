// SPDX-License-Identifier: Unlicense OR MIT

package gl

import "unsafe"

type Enum uint

type (
	Buffer  struct{ V uint }
	Program struct{ V uint }
	Shader  struct{ V uint }
	Uniform struct{ V int }
	// Sync wraps a GLsync fence object.
	Sync struct{ V unsafe.Pointer }
)

func (p Program) Valid() bool {
	return p.V != 0
}

func (s Shader) Valid() bool {
	return s.V != 0
}

func (u Uniform) Valid() bool {
	return u.V != -1
}

func (s Sync) Valid() bool {
	return s.V != nil
}
