// SPDX-License-Identifier: Unlicense OR MIT

package gpu

// Releaser is implemented by GPU objects that must be freed
// explicitly.
type Releaser interface {
	Release()
}

// Scope owns a set of GPU objects and releases them together, most
// recently added first. The zero Scope is ready to use.
type Scope struct {
	res []Releaser
}

// Add transfers ownership of r to s.
func (s *Scope) Add(r Releaser) {
	s.res = append(s.res, r)
}

// Len returns the number of objects owned by s.
func (s *Scope) Len() int {
	return len(s.res)
}

// Release releases every object in s. Subsequent calls do nothing
// until more objects are added.
func (s *Scope) Release() {
	for i := len(s.res) - 1; i >= 0; i-- {
		s.res[i].Release()
	}
	s.res = nil
}
