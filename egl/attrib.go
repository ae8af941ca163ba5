// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package egl

// AttribList is a list of (name, value) pairs passed to the platform.
// Use Terminated to obtain the None-terminated form the driver expects.
type AttribList []Int

// Add appends a name/value pair.
func (l AttribList) Add(name, value Int) AttribList {
	return append(l, name, value)
}

// Terminated returns a copy of the list followed by None.
func (l AttribList) Terminated() []Int {
	out := make([]Int, 0, len(l)+1)
	out = append(out, l...)
	return append(out, None)
}

// Lookup returns the value for name in a (possibly None-terminated) list.
func Lookup(attribs []Int, name Int) (Int, bool) {
	for i := 0; i+1 < len(attribs); i += 2 {
		if attribs[i] == None {
			break
		}
		if attribs[i] == name {
			return attribs[i+1], true
		}
	}
	return 0, false
}
