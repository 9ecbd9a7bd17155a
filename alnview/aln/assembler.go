// Copyright © 2024-2026 alnview authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package aln

import (
	"io"

	"github.com/oneutils/alnview/alnview/onedata"
)

// Assembler folds a primary alignment record and its trailing attribute
// records into one Unit. A unit is complete only once its boundary record
// (the next primary record, a group boundary, or the end of the stream) has
// been seen; Next never returns a partially built unit.
type Assembler struct {
	s       Stream
	current *Unit
	done    bool
}

// NewAssembler returns an assembler reading from the current position of s.
func NewAssembler(s Stream) *Assembler {
	return &Assembler{s: s}
}

// Next returns the next complete alignment unit, or io.EOF after the last
// one. Records of unknown types are skipped; attribute records arriving
// before any primary record are skipped too.
func (a *Assembler) Next() (*Unit, error) {
	if a.done {
		return nil, io.EOF
	}
	for {
		tag := a.s.Next()
		switch tag {
		case 0:
			a.done = true
			if u := a.current; u != nil {
				a.current = nil
				return u, nil
			}
			return nil, io.EOF
		case onedata.TagAlignment:
			u := a.current
			a.current = unitFromPrimary(a.s)
			if u != nil {
				return u, nil
			}
		case onedata.TagGroup:
			if u := a.current; u != nil {
				a.current = nil
				return u, nil
			}
		default:
			if a.current != nil {
				applyAttribute(a.current, tag, a.s)
			}
		}
	}
}

// unitFromPrimary captures the six id/coordinate fields of the primary
// record the stream is currently positioned on.
func unitFromPrimary(s Stream) *Unit {
	return &Unit{
		QueryID:     s.Int(0),
		QueryStart:  s.Int(1),
		QueryEnd:    s.Int(2),
		TargetID:    s.Int(3),
		TargetStart: s.Int(4),
		TargetEnd:   s.Int(5),
	}
}

// applyAttribute folds one attribute record into u. Attribute records may
// arrive in any order after their primary record. Unknown tags are ignored
// for forward compatibility.
func applyAttribute(u *Unit, tag byte, s Stream) {
	switch tag {
	case onedata.TagReverse:
		u.Reverse = true
	case onedata.TagDiffs:
		u.Differences = s.Int(0)
	case onedata.TagTrace:
		if list := s.IntList(); list != nil {
			u.Tracepoints = list
		}
	case onedata.TagTraceDiff:
		if list := s.IntList(); list != nil {
			u.TraceDiffs = list
		}
	}
}

// resumeUnit assembles the unit whose primary record the stream has just
// read, consuming records up to the unit's boundary.
func resumeUnit(s Stream) *Unit {
	u := unitFromPrimary(s)
	for {
		tag := s.Next()
		switch tag {
		case 0, onedata.TagAlignment, onedata.TagGroup:
			return u
		default:
			applyAttribute(u, tag, s)
		}
	}
}
