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
	"github.com/oneutils/alnview/alnview/onedata"
	"github.com/pkg/errors"
)

// memRecord is one typed record of a memStream.
type memRecord struct {
	tag  byte
	ints []int64
	list []int64
	str  string
}

// memStream implements Stream over a record slice. With jumpable set it
// also models a file with a native record index, which onedata's ASCII
// reader never provides.
type memStream struct {
	recs     []memRecord
	i        int // 1-based number of the current record, 0 = before first
	jumpable bool
}

func (s *memStream) cur() *memRecord {
	if s.i < 1 || s.i > len(s.recs) {
		return nil
	}
	return &s.recs[s.i-1]
}

func (s *memStream) Next() byte {
	if s.i >= len(s.recs) {
		s.i = len(s.recs) + 1
		return 0
	}
	s.i++
	return s.recs[s.i-1].tag
}

func (s *memStream) Int(i int) int64 {
	r := s.cur()
	if r == nil || i < 0 || i >= len(r.ints) {
		return 0
	}
	return r.ints[i]
}

func (s *memStream) IntList() []int64 {
	if r := s.cur(); r != nil {
		return r.list
	}
	return nil
}

func (s *memStream) Str() string {
	if r := s.cur(); r != nil {
		return r.str
	}
	return ""
}

func (s *memStream) LineNumber() int64 {
	return int64(s.i)
}

func (s *memStream) Jump(tag byte, n int64) error {
	if !s.jumpable {
		return onedata.ErrJumpUnsupported
	}
	var seen int64
	for i, r := range s.recs {
		if r.tag != tag {
			continue
		}
		seen++
		if seen == n {
			s.i = i
			return nil
		}
	}
	return errors.Errorf("no record %d of type %q", n, tag)
}

func (s *memStream) Rewind() error {
	s.i = 0
	return nil
}

func primary(qid, qs, qe, tid, ts, te int64) memRecord {
	return memRecord{tag: onedata.TagAlignment, ints: []int64{qid, qs, qe, tid, ts, te}}
}

func intsRec(tag byte, vals ...int64) memRecord {
	return memRecord{tag: tag, ints: vals}
}

func listRec(tag byte, vals ...int64) memRecord {
	if vals == nil {
		vals = []int64{}
	}
	return memRecord{tag: tag, list: vals}
}
