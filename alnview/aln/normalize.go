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
	"github.com/pkg/errors"
)

// Normalize maps a unit's contig-local coordinates onto scaffold-global
// coordinates.
//
// For reverse-strand units the raw target span is first reflected about its
// contig, new_start = contig_length - raw_end and new_end = contig_length -
// raw_start, so start <= end holds afterwards. Query coordinates are never
// flipped: the stored convention encodes the target strand but reports
// query coordinates already in forward orientation. Contig offsets are then
// added on both sides. Overflow on an offset addition is a hard error for
// the unit, a corrupt offset table must not produce silently wrong
// coordinates.
//
// Sides without catalog data pass through unchanged, except that the strand
// flip still applies when a contig length is known.
func Normalize(u *Unit, query, target *Catalog) error {
	te, tok := target.Entry(u.TargetID)

	if u.Reverse {
		clen := te.ContigLen
		if clen == 0 {
			clen = te.Length
		}
		if tok && clen > 0 {
			u.TargetStart, u.TargetEnd = clen-u.TargetEnd, clen-u.TargetStart
		}
	}

	if qe, ok := query.Entry(u.QueryID); ok {
		var err error
		if u.QueryStart, err = addOffset(u.QueryStart, qe.Offset); err != nil {
			return errors.Wrapf(err, "query %d", u.QueryID)
		}
		if u.QueryEnd, err = addOffset(u.QueryEnd, qe.Offset); err != nil {
			return errors.Wrapf(err, "query %d", u.QueryID)
		}
	}
	if tok {
		var err error
		if u.TargetStart, err = addOffset(u.TargetStart, te.Offset); err != nil {
			return errors.Wrapf(err, "target %d", u.TargetID)
		}
		if u.TargetEnd, err = addOffset(u.TargetEnd, te.Offset); err != nil {
			return errors.Wrapf(err, "target %d", u.TargetID)
		}
	}
	return nil
}

func addOffset(v, offset int64) (int64, error) {
	s := v + offset
	if (offset > 0 && s < v) || (offset < 0 && s > v) {
		return 0, errors.Errorf("coordinate overflow: %d + %d", v, offset)
	}
	return s, nil
}
