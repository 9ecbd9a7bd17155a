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
	"fmt"
	"io"
	"strconv"
)

// PAFMappingQuality is the fixed mapping-quality sentinel of emitted PAF
// lines, meaning "unavailable".
const PAFMappingQuality = 255

// StrandSymbol returns the PAF strand symbol of u.
func StrandSymbol(u *Unit) byte {
	if u.Reverse {
		return '-'
	}
	return '+'
}

// WriteHuman renders one unit as a multi-line block. Tracepoint and
// trace-diff lists are always printed in full.
func WriteHuman(w io.Writer, u *Unit, query, target *Catalog, spacing int64) {
	fmt.Fprintf(w, "\nAlignment:\n")
	fmt.Fprintf(w, "  Query:  %s (len=%d) %s:%d-%d\n",
		query.Name(u.QueryID), query.Length(u.QueryID),
		query.Name(u.QueryID), u.QueryStart, u.QueryEnd)
	fmt.Fprintf(w, "  Target: %s (len=%d) %s:%d-%d\n",
		target.Name(u.TargetID), target.Length(u.TargetID),
		target.Name(u.TargetID), u.TargetStart, u.TargetEnd)
	fmt.Fprintf(w, "  Strand: %c\n", StrandSymbol(u))
	fmt.Fprintf(w, "  Differences: %d\n", u.Differences)
	fmt.Fprintf(w, "  Trace spacing: %d\n", spacing)

	fmt.Fprintf(w, "  Tracepoints: %d values\n", len(u.Tracepoints))
	writeIntLine(w, u.Tracepoints)

	if len(u.TraceDiffs) > 0 {
		fmt.Fprintf(w, "  Trace diffs: %d values\n", len(u.TraceDiffs))
		writeIntLine(w, u.TraceDiffs)
	}
}

func writeIntLine(w io.Writer, vals []int64) {
	if len(vals) == 0 {
		return
	}
	io.WriteString(w, "   ")
	for _, v := range vals {
		io.WriteString(w, " ")
		io.WriteString(w, strconv.FormatInt(v, 10))
	}
	io.WriteString(w, "\n")
}

// PAFCounts returns the match count and block length of a unit:
// block = query span + target span (spans floored at 0),
// matches = max(0, (block - differences) / 2). Downstream tools parse these
// numerically, so the formula is fixed.
func PAFCounts(u *Unit) (matches, block int64) {
	qspan := u.QueryEnd - u.QueryStart
	if qspan < 0 {
		qspan = 0
	}
	tspan := u.TargetEnd - u.TargetStart
	if tspan < 0 {
		tspan = 0
	}
	block = qspan + tspan
	matches = (block - u.Differences) / 2
	if matches < 0 {
		matches = 0
	}
	return matches, block
}

// WritePAF renders one unit as a tab-delimited PAF line. Differences are
// emitted as an NM tag; when both the tracepoint and trace-diff lists are
// non-empty, a tp tag pairs each trace diff with its tracepoint
// ("diff,tracepoint" joined by ';'). Lists of unequal lengths are truncated
// to the shorter one and reported back so callers can flag the
// inconsistency.
func WritePAF(w io.Writer, u *Unit, query, target *Catalog) (listLengthMismatch bool) {
	matches, block := PAFCounts(u)

	fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%c\t%s\t%d\t%d\t%d\t%d\t%d\t%d",
		query.Name(u.QueryID), query.Length(u.QueryID),
		u.QueryStart, u.QueryEnd,
		StrandSymbol(u),
		target.Name(u.TargetID), target.Length(u.TargetID),
		u.TargetStart, u.TargetEnd,
		matches, block, PAFMappingQuality)

	fmt.Fprintf(w, "\tNM:i:%d", u.Differences)

	if len(u.Tracepoints) > 0 && len(u.TraceDiffs) > 0 {
		n := len(u.Tracepoints)
		if len(u.TraceDiffs) < n {
			n = len(u.TraceDiffs)
		}
		listLengthMismatch = len(u.Tracepoints) != len(u.TraceDiffs)

		io.WriteString(w, "\ttp:Z:")
		for i := 0; i < n; i++ {
			if i > 0 {
				io.WriteString(w, ";")
			}
			io.WriteString(w, strconv.FormatInt(u.TraceDiffs[i], 10))
			io.WriteString(w, ",")
			io.WriteString(w, strconv.FormatInt(u.Tracepoints[i], 10))
		}
	}

	io.WriteString(w, "\n")
	return listLengthMismatch
}
