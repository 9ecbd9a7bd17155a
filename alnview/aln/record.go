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

// Package aln reconstructs pairwise alignment units from ONE (.1aln) record
// streams, maps contig-local coordinates onto scaffold coordinates, and
// renders the units in a human-readable block format or as PAF lines.
package aln

// Stream is the record stream consumed by this package. *onedata.File is
// the production implementation; any record source with the same behavior
// works, e.g. one backed by a binary file with a native index.
type Stream interface {
	// Next advances to the next record and returns its type tag, 0 at the
	// end of the stream.
	Next() byte
	// Int returns the i-th (0-based) integer field of the current record.
	Int(i int) int64
	// IntList returns the current record's integer list, nil when absent.
	IntList() []int64
	// Str returns the current record's string field.
	Str() string
	// LineNumber reports the number of the current record, stable across
	// Rewind.
	LineNumber() int64
	// Jump positions the stream just before the n-th (1-based) record of
	// the given type, or reports onedata.ErrJumpUnsupported.
	Jump(tag byte, n int64) error
	// Rewind repositions the stream at the first record.
	Rewind() error
}

// Unit is one pairwise alignment: a primary record plus its trailing
// attribute records. Coordinates are contig-local as read and
// scaffold-global after Normalize.
type Unit struct {
	QueryID  int64
	TargetID int64

	QueryStart  int64
	QueryEnd    int64
	TargetStart int64
	TargetEnd   int64

	Reverse     bool
	Differences int64

	// Tracepoints and TraceDiffs are paired positionally. Either may be
	// empty; an empty list read from the file is kept as an empty non-nil
	// slice, distinct from absent (nil).
	Tracepoints []int64
	TraceDiffs  []int64
}
