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

// Package onedata reads the ASCII form of ONE-code record files (.1aln,
// .1gdb). A record is one line: a one-byte type tag followed by
// whitespace-separated fields. Integer lists and strings are length-prefixed,
// e.g. "T 3 12 34 56" and "S 4 chr1".
package onedata

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"
)

// Record type tags of alignment (.1aln) and genome database (.1gdb) files.
const (
	TagAlignment = 'A' // primary record: query id/start/end, target id/start/end
	TagReverse   = 'R' // the alignment maps to the reverse strand of the target
	TagDiffs     = 'D' // number of differences
	TagTrace     = 'T' // tracepoint list
	TagTraceDiff = 'X' // per-tracepoint-interval difference list
	TagGroup     = 'g' // group boundary
	TagSpacing   = 't' // global tracepoint spacing
	TagRef       = '<' // external reference: path + role marker
	TagScaffold  = 'S' // genome skeleton: scaffold name
	TagGap       = 'G' // genome skeleton: gap length within a scaffold
	TagContig    = 'C' // genome skeleton: contig length
)

// DefaultSpacing is assumed when a file carries no spacing ('t') record
// before its first data record.
const DefaultSpacing int64 = 100

// ErrJumpUnsupported is returned by Jump when the underlying file carries no
// native record index. Callers fall back to a derived index.
var ErrJumpUnsupported = errors.New("onedata: file has no native record index")

// BufferSize is the size of the line scanning buffer.
var BufferSize = 1 << 20

// Sequence is one entry of a genome catalog: a contig placed within its
// parent scaffold.
type Sequence struct {
	Name      string // scaffold name
	Length    int64  // total scaffold length
	Offset    int64  // contig start within the scaffold
	ContigLen int64
}

// Ref is an external genome reference declared in a .1aln header.
// Role 1 marks the query genome, role 2 the target genome.
type Ref struct {
	Path string
	Role int64
}

// Header is the metadata section of a .1aln file, everything before the
// first alignment or group record.
type Header struct {
	Spacing  int64
	Refs     []Ref
	Skeleton []Sequence // embedded genome skeleton, may be empty
}

// File reads one record at a time from an ASCII ONE-code file,
// transparently decompressing gzipped input.
type File struct {
	path    string
	fh      *xopen.Reader
	scanner *bufio.Scanner

	line int64 // number of the current record, 1-based
	tag  byte
	rest string // fields of the current record, tag stripped
}

// Open opens a record file for forward reading.
func Open(path string) (*File, error) {
	fh, err := xopen.Ropen(path)
	if err != nil {
		return nil, err
	}
	f := &File{path: path, fh: fh}
	f.reset(fh)
	return f, nil
}

func (f *File) reset(fh *xopen.Reader) {
	f.fh = fh
	f.scanner = bufio.NewScanner(fh)
	f.scanner.Buffer(make([]byte, BufferSize), BufferSize)
	f.line = 0
	f.tag = 0
	f.rest = ""
}

// Next advances to the next record and returns its type tag, or 0 at the
// end of the stream.
func (f *File) Next() byte {
	for f.scanner.Scan() {
		line := strings.TrimRight(f.scanner.Text(), "\r\n")
		f.line++
		if line == "" {
			continue
		}
		f.tag = line[0]
		if len(line) > 1 {
			f.rest = strings.TrimLeft(line[1:], " \t")
		} else {
			f.rest = ""
		}
		return f.tag
	}
	f.tag = 0
	f.rest = ""
	return 0
}

// Int returns the i-th (0-based) integer field of the current record.
// Malformed or missing fields read as 0.
func (f *File) Int(i int) int64 {
	fields := strings.Fields(f.rest)
	if i < 0 || i >= len(fields) {
		return 0
	}
	v, _ := strconv.ParseInt(fields[i], 10, 64)
	return v
}

// IntList returns the length-prefixed integer list of the current record,
// or nil if the record carries none. An empty list ("T 0") returns an empty
// non-nil slice.
func (f *File) IntList() []int64 {
	fields := strings.Fields(f.rest)
	if len(fields) == 0 {
		return nil
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return nil
	}
	if n > len(fields)-1 {
		n = len(fields) - 1
	}
	vals := make([]int64, 0, n)
	for _, s := range fields[1 : n+1] {
		v, _ := strconv.ParseInt(s, 10, 64)
		vals = append(vals, v)
	}
	return vals
}

// Str returns the length-prefixed string field of the current record.
func (f *File) Str() string {
	r := f.rest
	i := strings.IndexAny(r, " \t")
	if i < 0 {
		return ""
	}
	n, err := strconv.Atoi(r[:i])
	if err != nil || n < 0 {
		return ""
	}
	s := r[i+1:]
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}

// LineNumber returns the record number of the record last returned by Next.
// Numbers are 1-based and stable across Rewind.
func (f *File) LineNumber() int64 {
	return f.line
}

// Jump positions the stream just before the n-th (1-based) record of the
// given type. ASCII files carry no native index, so this always reports
// ErrJumpUnsupported.
func (f *File) Jump(tag byte, n int64) error {
	return ErrJumpUnsupported
}

// Rewind repositions the stream at the first record.
// Compressed input is not seekable, so the file is reopened.
func (f *File) Rewind() error {
	if f.fh != nil {
		f.fh.Close()
		f.fh = nil
	}
	fh, err := xopen.Ropen(f.path)
	if err != nil {
		return errors.Wrap(err, "rewind")
	}
	f.reset(fh)
	return nil
}

// Close releases the underlying file handle.
func (f *File) Close() error {
	if f.fh == nil {
		return nil
	}
	err := f.fh.Close()
	f.fh = nil
	return err
}

// ReadHeader consumes the metadata section: spacing, external references and
// the embedded genome skeleton. It stops at the first alignment or group
// record (which is consumed), so data passes must Rewind first.
func (f *File) ReadHeader() (*Header, error) {
	h := &Header{Spacing: DefaultSpacing}
	var skel skelBuilder
	for {
		tag := f.Next()
		if tag == 0 || tag == TagAlignment || tag == TagGroup {
			break
		}
		switch tag {
		case TagSpacing:
			h.Spacing = f.Int(0)
		case TagRef:
			// "< <len> <path> <role>"
			h.Refs = append(h.Refs, Ref{Path: f.Str(), Role: f.Int(2)})
		case TagScaffold, TagGap, TagContig:
			skel.record(tag, f)
		}
	}
	h.Skeleton = skel.finish()
	return h, nil
}

// skelBuilder folds S/G/C records into a contig catalog. Contig ids are
// assigned in encounter order; each contig carries its scaffold's name and
// total length.
type skelBuilder struct {
	entries   []Sequence
	name      string
	offset    int64
	scafStart int // index of the first contig of the current scaffold
}

type intReader interface {
	Int(i int) int64
	Str() string
}

func (b *skelBuilder) record(tag byte, f intReader) {
	switch tag {
	case TagScaffold:
		b.closeScaffold()
		b.name = f.Str()
		b.offset = 0
		b.scafStart = len(b.entries)
	case TagGap:
		b.offset += f.Int(0)
	case TagContig:
		clen := f.Int(0)
		b.entries = append(b.entries, Sequence{
			Name:      b.name,
			Offset:    b.offset,
			ContigLen: clen,
		})
		b.offset += clen
	}
}

func (b *skelBuilder) closeScaffold() {
	for i := b.scafStart; i < len(b.entries); i++ {
		b.entries[i].Length = b.offset
	}
}

func (b *skelBuilder) finish() []Sequence {
	b.closeScaffold()
	return b.entries
}
