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

// Package alnidx persists the derived alignment index: the record position
// of every primary alignment record of a .1aln file plus the global trace
// spacing. The sidecar file is plain text, line 1 the trace spacing, line 2
// the record count, then one position per line in encounter order.
package alnidx

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// FileExt is the sidecar file extension, appended to the alignment file path.
const FileExt = ".idx"

// ErrCorrupt means the sidecar does not match its own declared layout.
// A corrupt sidecar is reported, never silently repaired or truncated.
var ErrCorrupt = errors.New("alignment index: corrupt sidecar file")

// Index maps alignment ordinals to record positions.
type Index struct {
	Spacing   int64
	Positions []int64
}

// NumAlignments returns the number of indexed primary records.
func (idx *Index) NumAlignments() int {
	return len(idx.Positions)
}

// Load reads a sidecar index file. A missing file is reported with the
// original os error so callers can decide to build the index instead.
func Load(file string) (*Index, error) {
	fh, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	scanner := bufio.NewScanner(fh)
	readInt := func(what string) (int64, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, errors.Wrapf(ErrCorrupt, "%s: missing %s", file, what)
		}
		v, err := strconv.ParseInt(strings.TrimSpace(scanner.Text()), 10, 64)
		if err != nil {
			return 0, errors.Wrapf(ErrCorrupt, "%s: invalid %s: %q", file, what, scanner.Text())
		}
		return v, nil
	}

	idx := &Index{}
	if idx.Spacing, err = readInt("trace spacing"); err != nil {
		return nil, err
	}
	count, err := readInt("record count")
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, errors.Wrapf(ErrCorrupt, "%s: negative record count %d", file, count)
	}

	idx.Positions = make([]int64, 0, count)
	for i := int64(0); i < count; i++ {
		p, err := readInt(fmt.Sprintf("position %d of %d", i+1, count))
		if err != nil {
			return nil, err
		}
		idx.Positions = append(idx.Positions, p)
	}

	// trailing lines mean the declared count is wrong too
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			return nil, errors.Wrapf(ErrCorrupt,
				"%s: more than the declared %d positions", file, count)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return idx, nil
}

// Write persists the index. The sidecar is written to a temporary file and
// renamed into place, so concurrent readers never observe a partial index.
func (idx *Index) Write(file string) error {
	tmp := file + ".tmp"
	fh, err := os.Create(tmp)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(fh)
	fmt.Fprintf(w, "%d\n", idx.Spacing)
	fmt.Fprintf(w, "%d\n", len(idx.Positions))
	for _, p := range idx.Positions {
		fmt.Fprintf(w, "%d\n", p)
	}

	if err = w.Flush(); err != nil {
		fh.Close()
		os.Remove(tmp)
		return err
	}
	if err = fh.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, file)
}
