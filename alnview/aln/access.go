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
	"os"

	"github.com/oneutils/alnview/alnview/aln/alnidx"
	"github.com/oneutils/alnview/alnview/onedata"
	"github.com/pkg/errors"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Fetch retrieves the k-th (0-based) alignment unit of the file behind s.
//
// A stream with a native record index is positioned directly, costing O(1)
// relative to file size. Otherwise a derived index is loaded from the
// sidecar next to path, or built by one full forward scan and persisted
// there, and the stream is rescanned up to the recorded position. An
// ordinal at or beyond the number of alignments is an error, never clamped.
func Fetch(s Stream, path string, k int64, showProgress bool) (*Unit, error) {
	if k < 0 {
		return nil, errors.Errorf("negative alignment ordinal: %d", k)
	}

	err := s.Jump(onedata.TagAlignment, k+1)
	if err == nil {
		tag := s.Next()
		if tag != onedata.TagAlignment {
			return nil, errors.Errorf("expected an alignment record at ordinal %d, got %q", k, tag)
		}
		return resumeUnit(s), nil
	}
	if err != onedata.ErrJumpUnsupported {
		return nil, errors.Wrapf(err, "jump to alignment %d", k)
	}

	idx, err := EnsureIndex(s, path, showProgress)
	if err != nil {
		return nil, err
	}
	if k >= int64(idx.NumAlignments()) {
		return nil, errors.Errorf("alignment ordinal %d out of range: %s has %d alignments",
			k, path, idx.NumAlignments())
	}

	target := idx.Positions[k]
	if err = s.Rewind(); err != nil {
		return nil, err
	}
	for {
		tag := s.Next()
		if tag == 0 {
			return nil, errors.Errorf("alignment index of %s is stale: no record at position %d", path, target)
		}
		if s.LineNumber() != target {
			continue
		}
		if tag != onedata.TagAlignment {
			return nil, errors.Errorf("expected an alignment record at position %d of %s, got %q",
				target, path, tag)
		}
		return resumeUnit(s), nil
	}
}

// EnsureIndex returns the derived index for the alignment file at path,
// loading the sidecar when present and otherwise building the index by a
// full forward scan and persisting it. A corrupt sidecar is an error, it is
// never rebuilt behind the caller's back.
func EnsureIndex(s Stream, path string, showProgress bool) (*alnidx.Index, error) {
	file := path + alnidx.FileExt

	idx, err := alnidx.Load(file)
	if err == nil {
		return idx, nil
	}
	if !os.IsNotExist(errors.Cause(err)) {
		return nil, err
	}

	idx, err = BuildIndex(s, showProgress)
	if err != nil {
		return nil, err
	}
	if err = idx.Write(file); err != nil {
		return nil, errors.Wrap(err, "persist alignment index")
	}
	return idx, nil
}

// BuildIndex scans the whole stream once, recording the position of every
// primary alignment record and the trace spacing. A spacing record after
// the first data record no longer applies, matching the header scan.
func BuildIndex(s Stream, showProgress bool) (*alnidx.Index, error) {
	if err := s.Rewind(); err != nil {
		return nil, err
	}

	var pbs *mpb.Progress
	var bar *mpb.Bar
	if showProgress {
		pbs = mpb.New(mpb.WithWidth(40), mpb.WithOutput(os.Stderr))
		bar = pbs.AddSpinner(-1,
			mpb.PrependDecorators(
				decor.Name("indexing alignments: "),
				decor.CurrentNoUnit("%d"),
			),
		)
	}

	idx := &alnidx.Index{Spacing: onedata.DefaultSpacing}
	var inData bool
	for {
		tag := s.Next()
		if tag == 0 {
			break
		}
		switch tag {
		case onedata.TagSpacing:
			if !inData {
				idx.Spacing = s.Int(0)
			}
		case onedata.TagAlignment:
			inData = true
			idx.Positions = append(idx.Positions, s.LineNumber())
			if bar != nil {
				bar.Increment()
			}
		}
	}

	if bar != nil {
		bar.SetTotal(bar.Current(), true)
		pbs.Wait()
	}
	return idx, nil
}

// CountAlignments scans the stream and returns the number of primary
// alignment records, without touching any sidecar.
func CountAlignments(s Stream) (int, error) {
	idx, err := BuildIndex(s, false)
	if err != nil {
		return 0, err
	}
	return idx.NumAlignments(), nil
}
