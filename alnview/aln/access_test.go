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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/oneutils/alnview/alnview/aln/alnidx"
	"github.com/oneutils/alnview/alnview/onedata"
)

// three units, unit 1 on the reverse strand
func threeUnitRecords() []memRecord {
	return []memRecord{
		intsRec(onedata.TagSpacing, 50),
		primary(0, 0, 30, 0, 100, 130),
		intsRec(onedata.TagDiffs, 2),
		primary(1, 100, 130, 0, 10, 40),
		{tag: onedata.TagReverse},
		listRec(onedata.TagTrace, 10, 20),
		listRec(onedata.TagTraceDiff, 1, 1),
		primary(0, 50, 60, 1, 70, 80),
		{tag: onedata.TagGroup},
	}
}

func TestBuildIndex(t *testing.T) {
	s := &memStream{recs: threeUnitRecords()}

	idx, err := BuildIndex(s, false)
	if err != nil {
		t.Fatal(err)
	}
	if idx.Spacing != 50 {
		t.Errorf("spacing, expected: 50, returned: %d", idx.Spacing)
	}
	if idx.NumAlignments() != 3 {
		t.Fatalf("alignment count, expected: 3, returned: %d", idx.NumAlignments())
	}
	// record numbers of the three primary records
	for i, want := range []int64{2, 4, 8} {
		if idx.Positions[i] != want {
			t.Errorf("position %d, expected: %d, returned: %d", i, want, idx.Positions[i])
		}
	}
}

func TestBuildIndexDefaultSpacing(t *testing.T) {
	s := &memStream{recs: []memRecord{primary(0, 0, 1, 0, 0, 1)}}

	idx, err := BuildIndex(s, false)
	if err != nil {
		t.Fatal(err)
	}
	if idx.Spacing != onedata.DefaultSpacing {
		t.Errorf("spacing without a header record, expected: %d, returned: %d",
			onedata.DefaultSpacing, idx.Spacing)
	}
}

func TestFetchDerived(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.1aln")
	s := &memStream{recs: threeUnitRecords()}

	u, err := Fetch(s, path, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	if u.QueryID != 1 || !u.Reverse || len(u.Tracepoints) != 2 {
		t.Errorf("unexpected unit 1: %+v", u)
	}

	// the scan must have persisted the sidecar
	if _, err = os.Stat(path + alnidx.FileExt); err != nil {
		t.Errorf("sidecar not persisted: %s", err)
	}

	// and the persisted sidecar must serve the next lookup
	u2, err := Fetch(&memStream{recs: threeUnitRecords()}, path, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	if u2.QueryID != u.QueryID || u2.Reverse != u.Reverse ||
		u2.TargetStart != u.TargetStart || u2.TargetEnd != u.TargetEnd {
		t.Errorf("sidecar lookup differs from scan lookup: %+v vs %+v", u2, u)
	}
}

func TestFetchDirectAndDerivedAgree(t *testing.T) {
	query := NewCatalog([]onedata.Sequence{
		{Name: "q1", Length: 500, ContigLen: 500},
		{Name: "q2", Length: 800, ContigLen: 800},
	})
	target := NewCatalog([]onedata.Sequence{
		{Name: "t1", Length: 1000, ContigLen: 1000},
		{Name: "t2", Length: 1500, ContigLen: 1500},
	})

	for k := int64(0); k < 3; k++ {
		dir := t.TempDir()

		direct := &memStream{recs: threeUnitRecords(), jumpable: true}
		derived := &memStream{recs: threeUnitRecords()}

		var bufDirect, bufDerived bytes.Buffer
		for _, c := range []struct {
			s   Stream
			buf *bytes.Buffer
		}{
			{direct, &bufDirect},
			{derived, &bufDerived},
		} {
			u, err := Fetch(c.s, filepath.Join(dir, "test.1aln"), k, false)
			if err != nil {
				t.Fatal(err)
			}
			if err = Normalize(u, query, target); err != nil {
				t.Fatal(err)
			}
			WriteHuman(c.buf, u, query, target, 50)
			WritePAF(c.buf, u, query, target)
		}

		if !bytes.Equal(bufDirect.Bytes(), bufDerived.Bytes()) {
			t.Errorf("alignment %d: direct and derived strategies disagree:\n%s\nvs\n%s",
				k, bufDirect.String(), bufDerived.String())
		}
	}
}

func TestFetchOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.1aln")
	s := &memStream{recs: threeUnitRecords()}

	if _, err := Fetch(s, path, 5, false); err == nil {
		t.Error("ordinal 5 of a 3-alignment file must be an error, not clamped")
	}
	if _, err := Fetch(s, path, -1, false); err == nil {
		t.Error("negative ordinals must be an error")
	}
}

func TestFetchCorruptSidecarIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.1aln")

	// declares 3 positions, carries 2
	err := os.WriteFile(path+alnidx.FileExt, []byte("50\n3\n2\n4\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	s := &memStream{recs: threeUnitRecords()}
	if _, err = Fetch(s, path, 0, false); err == nil {
		t.Error("a corrupt sidecar must not be silently rebuilt")
	}
}

func TestCountAlignments(t *testing.T) {
	s := &memStream{recs: threeUnitRecords()}
	n, err := CountAlignments(s)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("alignment count, expected: 3, returned: %d", n)
	}
}
