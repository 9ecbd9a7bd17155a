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

package alnidx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestRoundTrip(t *testing.T) {
	tests := []Index{
		{Spacing: 100, Positions: nil},
		{Spacing: 50, Positions: []int64{7}},
		{Spacing: 100, Positions: []int64{7, 13, 19}},
	}

	for i, test := range tests {
		file := filepath.Join(t.TempDir(), "test.1aln.idx")
		if err := test.Write(file); err != nil {
			t.Fatalf("[#%d] write: %s", i, err)
		}

		idx, err := Load(file)
		if err != nil {
			t.Fatalf("[#%d] load: %s", i, err)
		}
		if idx.Spacing != test.Spacing {
			t.Errorf("[#%d] spacing, expected: %d, returned: %d", i, test.Spacing, idx.Spacing)
		}
		if idx.NumAlignments() != len(test.Positions) {
			t.Fatalf("[#%d] count, expected: %d, returned: %d",
				i, len(test.Positions), idx.NumAlignments())
		}
		for j, p := range test.Positions {
			if idx.Positions[j] != p {
				t.Errorf("[#%d] position %d, expected: %d, returned: %d", i, j, p, idx.Positions[j])
			}
		}
	}
}

func TestWriteLeavesNoTemporaryFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.1aln.idx")

	idx := Index{Spacing: 100, Positions: []int64{1, 2, 3}}
	if err := idx.Write(file); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "test.1aln.idx" {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("expected only the sidecar file, found: %s", strings.Join(names, ", "))
	}
}

func TestLoadCorrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"count larger than positions", "100\n3\n7\n13\n"},
		{"count smaller than positions", "100\n1\n7\n13\n"},
		{"missing count", "100\n"},
		{"non-integer position", "100\n1\nseven\n"},
		{"empty file", ""},
	}

	for _, test := range tests {
		file := filepath.Join(t.TempDir(), "test.1aln.idx")
		if err := os.WriteFile(file, []byte(test.content), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := Load(file)
		if err == nil {
			t.Errorf("%s: expected an error", test.name)
			continue
		}
		if errors.Cause(err) != ErrCorrupt {
			t.Errorf("%s: expected ErrCorrupt, returned: %s", test.name, err)
		}
	}
}

func TestLoadMissingFileKeepsOSError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.idx"))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !os.IsNotExist(errors.Cause(err)) {
		t.Errorf("missing sidecar must surface the os error, returned: %s", err)
	}
}
