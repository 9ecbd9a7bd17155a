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
	"path/filepath"
	"strings"

	"github.com/oneutils/alnview/alnview/onedata"
	"github.com/shenwei356/util/pathutil"
)

// UnknownName is reported for sequence ids absent from a catalog.
const UnknownName = "unknown"

// Role markers of external references. Markers above RoleTarget are
// reserved and ignored.
const (
	RoleQuery  = 1
	RoleTarget = 2
)

// Catalog maps sequence ids to contig metadata for one side of an
// alignment. It is built once per run and read-only afterwards. A catalog
// may be empty, in which case names degrade to "unknown", lengths to 0, and
// coordinate normalization is skipped for that side.
type Catalog struct {
	Seqs map[int64]onedata.Sequence
}

// NewCatalog builds a catalog from entries whose ids are their positions.
func NewCatalog(entries []onedata.Sequence) *Catalog {
	c := &Catalog{Seqs: make(map[int64]onedata.Sequence, len(entries))}
	for i, e := range entries {
		c.Seqs[int64(i)] = e
	}
	return c
}

// Entry returns the catalog entry for id.
func (c *Catalog) Entry(id int64) (onedata.Sequence, bool) {
	e, ok := c.Seqs[id]
	return e, ok
}

// Name returns the scaffold name for id, "unknown" when absent.
func (c *Catalog) Name(id int64) string {
	if e, ok := c.Seqs[id]; ok {
		return e.Name
	}
	return UnknownName
}

// Length returns the scaffold length for id, 0 when absent.
func (c *Catalog) Length(id int64) int64 {
	if e, ok := c.Seqs[id]; ok {
		return e.Length
	}
	return 0
}

// Len returns the number of cataloged sequences.
func (c *Catalog) Len() int {
	return len(c.Seqs)
}

// Clone returns a copy sharing no state with c, for the self-alignment
// case where query and target catalogs start out equal.
func (c *Catalog) Clone() *Catalog {
	n := &Catalog{Seqs: make(map[int64]onedata.Sequence, len(c.Seqs))}
	for id, e := range c.Seqs {
		n.Seqs[id] = e
	}
	return n
}

// Loader loads a genome catalog from a resolved database or sequence file.
// onedata.LoadGenomeDB is the production implementation.
type Loader func(path string) ([]onedata.Sequence, error)

var gdbFileExts = []string{".1gdb", ".gdb"}

// ResolveCatalogs locates and loads the query and target catalogs for an
// alignment file. External references are tried first, each through the
// ordered path heuristics of resolveGenomePath; a missing target falls back
// to the embedded skeleton, a missing query to a copy of the target
// (self-alignment). Resolution failures degrade to empty catalogs and are
// returned as warnings, never as errors.
func ResolveCatalogs(alnPath string, hdr *onedata.Header, load Loader) (query, target *Catalog, warnings []string) {
	dir := filepath.Dir(alnPath)

	for _, ref := range hdr.Refs {
		var side **Catalog
		switch ref.Role {
		case RoleQuery:
			side = &query
		case RoleTarget:
			side = &target
		default: // reserved/unknown role markers
			continue
		}
		if *side != nil {
			continue
		}

		file := resolveGenomePath(ref.Path, dir)
		if file == "" {
			warnings = append(warnings, fmt.Sprintf(
				"genome database not found for reference %s, sequence names will be reported as %s",
				ref.Path, UnknownName))
			continue
		}

		entries, err := load(file)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("failed to load genome database %s: %s", file, err))
			continue
		}
		*side = NewCatalog(entries)
	}

	if target == nil && len(hdr.Skeleton) > 0 {
		target = NewCatalog(hdr.Skeleton)
	}
	if target == nil {
		target = NewCatalog(nil)
	}
	if query == nil {
		query = target.Clone()
	}
	return query, target, warnings
}

// resolveGenomePath tries candidate paths for a declared genome reference
// in order: the path as given, the path with a database suffix appended,
// the path with a sequence suffix swapped for a database suffix, then the
// same forms relative to the alignment file's directory with the
// suffix-swapped form first, so a database sitting next to the alignment
// file wins over the raw sequence file it was built from. The first
// existing path is returned, "" when none exists.
func resolveGenomePath(path, alnDir string) string {
	candidates := make([]string, 0, 12)

	candidates = append(candidates, path)
	for _, ext := range gdbFileExts {
		candidates = append(candidates, path+ext)
	}
	if base, ok := trimSeqFileExt(path); ok {
		for _, ext := range gdbFileExts {
			candidates = append(candidates, base+ext)
		}
	}

	local := filepath.Join(alnDir, filepath.Base(path))
	if local != path {
		if base, ok := trimSeqFileExt(local); ok {
			for _, ext := range gdbFileExts {
				candidates = append(candidates, base+ext)
			}
		}
		for _, ext := range gdbFileExts {
			candidates = append(candidates, local+ext)
		}
		candidates = append(candidates, local)
	}

	for _, c := range candidates {
		if existed, err := pathutil.Exists(c); err == nil && existed {
			return c
		}
	}
	return ""
}

func trimSeqFileExt(path string) (string, bool) {
	p := strings.ToLower(path)
	for _, ext := range onedata.SeqFileExts {
		if strings.HasSuffix(p, ext) {
			return path[:len(path)-len(ext)], true
		}
	}
	return path, false
}
