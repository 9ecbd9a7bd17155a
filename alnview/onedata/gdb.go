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

package onedata

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
)

// SeqFileExts are the sequence file suffixes recognized when resolving a
// genome reference, longest first so ".fasta.gz" wins over ".fa".
var SeqFileExts = []string{
	".fasta.gz", ".fasta",
	".fna.gz", ".fna",
	".fa.gz", ".fa",
}

// LoadGenomeDB loads a genome catalog from a ONE genome database
// (.1gdb/.gdb, S/G/C records) or, for files with a sequence suffix, directly
// from FASTA. Contig ids are assigned in encounter order.
func LoadGenomeDB(path string) ([]Sequence, error) {
	if hasSeqFileExt(path) {
		return loadFasta(path)
	}

	f, err := Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open genome database")
	}
	defer f.Close()

	var skel skelBuilder
	for {
		tag := f.Next()
		if tag == 0 {
			break
		}
		skel.record(tag, f)
	}
	return skel.finish(), nil
}

func hasSeqFileExt(path string) bool {
	p := strings.ToLower(path)
	for _, ext := range SeqFileExts {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}

// loadFasta treats every sequence as a single-contig scaffold at offset 0.
func loadFasta(path string) ([]Sequence, error) {
	seq.ValidateSeq = false

	reader, err := fastx.NewReader(nil, path, "")
	if err != nil {
		return nil, errors.Wrap(err, "open sequence file")
	}
	defer reader.Close()

	seqs := make([]Sequence, 0, 64)
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrap(err, "read sequence file")
		}

		l := int64(len(record.Seq.Seq))
		seqs = append(seqs, Sequence{
			Name:      string(record.ID),
			Length:    l,
			Offset:    0,
			ContigLen: l,
		})
	}
	return seqs, nil
}
