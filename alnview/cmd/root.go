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

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oneutils/alnview/alnview/aln"
	"github.com/oneutils/alnview/alnview/onedata"
	"github.com/pkg/errors"
	"github.com/shenwei356/util/pathutil"
	"github.com/spf13/cobra"
)

// RootCmd is the alnview command.
var RootCmd = &cobra.Command{
	Use:   "alnview",
	Short: "view and convert ONE (.1aln) alignment files",
	Long: fmt.Sprintf(`alnview v%s: view and convert ONE (.1aln) alignment files

Coordinates are reported in scaffold units: contig-local spans are shifted
by the contig offsets of the genome databases referenced by the input file,
and reverse-strand target spans are flipped to forward orientation first.

Genome databases are located through the references recorded in the file
header, also trying ".1gdb"/".gdb" variants next to the alignment file.
Unresolvable references degrade to "unknown" sequence names.

Random access (-a/--alignment) uses the file's native record index if it
has one, and otherwise builds a line index once and keeps it in an ".idx"
sidecar file next to the input for later runs.

`, VERSION),
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		outFile := getFlagString(cmd, "out-file")
		pafOut := getFlagBool(cmd, "paf")
		metaOnly := getFlagBool(cmd, "metadata")
		ordinal := getFlagInt(cmd, "alignment")

		if pafOut && metaOnly {
			checkError(fmt.Errorf("flags -m/--metadata and -p/--paf are mutually exclusive"))
		}
		if len(args) == 0 {
			cmd.Help()
			return
		}
		if len(args) > 1 {
			checkError(fmt.Errorf("exactly one input alignment (.1aln) file is needed, given: %d", len(args)))
		}

		file := args[0]
		existed, err := pathutil.Exists(file)
		checkError(err)
		if !existed {
			checkError(fmt.Errorf("input file not found: %s", file))
		}

		// ---------------------------------------------------------------
		// metadata: trace spacing, external references, embedded skeleton

		f, err := onedata.Open(file)
		checkError(errors.Wrap(err, file))
		defer f.Close()

		hdr, err := f.ReadHeader()
		checkError(err)
		if opt.Verbose {
			log.Infof("trace point spacing: %d", hdr.Spacing)
		}

		qcat, tcat, warnings := aln.ResolveCatalogs(file, hdr, onedata.LoadGenomeDB)
		for _, w := range warnings {
			log.Warning(w)
		}
		if opt.Verbose {
			log.Infof("found %d query and %d target sequences", qcat.Len(), tcat.Len())
		}

		// ---------------------------------------------------------------
		// output file handler

		outfh, gw, w, err := outStream(outFile, strings.HasSuffix(outFile, ".gz"), opt.CompressionLevel)
		checkError(err)
		defer func() {
			outfh.Flush()
			if gw != nil {
				gw.Close()
			}
			w.Close()
		}()

		// ---------------------------------------------------------------

		if metaOnly {
			n, err := aln.CountAlignments(f)
			checkError(err)

			fmt.Fprintf(outfh, "file\t%s\n", file)
			fmt.Fprintf(outfh, "trace_spacing\t%d\n", hdr.Spacing)
			fmt.Fprintf(outfh, "alignments\t%d\n", n)
			fmt.Fprintf(outfh, "query_sequences\t%d\n", qcat.Len())
			fmt.Fprintf(outfh, "target_sequences\t%d\n", tcat.Len())
			return
		}

		if ordinal >= 0 {
			u, err := aln.Fetch(f, file, int64(ordinal), opt.Verbose)
			checkError(err)
			checkError(aln.Normalize(u, qcat, tcat))
			writeUnit(outfh, u, qcat, tcat, hdr.Spacing, pafOut)
			return
		}

		checkError(f.Rewind())
		assembler := aln.NewAssembler(f)
		var n int
		for {
			u, err := assembler.Next()
			if err == io.EOF {
				break
			}
			checkError(err)

			checkError(aln.Normalize(u, qcat, tcat))
			writeUnit(outfh, u, qcat, tcat, hdr.Spacing, pafOut)
			n++
		}
		if opt.Verbose {
			log.Infof("%d alignments", n)
		}
	},
}

func writeUnit(w io.Writer, u *aln.Unit, qcat, tcat *aln.Catalog, spacing int64, pafOut bool) {
	if !pafOut {
		aln.WriteHuman(w, u, qcat, tcat, spacing)
		return
	}
	if aln.WritePAF(w, u, qcat, tcat) {
		log.Warningf("alignment %s:%d-%d vs %s:%d-%d: tracepoint and trace-diff lists differ in length",
			qcat.Name(u.QueryID), u.QueryStart, u.QueryEnd,
			tcat.Name(u.TargetID), u.TargetStart, u.TargetEnd)
	}
}

func init() {
	RootCmd.PersistentFlags().BoolP("quiet", "", false,
		"do not print any verbose information")
	RootCmd.PersistentFlags().StringP("log", "", "",
		"log to file")

	RootCmd.Flags().IntP("alignment", "a", -1,
		"show only the alignment with this ordinal (0-based)")
	RootCmd.Flags().BoolP("metadata", "m", false,
		"print only the catalog summary and the alignment count")
	RootCmd.Flags().BoolP("paf", "p", false,
		"output PAF instead of human-readable blocks")
	RootCmd.Flags().StringP("out-file", "o", "-",
		`out file, supports the ".gz" suffix ("-" for stdout)`)
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
