// Command import-csv converts a CSV document into a board archive with one
// card per row.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/octoboard/octoboard/internal/archive"
	"github.com/octoboard/octoboard/internal/importer"
)

func main() {
	inPath := flag.String("i", "", "path to the CSV file (required)")
	outPath := flag.String("o", "csv"+archive.Extension, "path to write the archive to")
	title := flag.String("title", "", "board title (defaults to the input file name)")
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "missing required flag: -i <csv file>")
		flag.Usage()
		os.Exit(1)
	}

	boardTitle := *title
	if boardTitle == "" {
		base := filepath.Base(*inPath)
		boardTitle = strings.TrimSuffix(base, filepath.Ext(base))
	}

	in, err := os.Open(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read %s: %v\n", *inPath, err)
		os.Exit(2)
	}
	defer in.Close()

	boards, blockSet, err := importer.FromCSV(in, boardTitle)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read %s: %v\n", *inPath, err)
		os.Exit(2)
	}

	content, err := archive.Build(boards, blockSet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "building archive: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, []byte(content), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "writing %s: %v\n", *outPath, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s: %d boards, %d blocks\n", *outPath, len(boards), len(blockSet))
}
