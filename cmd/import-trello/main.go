// Command import-trello converts a Trello board export (JSON) into a board
// archive.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/octoboard/octoboard/internal/archive"
	"github.com/octoboard/octoboard/internal/importer"
)

func main() {
	inPath := flag.String("i", "", "path to the Trello export JSON (required)")
	outPath := flag.String("o", "trello"+archive.Extension, "path to write the archive to")
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "missing required flag: -i <trello export>")
		flag.Usage()
		os.Exit(1)
	}

	in, err := os.Open(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read %s: %v\n", *inPath, err)
		os.Exit(2)
	}
	defer in.Close()

	boards, blockSet, err := importer.FromTrello(in)
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
