// Package archive implements the newline-delimited JSON transcript used for
// board export/import and produced by the CLI importers.
//
// The first line is a header with the format version and export date; every
// following line is one tagged entity. Records are written line by line so a
// producer can stream an archive without buffering it, and a truncated file
// fails on a specific line instead of corrupting the whole document.
package archive

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/octoboard/octoboard/internal/blocks"
)

// FormatVersion is the archive version written and the minimum accepted.
const FormatVersion = 1

// Extension is the conventional archive file extension.
const Extension = ".boardarchive"

var (
	// ErrInvalidHeader indicates the first line is missing or malformed.
	ErrInvalidHeader = errors.New("invalid archive header")
	// ErrUnsupportedVersion indicates a header version below FormatVersion.
	ErrUnsupportedVersion = errors.New("unsupported archive version")
)

const (
	lineTypeBoard = "board"
	lineTypeBlock = "block"
)

type header struct {
	Version int    `json:"version"`
	Date    *int64 `json:"date"`
}

type line struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Writer streams an archive one record per line.
type Writer struct {
	out     io.Writer
	encoder *json.Encoder
	started bool
}

// NewWriter creates an archive writer. WriteHeader must be called before any
// record.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out, encoder: json.NewEncoder(out)}
}

// WriteHeader writes the version/date header line.
func (w *Writer) WriteHeader() error {
	if w.started {
		return fmt.Errorf("archive header already written")
	}
	w.started = true
	now := time.Now().UnixMilli()
	return w.encoder.Encode(header{Version: FormatVersion, Date: &now})
}

// WriteBoard writes one board record line.
func (w *Writer) WriteBoard(board blocks.Block) error {
	return w.writeLine(lineTypeBoard, board)
}

// WriteBlock writes one block record line.
func (w *Writer) WriteBlock(block blocks.Block) error {
	return w.writeLine(lineTypeBlock, block)
}

func (w *Writer) writeLine(lineType string, entity blocks.Block) error {
	if !w.started {
		if err := w.WriteHeader(); err != nil {
			return err
		}
	}
	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("encoding %s %s: %w", lineType, entity.ID, err)
	}
	return w.encoder.Encode(line{Type: lineType, Data: data})
}

// Build serializes boards and blocks into a complete archive string: header
// first, then one board per line, then one block per line.
func Build(boards, blockSet []blocks.Block) (string, error) {
	var builder strings.Builder
	writer := NewWriter(&builder)
	if err := writer.WriteHeader(); err != nil {
		return "", err
	}
	for _, board := range boards {
		if err := writer.WriteBoard(board); err != nil {
			return "", err
		}
	}
	for _, block := range blockSet {
		if err := writer.WriteBlock(block); err != nil {
			return "", err
		}
	}
	return builder.String(), nil
}

// Parse decodes an archive and returns its block records in file order,
// discarding board lines. Errors carry the failing line number.
func Parse(content string) ([]blocks.Block, error) {
	_, blockSet, err := ParseWithBoards(content)
	return blockSet, err
}

// ParseWithBoards decodes an archive and returns board and block records
// separately, each in file order.
func ParseWithBoards(content string) (boards, blockSet []blocks.Block, err error) {
	return ParseReader(strings.NewReader(content))
}

// ParseReader decodes an archive from a stream. A trailing blank line is
// tolerated; anything else malformed fails with its line number.
func ParseReader(reader io.Reader) (boards, blockSet []blocks.Block, err error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 64*1024), 8*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, nil, fmt.Errorf("reading archive: %w", err)
		}
		return nil, nil, fmt.Errorf("line 1: empty archive: %w", ErrInvalidHeader)
	}
	head := header{}
	if err := json.Unmarshal(scanner.Bytes(), &head); err != nil {
		return nil, nil, fmt.Errorf("line 1: %v: %w", err, ErrInvalidHeader)
	}
	if head.Date == nil {
		return nil, nil, fmt.Errorf("line 1: missing date: %w", ErrInvalidHeader)
	}
	if head.Version < FormatVersion {
		return nil, nil, fmt.Errorf("line 1: version %d: %w", head.Version, ErrUnsupportedVersion)
	}

	lineNum := 1
	for scanner.Scan() {
		lineNum++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		record := line{}
		if err := json.Unmarshal([]byte(text), &record); err != nil {
			return nil, nil, fmt.Errorf("line %d: malformed record: %w", lineNum, err)
		}
		if record.Type == "" || len(record.Data) == 0 {
			return nil, nil, fmt.Errorf("line %d: record missing type or data", lineNum)
		}
		entity := blocks.Block{}
		if err := json.Unmarshal(record.Data, &entity); err != nil {
			return nil, nil, fmt.Errorf("line %d: decoding %s: %w", lineNum, record.Type, err)
		}
		switch record.Type {
		case lineTypeBoard:
			boards = append(boards, entity)
		case lineTypeBlock:
			blockSet = append(blockSet, entity)
		default:
			return nil, nil, fmt.Errorf("line %d: unknown record type %q", lineNum, record.Type)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading archive: %w", err)
	}
	return boards, blockSet, nil
}
